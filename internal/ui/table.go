package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/gridbook/internal/grid"
)

// TableOptions controls RenderGrid
type TableOptions struct {
	ErrorsOnly bool // Only rows with at least one cell error
	Width      int  // Zero lets the table size itself
}

// RenderGrid renders the grid as a bordered table. The first column shows the
// selection checkbox, invalid cells are drawn in the error color.
func RenderGrid(state *grid.State, opts TableOptions) string {
	fields := state.Fields()

	headers := make([]string, 0, len(fields)+2)
	headers = append(headers, "ID", selectionMarker(state))
	for _, f := range fields {
		headers = append(headers, f.Label)
	}

	var (
		rows     [][]string
		invalid  [][]bool
		selected []bool
	)
	for row := range state.FilteredRows(opts.ErrorsOnly) {
		cells := make([]string, 0, len(headers))
		marks := make([]bool, len(headers))

		isSelected := state.IsSelected(row.ID)
		box := "[ ]"
		if isSelected {
			box = "[x]"
		}
		cells = append(cells, string(row.ID), box)

		for i, f := range fields {
			cells = append(cells, f.FormatValue(row.Values[f.Key]))
			_, marks[i+2] = row.ErrorFor(f.Key)
		}

		rows = append(rows, cells)
		invalid = append(invalid, marks)
		selected = append(selected, isSelected)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(PrimaryColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row < 0 || row >= len(rows):
				return TableCellStyle
			case invalid[row][col]:
				return TableInvalidCellStyle
			case selected[row]:
				return TableSelectedCellStyle
			default:
				return TableCellStyle
			}
		})

	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}

	if len(rows) == 0 {
		empty := "No rows"
		if opts.ErrorsOnly {
			empty = "No rows with errors"
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			t.Render(),
			lipgloss.NewStyle().Foreground(MutedColor).PaddingLeft(2).Render(empty),
		)
	}

	return t.Render()
}

func selectionMarker(state *grid.State) string {
	switch n := state.SelectionCount(); {
	case n == 0:
		return "[ ]"
	case n == state.Len():
		return "[x]"
	default:
		return "[-]"
	}
}

// RenderValidationReport lists every cell error grouped by row, in row order
func RenderValidationReport(state *grid.State) string {
	labels := make(map[string]string)
	for _, f := range state.Fields() {
		labels[f.Key] = f.Label
	}

	var lines []string
	for row := range state.FilteredRows(true) {
		lines = append(lines, ErrorTitleStyle.Render(fmt.Sprintf("%s Row %s", FailureMarker, row.ID)))
		for _, e := range row.Errors {
			label := labels[e.FieldKey]
			if label == "" {
				label = e.FieldKey
			}
			lines = append(lines, "  • "+ResultKeyStyle.Render(label+":")+" "+ErrorMessageStyle.Render(e.Message))
		}
	}

	if len(lines) == 0 {
		return SuccessTitleStyle.Render(SuccessMarker + " No validation errors")
	}
	return strings.Join(lines, "\n")
}
