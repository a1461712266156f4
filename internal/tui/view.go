package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/gridbook/internal/grid"
)

// View renders the grid screen
func (m GridModel) View() string {
	sections := []string{
		RenderTitle(m.Title),
		m.renderTable(),
	}

	if editor := m.renderEditor(); editor != "" {
		sections = append(sections, editor)
	}
	if detail := m.renderCellDetail(); detail != "" {
		sections = append(sections, detail)
	}
	sections = append(sections, m.renderStatus())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	var footer string
	if m.Mode == ModeBrowse {
		footer = m.Help.View(m.Keys)
	} else {
		footer = m.Help.View(m.EditorKeys)
	}

	return RenderApplicationContainer(content, footer, m.Width, m.Height)
}

// renderTable lays out the header row and every visible row. Column widths
// are computed from the visible content, clamped to MinCellWidth..MaxCellWidth.
func (m GridModel) renderTable() string {
	rows := m.visibleRows()
	widths := m.columnWidths(rows)

	header := []string{HeaderCellStyle.Width(widths[0] + 2).Render(m.selectAllMarker())}
	for i, f := range m.fields {
		header = append(header, HeaderCellStyle.Width(widths[i+1]+2).Render(truncate(f.Label, widths[i+1])))
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	if len(rows) == 0 {
		msg := "No rows"
		if m.FilterErrors {
			msg = "No rows with errors"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(SubtleColor).Padding(0, 1).Render(msg))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for r, row := range rows {
		selected := m.State.IsSelected(row.ID)
		onRow := r == m.CursorRow

		marker := "[ ]"
		if selected {
			marker = "[x]"
		}
		cells := []string{
			cellStyle(onRow && m.CursorCol == 0, false, selected).Width(widths[0] + 2).Render(marker),
		}

		for i, f := range m.fields {
			_, invalid := row.ErrorFor(f.Key)
			text := truncate(f.FormatValue(row.Values[f.Key]), widths[i+1])
			style := cellStyle(onRow && m.CursorCol == i+1, invalid, selected)
			cells = append(cells, style.Width(widths[i+1]+2).Render(text))
		}

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m GridModel) columnWidths(rows []grid.Row) []int {
	widths := make([]int, len(m.fields)+1)
	widths[0] = 3

	for i, f := range m.fields {
		w := lipgloss.Width(f.Label)
		for _, row := range rows {
			w = max(w, lipgloss.Width(f.FormatValue(row.Values[f.Key])))
		}
		widths[i+1] = min(max(w, MinCellWidth), MaxCellWidth)
	}

	return widths
}

// selectAllMarker reflects the header checkbox: all, some or none selected
func (m GridModel) selectAllMarker() string {
	switch n := m.State.SelectionCount(); {
	case n == 0:
		return "[ ]"
	case n == m.State.Len():
		return "[x]"
	default:
		return "[-]"
	}
}

// renderEditor renders the inline editor panel for the cell being edited
func (m GridModel) renderEditor() string {
	if m.Mode == ModeBrowse {
		return ""
	}

	field, err := m.State.Field(m.EditField)
	if err != nil {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("%s · row %s", field.Label, m.EditRow))

	var body string
	switch m.Mode {
	case ModeEditText:
		body = m.TextInput.View()

	case ModeEditSelect:
		options := field.Type.(grid.Select).Options
		lines := make([]string, 0, len(options))
		for i, opt := range options {
			if i == m.OptionCursor {
				lines = append(lines, SelectedOptionStyle.Render("▸ "+opt.Label))
			} else {
				lines = append(lines, OptionStyle.Render(opt.Label))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return EditorPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// renderCellDetail shows the validation message of the focused cell, or the
// last rejected grid call
func (m GridModel) renderCellDetail() string {
	if m.LastErr != nil {
		return ErrorTextStyle.Render("✗ " + m.LastErr.Error())
	}
	if m.CursorCol == 0 || m.Mode != ModeBrowse {
		return ""
	}

	id, ok := m.currentRowID()
	if !ok {
		return ""
	}
	row, err := m.State.Row(id)
	if err != nil {
		return ""
	}
	if cellErr, found := row.ErrorFor(m.fields[m.CursorCol-1].Key); found {
		return ErrorTextStyle.Render("✗ " + cellErr.Message)
	}
	return ""
}

func (m GridModel) renderStatus() string {
	filter := "off"
	if m.FilterErrors {
		filter = "errors only"
	}

	parts := []string{
		fmt.Sprintf("Rows %d/%d", len(m.visibleRows()), m.State.Len()),
		fmt.Sprintf("Selected %d", m.State.SelectionCount()),
		fmt.Sprintf("Errors %d", m.State.ErrorCount()),
		"Filter " + filter,
	}
	if m.activity.count > 0 {
		parts = append(parts, "Last "+m.activity.last.Kind.String())
	}

	status := StatusStyle.Render(strings.Join(parts, " · "))
	if m.Status == "" {
		return status
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.Status)
}

// truncate shortens s to at most width cells, ending in an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}

	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-1 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}
