package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one labelled value in a header or result box. Details are kept
// in a slice so they print in the order they were added.
type Detail struct {
	Key   string
	Value string
}

// Header is the banner printed before a command's output
type Header struct {
	Title   string   // e.g., "GRID PREVIEW"
	Command string   // e.g., "gridbook show"
	Params  []Detail // e.g., {"Story", "stories/sample.hcl"}
	Width   int
}

// NewHeader creates a header sized to the terminal
func NewHeader(title, command string, params ...Detail) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := max(h.Width, MinTerminalWidth)

	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)),
		HeaderCommandStyle.Render(h.Command),
	)

	content := top
	if len(h.Params) > 0 {
		divider := lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Render(strings.Repeat("─", max(width-6, 10)))

		lines := make([]string, len(h.Params))
		for i, p := range h.Params {
			lines[i] = HeaderParamKeyStyle.Render(p.Key+":") + " " + HeaderParamValueStyle.Render(p.Value)
		}
		content = lipgloss.JoinVertical(lipgloss.Left, top, divider, strings.Join(lines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
