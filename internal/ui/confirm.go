package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmOverwrite shows a warning box for an existing file and asks the user
// to type "yes". Anything else, including EOF, declines.
func ConfirmOverwrite(in io.Reader, out io.Writer, path string, width int) bool {
	width = max(width, MinTerminalWidth)

	lines := []string{
		"",
		WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  FILE EXISTS", WarningMarker)),
		"",
		lipgloss.NewStyle().Foreground(TextColor).Render("   • " + path + " already exists"),
		lipgloss.NewStyle().Foreground(TextColor).Render("   • Its rows will be replaced by the sample story"),
		"",
	}

	box := resultBoxStyle(WarningColor, width).Render(strings.Join(lines, "\n"))
	_, _ = fmt.Fprintln(out, box)
	_, _ = fmt.Fprintln(out)

	prompt := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	_, _ = fmt.Fprint(out, prompt.Render(`To overwrite, type "yes" and press Enter: `))

	input, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}

	if strings.EqualFold(strings.TrimSpace(input), "yes") {
		return true
	}

	_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
	return false
}
