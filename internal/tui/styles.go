package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/gridbook/internal/version"
)

// Application branding constants
const (
	AppName   = "GRIDBOOK"
	GitHubURL = "github.com/muurk/gridbook"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	MinTerminalWidth = 40 // Below this the container is not drawn
	MaxCellWidth     = 30 // Longer values are truncated with an ellipsis
	MinCellWidth     = 4
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor     = lipgloss.Color("#FFFFFF")
	SubtleColor   = lipgloss.Color("#626262")
	BorderColor   = lipgloss.Color("#7D56F4")
	SelectedRowBg = lipgloss.Color("#2A2340") // Dim purple behind selected rows
	CursorCellBg  = lipgloss.Color("#7D56F4")
	InvalidCellBg = lipgloss.Color("#4A1515")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	HeaderCellStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.Border{Bottom: "─"}).
			BorderBottom(true).
			BorderForeground(SubtleColor)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginTop(1)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	OptionStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	SelectedOptionStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(SecondaryColor).
				Bold(true)

	// Inline editor panel shown under the table while a cell is being edited
	EditorPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.Border{Top: "━", Bottom: "━", Left: "┃", Right: "┃"}).
				BorderForeground(PrimaryColor).
				Padding(0, 1).
				MarginTop(1)
)

// cellStyle picks the style of one body cell. Cursor wins over invalid,
// invalid wins over selected.
func cellStyle(cursor, invalid, selected bool) lipgloss.Style {
	style := CellStyle
	switch {
	case cursor && invalid:
		return style.Background(CursorCellBg).Foreground(ErrorColor).Bold(true)
	case cursor:
		return style.Background(CursorCellBg).Foreground(TextColor).Bold(true)
	case invalid:
		return style.Background(InvalidCellBg).Foreground(ErrorColor)
	case selected:
		return style.Background(SelectedRowBg).Foreground(TextColor)
	default:
		return style.Foreground(TextColor)
	}
}

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// RenderApplicationContainer wraps a screen with the application header, a
// context-sensitive footer and an outer border filling the terminal.
//
// Terminals narrower than MinTerminalWidth (or a model that has not seen a
// tea.WindowSizeMsg yet) get the bare content and footer.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	footer := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(footerText)

	if terminalWidth < MinTerminalWidth || terminalHeight < 4 {
		return lipgloss.JoinVertical(lipgloss.Left, content, footer)
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(0, 1)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}
