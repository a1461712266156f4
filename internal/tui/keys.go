package tui

import "github.com/charmbracelet/bubbles/key"

// gridKeyMap defines key bindings while browsing the grid
type gridKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	ExtendUp    key.Binding
	ExtendDown  key.Binding
	ExtendRange key.Binding
	SelectAll   key.Binding
	Edit        key.Binding
	Filter      key.Binding
	Validate    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k gridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Filter, k.Validate, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k gridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.ExtendUp, k.ExtendDown, k.ExtendRange, k.SelectAll},
		{k.Edit, k.Filter, k.Validate},
		{k.Help, k.Quit},
	}
}

// editorKeyMap defines key bindings while a cell editor is open
type editorKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Confirm, k.Cancel}}
}

func newGridKeyMap() gridKeyMap {
	return gridKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "right"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "select row"),
		),
		ExtendUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("shift+↑/K", "extend up"),
		),
		ExtendDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("shift+↓/J", "extend down"),
		),
		ExtendRange: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "range from anchor"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all/none"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "errors only"),
		),
		Validate: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "validate"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev option"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next option"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
