// Package tui implements the interactive terminal grid for gridbook.
//
// The screen is a single Bubble Tea model (GridModel) drawn inside the shared
// application container (RenderApplicationContainer). The model never keeps a
// copy of the grid: rows, values, selection and errors are read from the
// grid.State on every View, and every key press is translated into a call on
// that same state.
//
// # Key Bindings
//
// Browsing:
//   - ↑/↓ or k/j move between rows, ←/→ or h/l move between columns
//   - space toggles the focused row, a selects all rows or none
//   - shift+↑/↓ (or K/J) extend the selection from the anchor row
//   - X applies the focused row's new state to every row between it and the anchor
//   - enter edits the focused cell, f toggles the errors-only filter
//   - v runs validation, ? expands help, q quits
//
// Editing:
//   - Text cells open a textinput, select cells open an option list
//   - Checkbox cells flip in place without opening an editor
//   - enter commits, esc cancels
//
// # Usage Example
//
//	state, _ := story.Sample().Build()
//	model := tui.NewGridModel(state, tui.Options{ValidateOnEdit: true})
//	program := tea.NewProgram(model, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
