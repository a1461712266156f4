// Package ui provides the non-interactive terminal output of the gridbook CLI.
//
// Unlike the interactive grid in package tui, these components follow a
// "print and exit" pattern: show, validate and init render their results with
// lipgloss and return without waiting for input.
//
// # Components
//
//   - Header: Command banner showing operation name and parameters
//   - Table: The grid rendered with lipgloss/table, invalid cells highlighted
//   - Report: Validation errors grouped by row
//   - Result: Success, warning and failure boxes
//   - Confirm: Overwrite prompt for init
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Grid preview", "gridbook show", ui.Detail{Key: "Story", Value: path})
//	p.PrintGrid(state, false)
//
// # Logging Integration
//
// Logging is controlled via the GRIDBOOK_LOG_LEVEL environment variable. When
// unset or empty, zap logging is silent so the styled output is displayed
// cleanly.
package ui
