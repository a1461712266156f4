// Package logging provides structured logging for gridbook.
//
// This package wraps zap logger with convenience functions for the events a
// grid story produces: stories being loaded, cells being edited, selection
// changes and validation passes.
//
// # Log Levels
//
//   - Debug: Every cell edit and selection change
//   - Info: Story loading, clean validation passes
//   - Warn: Validation passes that found errors
//   - Error: Rejected grid calls (unknown row or field)
//
// # Structured Logging
//
//	logging.Info("Story loaded",
//	    zap.String("source", "stories/sample.yaml"),
//	    zap.Int("rows", 4),
//	)
//
// # Grid Events
//
// Subscribe the logging observer to a grid to trace every mutation:
//
//	unsubscribe := state.Subscribe(logging.GridObserver(state))
//	defer unsubscribe()
//
// # Configuration
//
// The interactive TUI owns stdout, so it logs to a file:
//
//	if err := logging.Initialize("debug", "/home/me/.config/gridbook/gridbook.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// With no level given and GRIDBOOK_LOG_LEVEL unset, logging is silent.
package logging
