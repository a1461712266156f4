// Package config provides user configuration management for gridbook.
//
// The configuration file stores launch defaults: which story fixture to open,
// logging level and destination, and how the interactive grid starts. Grid
// data is never written here; edited rows live only in memory and fixtures
// are managed by package story.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/gridbook/config.yaml or $HOME/.config/gridbook/config.yaml
//   - macOS: $HOME/.config/gridbook/config.yaml
//   - Windows: %LOCALAPPDATA%\gridbook\config.yaml
//
// The default log file for the interactive grid (gridbook.log) lives in the
// same directory.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Command-line flags win over the file
//	settings.Merge(storyFlag, logLevelFlag, logFileFlag)
//
//	settings.FilterErrors = true
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// File operations are protected by a mutex and saves are atomic
// (write to a temporary file, then rename).
package config
