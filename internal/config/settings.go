package config

// Settings represents the user configuration file.
// It stores defaults for launching stories; grid data itself is never saved here.
type Settings struct {
	Version      int    `yaml:"version"`
	Story        string `yaml:"story,omitempty"`     // Default story fixture (empty = built-in sample)
	LogLevel     string `yaml:"log_level,omitempty"` // debug, info, warn, error (empty = silent)
	LogFile      string `yaml:"log_file,omitempty"`  // Log destination while the TUI owns stdout
	FilterErrors bool   `yaml:"filter_errors"`       // Start with the error-only row filter enabled
	// Run the validator after each committed cell edit
	ValidateOnEdit bool `yaml:"validate_on_edit"`
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:        1,
		FilterErrors:   false,
		ValidateOnEdit: true,
	}
}

// Merge overrides settings with non-empty command-line values.
func (s *Settings) Merge(story, logLevel, logFile string) {
	if story != "" {
		s.Story = story
	}
	if logLevel != "" {
		s.LogLevel = logLevel
	}
	if logFile != "" {
		s.LogFile = logFile
	}
}
