package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "gridbook") {
		t.Errorf("GetConfigDir() = %v, should contain 'gridbook'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join(xdg, "gridbook") {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, filepath.Join(xdg, "gridbook"))
	}

	logPath, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("DefaultLogPath() error = %v", err)
	}
	if filepath.Base(logPath) != "gridbook.log" {
		t.Errorf("DefaultLogPath() = %v", logPath)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("NewSettings().Version = %v, want 1", s.Version)
	}
	if s.FilterErrors {
		t.Error("NewSettings().FilterErrors should be false by default")
	}
	if !s.ValidateOnEdit {
		t.Error("NewSettings().ValidateOnEdit should be true by default")
	}
}

func TestSettingsMerge(t *testing.T) {
	s := NewSettings()
	s.Story = "from-file.yaml"
	s.LogLevel = "warn"

	s.Merge("", "debug", "/tmp/grid.log")

	if s.Story != "from-file.yaml" {
		t.Errorf("Story = %v, empty flag must not override", s.Story)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", s.LogLevel)
	}
	if s.LogFile != "/tmp/grid.log" {
		t.Errorf("LogFile = %v, want /tmp/grid.log", s.LogFile)
	}
}

func TestSettingsSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	s := NewSettings()
	s.Story = "stories/sample.hcl"
	s.LogLevel = "info"
	s.FilterErrors = true
	s.ValidateOnEdit = false

	if err := s.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(s, loaded); diff != "" {
		t.Errorf("loaded settings mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after SaveFile()")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	loaded, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(NewSettings(), loaded); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"malformed yaml", "version: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() expected error, got nil")
			}
		})
	}
}

func TestLoadFile_KeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nstory: my.yaml\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !loaded.ValidateOnEdit {
		t.Error("ValidateOnEdit should keep its default when omitted")
	}
	if loaded.Story != "my.yaml" {
		t.Errorf("Story = %v, want my.yaml", loaded.Story)
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
