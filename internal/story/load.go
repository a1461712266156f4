package story

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a story fixture from disk. Files ending in .hcl are parsed as
// HCL, everything else as YAML.
func Load(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story file: %w", err)
	}

	var s *Story
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		s, err = ParseHCL(filepath.Base(path), data)
	} else {
		s, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse story %s: %w", path, err)
	}

	return s, nil
}

// ParseYAML decodes a YAML story fixture
func ParseYAML(data []byte) (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// check catches fixture mistakes that the grid would otherwise report with
// less context
func (s *Story) check() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("story declares no fields")
	}
	for i, f := range s.Fields {
		if f.Key == "" {
			return fmt.Errorf("field #%d has no key", i+1)
		}
	}
	for i, r := range s.Rows {
		if r.ID == "" {
			return fmt.Errorf("row #%d has no id", i+1)
		}
	}
	return nil
}

// Save writes the story as YAML. Performs an atomic write so a crash never
// leaves a truncated fixture behind.
func (s *Story) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create story directory: %w", err)
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal story: %w", err)
	}

	header := []byte(`# gridbook story fixture
#
# fields: column definitions (type: input, select or checkbox)
# rows:   initial row data keyed by field key
#
# Run with: gridbook run --story ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary story file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save story file: %w", err)
	}

	return nil
}
