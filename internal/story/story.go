package story

import (
	"fmt"
	"regexp"

	"github.com/muurk/gridbook/internal/grid"
)

// Story is one grid fixture: the field descriptors plus the initial rows.
// It mirrors the on-disk YAML layout.
type Story struct {
	Title  string      `yaml:"title"`
	Fields []FieldSpec `yaml:"fields"`
	Rows   []RowSpec   `yaml:"rows"`
}

// FieldSpec describes one column in a fixture file
type FieldSpec struct {
	Key      string       `yaml:"key"`
	Label    string       `yaml:"label,omitempty"`
	Type     string       `yaml:"type"` // input, select or checkbox
	Options  []OptionSpec `yaml:"options,omitempty"`
	Required bool         `yaml:"required,omitempty"`
	Unique   bool         `yaml:"unique,omitempty"`
	Pattern  string       `yaml:"pattern,omitempty"`
	Message  string       `yaml:"message,omitempty"`
}

// OptionSpec is one choice of a select column
type OptionSpec struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// RowSpec is one initial row in a fixture file
type RowSpec struct {
	ID     string         `yaml:"id"`
	Values map[string]any `yaml:"values"`
}

// Sample returns the built-in story: four rows over a text, a select and a
// checkbox column.
func Sample() *Story {
	return &Story{
		Title: "Editable table",
		Fields: []FieldSpec{
			{Key: "test", Label: "Tests", Type: string(grid.KindInput), Required: true},
			{
				Key:   "second",
				Label: "Second",
				Type:  string(grid.KindSelect),
				Options: []OptionSpec{
					{Value: "one", Label: "One"},
					{Value: "two", Label: "Two"},
				},
			},
			{Key: "bool", Label: "Bool", Type: string(grid.KindCheckbox)},
		},
		Rows: []RowSpec{
			{ID: "0", Values: map[string]any{"test": "Hello", "second": "one", "bool": true}},
			{ID: "1", Values: map[string]any{"test": "Hello", "second": "two", "bool": true}},
			{ID: "2", Values: map[string]any{"test": "Hello", "second": "one", "bool": false}},
			{ID: "3", Values: map[string]any{"test": "Hello", "second": "two", "bool": true}},
		},
	}
}

// GridFields converts the fixture columns into grid field descriptors
func (s *Story) GridFields() ([]grid.Field, error) {
	fields := make([]grid.Field, 0, len(s.Fields))

	for _, spec := range s.Fields {
		field := grid.Field{
			Key:      spec.Key,
			Label:    spec.Label,
			Required: spec.Required,
			Unique:   spec.Unique,
			Message:  spec.Message,
		}
		if field.Label == "" {
			field.Label = spec.Key
		}

		switch grid.FieldKind(spec.Type) {
		case grid.KindInput, "":
			field.Type = grid.Input{}
		case grid.KindSelect:
			options := make([]grid.Option, len(spec.Options))
			for i, opt := range spec.Options {
				label := opt.Label
				if label == "" {
					label = opt.Value
				}
				options[i] = grid.Option{Value: opt.Value, Label: label}
			}
			field.Type = grid.Select{Options: options}
		case grid.KindCheckbox:
			field.Type = grid.Checkbox{}
		default:
			return nil, fmt.Errorf("field %q: unknown type %q (expected input, select or checkbox)", spec.Key, spec.Type)
		}

		if spec.Pattern != "" {
			re, err := regexp.Compile(spec.Pattern)
			if err != nil {
				return nil, fmt.Errorf("field %q: invalid pattern: %w", spec.Key, err)
			}
			field.Pattern = re
		}

		fields = append(fields, field)
	}

	return fields, nil
}

// GridRows converts the fixture rows into grid rows
func (s *Story) GridRows() []grid.Row {
	rows := make([]grid.Row, len(s.Rows))
	for i, spec := range s.Rows {
		rows[i] = grid.Row{ID: grid.RowID(spec.ID), Values: spec.Values}
	}
	return rows
}

// Build creates a grid state populated with the story's fields and rows
func (s *Story) Build() (*grid.State, error) {
	fields, err := s.GridFields()
	if err != nil {
		return nil, err
	}

	state, err := grid.New(fields, s.GridRows())
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}
	return state, nil
}
