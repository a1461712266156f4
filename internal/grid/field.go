package grid

import (
	"fmt"
	"regexp"
	"slices"
)

// FieldKind names the editor variant of a field
type FieldKind string

const (
	KindInput    FieldKind = "input"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
)

// FieldType is the editor variant of a field. It is one of Input, Select or
// Checkbox; callers dispatch on it with a type switch.
type FieldType interface {
	Kind() FieldKind
	fieldType()
}

// Input is a free-text cell
type Input struct{}

// Select is a single choice from an ordered list of options
type Select struct {
	Options []Option
}

// Checkbox is a boolean toggle
type Checkbox struct{}

// Option is one selectable value of a Select field
type Option struct {
	Value string
	Label string
}

func (Input) Kind() FieldKind    { return KindInput }
func (Select) Kind() FieldKind   { return KindSelect }
func (Checkbox) Kind() FieldKind { return KindCheckbox }

func (Input) fieldType()    {}
func (Select) fieldType()   {}
func (Checkbox) fieldType() {}

// LabelFor returns the display label of the option with the given value
func (s Select) LabelFor(value string) (string, bool) {
	for _, opt := range s.Options {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// IndexOf returns the position of value in the option list, or -1
func (s Select) IndexOf(value string) int {
	for i, opt := range s.Options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

// Field describes one editable column of the grid.
type Field struct {
	Key   string
	Label string
	Type  FieldType

	// Validation rules, consumed by Validator only
	Required bool
	Unique   bool
	Pattern  *regexp.Regexp // Input fields only
	Message  string         // Overrides the default validation message
}

// clone returns a copy that shares no select options with f
func (f Field) clone() Field {
	if sel, ok := f.Type.(Select); ok {
		f.Type = Select{Options: slices.Clone(sel.Options)}
	}
	return f
}

// validate checks the descriptor itself, not any row data
func (f Field) validate() error {
	if f.Key == "" {
		return NewInvalidFieldError(f.Key, "field key cannot be empty")
	}
	if f.Type == nil {
		return NewInvalidFieldError(f.Key, fmt.Sprintf("field %q has no type", f.Key))
	}

	if sel, ok := f.Type.(Select); ok {
		seen := make(map[string]bool, len(sel.Options))
		for _, opt := range sel.Options {
			if seen[opt.Value] {
				return NewInvalidFieldError(f.Key, fmt.Sprintf("field %q repeats option value %q", f.Key, opt.Value))
			}
			seen[opt.Value] = true
		}
	}

	if f.Pattern != nil && f.Type.Kind() != KindInput {
		return NewInvalidFieldError(f.Key, fmt.Sprintf("field %q: pattern is only valid on input fields", f.Key))
	}

	return nil
}

// FormatValue renders a cell value the way the grid displays it: select
// values by option label, checkboxes as a check mark.
func (f Field) FormatValue(value any) string {
	switch t := f.Type.(type) {
	case Select:
		if s, ok := value.(string); ok {
			if label, found := t.LabelFor(s); found {
				return label
			}
			return s
		}
	case Checkbox:
		if b, ok := value.(bool); ok {
			if b {
				return "[x]"
			}
			return "[ ]"
		}
	}

	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
