package grid

import (
	"fmt"
	"slices"
	"strings"
)

// Validator is the external validation pass. It never runs on its own: edits
// leave errors stale until Apply is called again. Running it twice over the
// same data yields the same annotations.
type Validator struct{}

// NewValidator creates a validator for the built-in field rules
func NewValidator() *Validator {
	return &Validator{}
}

// Validate computes the error list of every row, keyed by row id. Rows without
// errors map to an empty list so Apply can clear stale annotations.
func (v *Validator) Validate(s *State) map[RowID][]CellError {
	fields := s.Fields()
	dups := duplicateValues(s, fields)

	result := make(map[RowID][]CellError, s.Len())
	for row := range s.FilteredRows(false) {
		var errs []CellError
		for _, f := range fields {
			value := row.Values[f.Key]
			if msg := checkValue(f, value); msg != "" {
				errs = append(errs, CellError{FieldKey: f.Key, Message: message(f, msg)})
				continue
			}
			if f.Unique && dups[f.Key][uniqueKey(value)] > 1 {
				errs = append(errs, CellError{FieldKey: f.Key, Message: message(f, "Value must be unique")})
			}
		}
		result[row.ID] = errs
	}
	return result
}

// Apply validates the grid, attaches the resulting errors in row order and
// returns the total error count. Rows whose errors did not change are left
// alone and emit no event.
func (v *Validator) Apply(s *State) (int, error) {
	results := v.Validate(s)
	for _, id := range s.RowIDs() {
		row, err := s.Row(id)
		if err != nil {
			return 0, err
		}
		errs := results[id]
		if slices.Equal(row.Errors, errs) {
			continue
		}
		if err := s.SetRowErrors(id, errs); err != nil {
			return 0, fmt.Errorf("failed to attach errors to row %q: %w", id, err)
		}
	}
	return s.ErrorCount(), nil
}

// checkValue returns a default message for the first rule value breaks, or ""
func checkValue(f Field, value any) string {
	if isEmpty(value) {
		if f.Required {
			return "Required"
		}
		return ""
	}

	switch t := f.Type.(type) {
	case Input:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("Expected text, got %T", value)
		}
		if f.Pattern != nil && !f.Pattern.MatchString(s) {
			return fmt.Sprintf("Value does not match %s", f.Pattern.String())
		}
	case Select:
		s, ok := value.(string)
		if !ok || t.IndexOf(s) < 0 {
			return fmt.Sprintf("%v is not one of the allowed options", value)
		}
	case Checkbox:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("Expected true or false, got %v", value)
		}
	}
	return ""
}

func message(f Field, fallback string) string {
	if f.Message != "" {
		return f.Message
	}
	return fallback
}

// isEmpty treats nil and blank strings as missing; false is a value
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func uniqueKey(value any) string {
	return fmt.Sprintf("%T:%v", value, value)
}

// duplicateValues counts non-empty values of every unique field
func duplicateValues(s *State, fields []Field) map[string]map[string]int {
	counts := make(map[string]map[string]int)
	for _, f := range fields {
		if !f.Unique {
			continue
		}
		counts[f.Key] = make(map[string]int)
	}
	if len(counts) == 0 {
		return counts
	}

	for row := range s.FilteredRows(false) {
		for key, seen := range counts {
			value := row.Values[key]
			if isEmpty(value) {
				continue
			}
			seen[uniqueKey(value)]++
		}
	}
	return counts
}

// FormatCellErrors formats the errors of one row into a single line
func FormatCellErrors(errs []CellError) string {
	if len(errs) == 0 {
		return "No validation errors"
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = fmt.Sprintf("%s: %s", e.FieldKey, e.Message)
	}
	return strings.Join(parts, "; ")
}
