package grid

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a grid contract violation
type ErrorType int

const (
	// ErrTypeUnknownRow indicates a row id that is not part of the grid
	ErrTypeUnknownRow ErrorType = iota
	// ErrTypeUnknownField indicates a field key that was not declared for the grid
	ErrTypeUnknownField
	// ErrTypeDuplicateRow indicates two rows sharing the same id at construction
	ErrTypeDuplicateRow
	// ErrTypeInvalidField indicates a malformed field descriptor
	ErrTypeInvalidField
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeUnknownRow:
		return "Unknown Row"
	case ErrTypeUnknownField:
		return "Unknown Field"
	case ErrTypeDuplicateRow:
		return "Duplicate Row"
	case ErrTypeInvalidField:
		return "Invalid Field"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned when a caller breaks the grid contract. The operation that
// produced it has left the state untouched.
type Error struct {
	Type     ErrorType
	Message  string
	RowID    RowID  // Offending row (if applicable)
	FieldKey string // Offending field key (if applicable)
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewUnknownRowError creates an error for a row id that does not exist
func NewUnknownRowError(id RowID) *Error {
	return &Error{
		Type:    ErrTypeUnknownRow,
		Message: fmt.Sprintf("row %q not found", id),
		RowID:   id,
	}
}

// NewUnknownFieldError creates an error for an undeclared field key
func NewUnknownFieldError(key string) *Error {
	return &Error{
		Type:     ErrTypeUnknownField,
		Message:  fmt.Sprintf("field %q is not declared", key),
		FieldKey: key,
	}
}

// NewDuplicateRowError creates an error for a row id used more than once
func NewDuplicateRowError(id RowID) *Error {
	return &Error{
		Type:    ErrTypeDuplicateRow,
		Message: fmt.Sprintf("row id %q used more than once", id),
		RowID:   id,
	}
}

// NewInvalidFieldError creates an error for a malformed field descriptor
func NewInvalidFieldError(key, message string) *Error {
	return &Error{
		Type:     ErrTypeInvalidField,
		Message:  message,
		FieldKey: key,
	}
}

func isType(err error, t ErrorType) bool {
	var gridErr *Error
	if errors.As(err, &gridErr) {
		return gridErr.Type == t
	}
	return false
}

// IsUnknownRow reports whether err (or anything it wraps) is an unknown row error
func IsUnknownRow(err error) bool {
	return isType(err, ErrTypeUnknownRow)
}

// IsUnknownField reports whether err (or anything it wraps) is an unknown field error
func IsUnknownField(err error) bool {
	return isType(err, ErrTypeUnknownField)
}

// IsDuplicateRow reports whether err (or anything it wraps) is a duplicate row error
func IsDuplicateRow(err error) bool {
	return isType(err, ErrTypeDuplicateRow)
}

// IsInvalidField reports whether err (or anything it wraps) is an invalid field error
func IsInvalidField(err error) bool {
	return isType(err, ErrTypeInvalidField)
}
