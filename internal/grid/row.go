package grid

import (
	"maps"
	"slices"
)

// RowID is the stable identity of a row
type RowID string

// CellError is one validation failure attached to a row
type CellError struct {
	FieldKey string
	Message  string
}

// Row is one record of the grid. Rows handed out by State are snapshots;
// mutating them does not change the grid.
type Row struct {
	ID     RowID
	Values map[string]any
	Errors []CellError
}

// HasErrors reports whether the row carries any validation error
func (r Row) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorFor returns the first error attached to the given field
func (r Row) ErrorFor(key string) (CellError, bool) {
	for _, e := range r.Errors {
		if e.FieldKey == key {
			return e, true
		}
	}
	return CellError{}, false
}

func (r Row) clone() Row {
	return Row{
		ID:     r.ID,
		Values: maps.Clone(r.Values),
		Errors: slices.Clone(r.Errors),
	}
}

// Cell is what a renderer needs to draw one row x field intersection
type Cell struct {
	Value    any
	Invalid  bool
	Selected bool
}
