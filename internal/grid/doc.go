// Package grid implements the state manager behind an editable data grid.
//
// A State holds the ordered rows of a grid, the set of selected row ids and
// the validation errors attached to each row. It is a plain in-memory struct:
// every operation is a synchronous mutation or a pure query, and renderers
// learn about changes through an explicit Observer instead of watching the
// data.
//
// # Fields
//
// Columns are described by Field values. The editor variant is a FieldType,
// one of Input, Select or Checkbox, and callers dispatch on it with a type
// switch:
//
//	switch t := field.Type.(type) {
//	case grid.Select:
//	    // offer t.Options
//	case grid.Checkbox:
//	    // flip the bool
//	case grid.Input:
//	    // free text
//	}
//
// # Usage Example
//
//	state, err := grid.New(fields, rows)
//	if err != nil {
//	    return err
//	}
//
//	// Edit a cell, then re-run validation as an explicit second step
//	if err := state.SetCellValue("0", "test", "Hi"); err != nil {
//	    return err
//	}
//	count, err := grid.NewValidator().Apply(state)
//
//	// Shift-click semantics: select r0, then extend to r2
//	_ = state.ToggleSelection("0", true, false)
//	_ = state.ToggleSelection("2", true, true)
//
//	for row := range state.FilteredRows(true) {
//	    fmt.Println(row.ID, grid.FormatCellErrors(row.Errors))
//	}
//
// # Selection
//
// The anchor is the most recently toggled row. A range toggle applies the
// checked flag to every row between the anchor and the target, inclusive, in
// current row order. Removing a row prunes it from the selection and clears
// the anchor if it pointed there.
//
// # Error Handling
//
// Out-of-contract row ids and field keys return *Error values
// (ErrTypeUnknownRow, ErrTypeUnknownField) and leave the state unchanged.
// Use IsUnknownRow and IsUnknownField to inspect wrapped errors.
//
// # Thread Safety
//
// State does no locking. All calls must come from one goroutine, such as a
// Bubble Tea update loop.
package grid
