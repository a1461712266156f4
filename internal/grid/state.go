package grid

import (
	"fmt"
	"iter"
	"slices"
)

// State owns the rows, the selection set and the validation annotations of
// one grid. It is not safe for concurrent use: callers serialize access,
// typically by only touching it from a UI event loop.
type State struct {
	fields     []Field
	fieldIndex map[string]int

	rows  []*Row
	index map[RowID]int // Row id -> position in rows

	selected  map[RowID]struct{}
	anchor    RowID
	hasAnchor bool

	errorCount int

	observers []observerEntry
	nextObsID int
}

type observerEntry struct {
	id  int
	obs Observer
}

// New creates a grid from field descriptors and initial rows. Rows are copied;
// the caller keeps ownership of the slices it passed in.
func New(fields []Field, rows []Row) (*State, error) {
	s := &State{
		fields:     make([]Field, 0, len(fields)),
		fieldIndex: make(map[string]int, len(fields)),
		rows:       make([]*Row, 0, len(rows)),
		index:      make(map[RowID]int, len(rows)),
		selected:   make(map[RowID]struct{}),
	}

	for i, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := s.fieldIndex[f.Key]; dup {
			return nil, NewInvalidFieldError(f.Key, fmt.Sprintf("field key %q declared more than once", f.Key))
		}
		s.fieldIndex[f.Key] = i
		s.fields = append(s.fields, f.clone())
	}

	for _, r := range rows {
		if _, dup := s.index[r.ID]; dup {
			return nil, NewDuplicateRowError(r.ID)
		}
		if err := s.checkErrorKeys(r.Errors); err != nil {
			return nil, fmt.Errorf("row %q: %w", r.ID, err)
		}

		row := r.clone()
		if row.Values == nil {
			row.Values = make(map[string]any)
		}
		s.index[row.ID] = len(s.rows)
		s.rows = append(s.rows, &row)
		s.errorCount += len(row.Errors)
	}

	return s, nil
}

// Fields returns the declared fields in column order
func (s *State) Fields() []Field {
	fields := make([]Field, len(s.fields))
	for i, f := range s.fields {
		fields[i] = f.clone()
	}
	return fields
}

// Field returns the declared field with the given key
func (s *State) Field(key string) (Field, error) {
	i, ok := s.fieldIndex[key]
	if !ok {
		return Field{}, NewUnknownFieldError(key)
	}
	return s.fields[i].clone(), nil
}

// Len returns the number of rows
func (s *State) Len() int {
	return len(s.rows)
}

// RowIDs returns every row id in row order
func (s *State) RowIDs() []RowID {
	ids := make([]RowID, len(s.rows))
	for i, r := range s.rows {
		ids[i] = r.ID
	}
	return ids
}

// Row returns a snapshot of one row
func (s *State) Row(id RowID) (Row, error) {
	row, err := s.lookup(id)
	if err != nil {
		return Row{}, err
	}
	return row.clone(), nil
}

// Value returns the current value of one cell
func (s *State) Value(id RowID, key string) (any, error) {
	row, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if _, ok := s.fieldIndex[key]; !ok {
		return nil, NewUnknownFieldError(key)
	}
	return row.Values[key], nil
}

// Cell returns everything a renderer needs for one row x field intersection
func (s *State) Cell(id RowID, key string) (Cell, error) {
	value, err := s.Value(id, key)
	if err != nil {
		return Cell{}, err
	}
	return Cell{
		Value:    value,
		Invalid:  s.CellHasError(id, key),
		Selected: s.IsSelected(id),
	}, nil
}

// SetCellValue overwrites one cell. No validation happens here: the row's
// error list is stale afterwards until Validator.Apply is run again.
func (s *State) SetCellValue(id RowID, key string, value any) error {
	row, err := s.lookup(id)
	if err != nil {
		return err
	}
	if _, ok := s.fieldIndex[key]; !ok {
		return NewUnknownFieldError(key)
	}

	row.Values[key] = value
	s.notify(Event{Kind: CellEdited, RowIDs: []RowID{id}, FieldKey: key})
	return nil
}

// ToggleSelection selects (checked) or deselects one row. With rangeExtend it
// applies checked to every row between the anchor and id, inclusive, in
// current row order; without an anchor it falls back to a single-row toggle.
// The toggled row always becomes the new anchor.
func (s *State) ToggleSelection(id RowID, checked, rangeExtend bool) error {
	target, ok := s.index[id]
	if !ok {
		return NewUnknownRowError(id)
	}

	var changed []RowID
	if rangeExtend && s.hasAnchor {
		from := s.index[s.anchor]
		lo, hi := min(from, target), max(from, target)
		for i := lo; i <= hi; i++ {
			if s.setSelected(s.rows[i].ID, checked) {
				changed = append(changed, s.rows[i].ID)
			}
		}
	} else if s.setSelected(id, checked) {
		changed = append(changed, id)
	}

	s.anchor = id
	s.hasAnchor = true

	if len(changed) > 0 {
		s.notify(Event{Kind: SelectionChanged, RowIDs: changed})
	}
	return nil
}

// SelectAll selects every row when checked is true and clears the selection
// otherwise. The anchor is reset.
func (s *State) SelectAll(checked bool) {
	var changed []RowID
	for _, r := range s.rows {
		if s.setSelected(r.ID, checked) {
			changed = append(changed, r.ID)
		}
	}
	s.anchor = ""
	s.hasAnchor = false

	if len(changed) > 0 {
		s.notify(Event{Kind: SelectionChanged, RowIDs: changed})
	}
}

// ClearSelection deselects every row
func (s *State) ClearSelection() {
	s.SelectAll(false)
}

// IsSelected reports whether the row is in the selection set
func (s *State) IsSelected(id RowID) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the selected row ids in row order
func (s *State) SelectedIDs() []RowID {
	ids := make([]RowID, 0, len(s.selected))
	for _, r := range s.rows {
		if _, ok := s.selected[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// SelectionCount returns the number of selected rows
func (s *State) SelectionCount() int {
	return len(s.selected)
}

// Anchor returns the most recently toggled row, used as range-select origin
func (s *State) Anchor() (RowID, bool) {
	return s.anchor, s.hasAnchor
}

// CellHasError reports whether the row's error list has an entry for key.
// Unknown rows and keys report false.
func (s *State) CellHasError(id RowID, key string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	_, found := s.rows[i].ErrorFor(key)
	return found
}

// SetRowErrors replaces the validation errors attached to a row. Every entry
// must reference a declared field.
func (s *State) SetRowErrors(id RowID, errs []CellError) error {
	row, err := s.lookup(id)
	if err != nil {
		return err
	}
	if err := s.checkErrorKeys(errs); err != nil {
		return err
	}

	s.errorCount += len(errs) - len(row.Errors)
	row.Errors = slices.Clone(errs)
	s.notify(Event{Kind: ErrorsChanged, RowIDs: []RowID{id}})
	return nil
}

// ErrorCount returns the total number of validation errors across all rows
func (s *State) ErrorCount() int {
	return s.errorCount
}

// FilteredRows yields row snapshots in row order: every row, or only rows
// with a non-empty error list when errorsOnly is set. The sequence reads the
// grid lazily and can be ranged over any number of times. Rows removed while
// the sequence is being consumed are skipped; rows edited are yielded with
// their current values.
func (s *State) FilteredRows(errorsOnly bool) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		rows := slices.Clone(s.rows)
		for _, r := range rows {
			if _, alive := s.index[r.ID]; !alive {
				continue
			}
			if errorsOnly && !r.HasErrors() {
				continue
			}
			if !yield(r.clone()) {
				return
			}
		}
	}
}

// RemoveRow deletes a row and prunes it from the selection and the anchor
func (s *State) RemoveRow(id RowID) error {
	i, ok := s.index[id]
	if !ok {
		return NewUnknownRowError(id)
	}

	s.errorCount -= len(s.rows[i].Errors)
	s.rows = slices.Delete(s.rows, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.rows); j++ {
		s.index[s.rows[j].ID] = j
	}

	delete(s.selected, id)
	if s.hasAnchor && s.anchor == id {
		s.anchor = ""
		s.hasAnchor = false
	}

	s.notify(Event{Kind: RowRemoved, RowIDs: []RowID{id}})
	return nil
}

// Subscribe registers an observer and returns a function that removes it
func (s *State) Subscribe(obs Observer) func() {
	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, observerEntry{id: id, obs: obs})

	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(e observerEntry) bool {
			return e.id == id
		})
	}
}

func (s *State) notify(ev Event) {
	for _, e := range slices.Clone(s.observers) {
		e.obs.GridChanged(ev)
	}
}

func (s *State) lookup(id RowID) (*Row, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, NewUnknownRowError(id)
	}
	return s.rows[i], nil
}

// setSelected reports whether the selection actually changed
func (s *State) setSelected(id RowID, checked bool) bool {
	_, present := s.selected[id]
	if checked == present {
		return false
	}
	if checked {
		s.selected[id] = struct{}{}
	} else {
		delete(s.selected, id)
	}
	return true
}

func (s *State) checkErrorKeys(errs []CellError) error {
	for _, e := range errs {
		if _, ok := s.fieldIndex[e.FieldKey]; !ok {
			return NewUnknownFieldError(e.FieldKey)
		}
	}
	return nil
}
