package grid

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleFields() []Field {
	return []Field{
		{Key: "test", Label: "Tests", Type: Input{}},
		{Key: "second", Label: "Second", Type: Select{Options: []Option{
			{Value: "one", Label: "One"},
			{Value: "two", Label: "Two"},
		}}},
		{Key: "bool", Label: "Bool", Type: Checkbox{}},
	}
}

func sampleRows() []Row {
	return []Row{
		{ID: "0", Values: map[string]any{"test": "Hello", "second": "one", "bool": true}},
		{ID: "1", Values: map[string]any{"test": "Hello", "second": "two", "bool": true}},
		{ID: "2", Values: map[string]any{"test": "Hello", "second": "one", "bool": false}},
		{ID: "3", Values: map[string]any{"test": "Hello", "second": "two", "bool": true}},
	}
}

func newSampleState(t *testing.T) *State {
	t.Helper()
	s, err := New(sampleFields(), sampleRows())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func collectIDs(s *State, errorsOnly bool) []RowID {
	var ids []RowID
	for row := range s.FilteredRows(errorsOnly) {
		ids = append(ids, row.ID)
	}
	return ids
}

func TestNew_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		rows   []Row
		check  func(error) bool
	}{
		{
			name:   "duplicate row id",
			fields: sampleFields(),
			rows:   []Row{{ID: "a"}, {ID: "a"}},
			check:  IsDuplicateRow,
		},
		{
			name:   "duplicate field key",
			fields: []Field{{Key: "x", Type: Input{}}, {Key: "x", Type: Checkbox{}}},
			check:  IsInvalidField,
		},
		{
			name:   "field without type",
			fields: []Field{{Key: "x"}},
			check:  IsInvalidField,
		},
		{
			name: "repeated option value",
			fields: []Field{{Key: "x", Type: Select{Options: []Option{
				{Value: "a", Label: "A"}, {Value: "a", Label: "Also A"},
			}}}},
			check: IsInvalidField,
		},
		{
			name:   "error on undeclared field",
			fields: sampleFields(),
			rows:   []Row{{ID: "a", Errors: []CellError{{FieldKey: "nope", Message: "x"}}}},
			check:  IsUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fields, tt.rows)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}
			if !tt.check(err) {
				t.Errorf("New() error = %v, wrong error type", err)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	rows := sampleRows()
	s, err := New(sampleFields(), rows)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rows[0].Values["test"] = "mutated"

	got, _ := s.Value("0", "test")
	if got != "Hello" {
		t.Errorf("Value() = %v, want Hello (grid must not alias caller rows)", got)
	}
}

func TestSetCellValue(t *testing.T) {
	tests := []struct {
		name  string
		id    RowID
		key   string
		value any
	}{
		{"input", "0", "test", "World"},
		{"select", "1", "second", "one"},
		{"checkbox persists", "2", "bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSampleState(t)
			before := make(map[RowID]Row)
			for row := range s.FilteredRows(false) {
				before[row.ID] = row
			}

			if err := s.SetCellValue(tt.id, tt.key, tt.value); err != nil {
				t.Fatalf("SetCellValue() error = %v", err)
			}

			got, err := s.Value(tt.id, tt.key)
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			if got != tt.value {
				t.Errorf("Value() = %v, want %v", got, tt.value)
			}

			// Every other cell is untouched
			for row := range s.FilteredRows(false) {
				want := before[row.ID]
				if row.ID == tt.id {
					want.Values[tt.key] = tt.value
				}
				if diff := cmp.Diff(want, row); diff != "" {
					t.Errorf("row %s changed unexpectedly (-want +got):\n%s", row.ID, diff)
				}
			}
		})
	}
}

func TestSetCellValue_ContractErrors(t *testing.T) {
	s := newSampleState(t)

	err := s.SetCellValue("99", "test", "x")
	if !IsUnknownRow(err) {
		t.Errorf("SetCellValue(unknown row) error = %v, want unknown row", err)
	}

	err = s.SetCellValue("0", "missing", "x")
	if !IsUnknownField(err) {
		t.Errorf("SetCellValue(unknown field) error = %v, want unknown field", err)
	}

	got, _ := s.Value("0", "test")
	if got != "Hello" {
		t.Errorf("state changed after rejected edit: %v", got)
	}
}

func TestSetCellValue_LeavesErrorsStale(t *testing.T) {
	s := newSampleState(t)
	if err := s.SetRowErrors("0", []CellError{{FieldKey: "test", Message: "bad"}}); err != nil {
		t.Fatalf("SetRowErrors() error = %v", err)
	}

	if err := s.SetCellValue("0", "test", "fixed"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}

	if !s.CellHasError("0", "test") {
		t.Error("SetCellValue() must not clear errors; validation is a separate step")
	}
}

func TestToggleSelection_Single(t *testing.T) {
	s := newSampleState(t)

	if err := s.ToggleSelection("1", true, false); err != nil {
		t.Fatalf("ToggleSelection() error = %v", err)
	}
	if !s.IsSelected("1") {
		t.Error("IsSelected(1) = false after checking it")
	}

	if err := s.ToggleSelection("1", false, false); err != nil {
		t.Fatalf("ToggleSelection() error = %v", err)
	}
	if s.IsSelected("1") {
		t.Error("IsSelected(1) = true after unchecking it")
	}
}

func TestToggleSelection_Idempotent(t *testing.T) {
	s := newSampleState(t)

	_ = s.ToggleSelection("0", true, false)
	_ = s.ToggleSelection("0", true, false)

	if s.SelectionCount() != 1 {
		t.Errorf("SelectionCount() = %d, want 1", s.SelectionCount())
	}
	if diff := cmp.Diff([]RowID{"0"}, s.SelectedIDs()); diff != "" {
		t.Errorf("SelectedIDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleSelection_SkipsUnselectedRows(t *testing.T) {
	s, err := New(sampleFields(), sampleRows()[:3])
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_ = s.ToggleSelection("0", true, false)
	_ = s.ToggleSelection("2", true, false)

	if s.IsSelected("1") {
		t.Error("IsSelected(1) = true, want false")
	}
}

func TestToggleSelection_Range(t *testing.T) {
	tests := []struct {
		name  string
		steps []struct {
			id      RowID
			checked bool
			extend  bool
		}
		want []RowID
	}{
		{
			name: "forward range",
			steps: []struct {
				id      RowID
				checked bool
				extend  bool
			}{{"0", true, false}, {"2", true, true}},
			want: []RowID{"0", "1", "2"},
		},
		{
			name: "backward range",
			steps: []struct {
				id      RowID
				checked bool
				extend  bool
			}{{"3", true, false}, {"1", true, true}},
			want: []RowID{"1", "2", "3"},
		},
		{
			name: "no anchor falls back to single toggle",
			steps: []struct {
				id      RowID
				checked bool
				extend  bool
			}{{"2", true, true}},
			want: []RowID{"2"},
		},
		{
			name: "range deselect",
			steps: []struct {
				id      RowID
				checked bool
				extend  bool
			}{{"0", true, false}, {"3", true, true}, {"1", false, false}, {"2", false, true}},
			want: []RowID{"0", "3"},
		},
		{
			name: "anchor is most recent toggle",
			steps: []struct {
				id      RowID
				checked bool
				extend  bool
			}{{"0", true, false}, {"3", true, false}, {"2", true, true}},
			want: []RowID{"0", "2", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSampleState(t)
			for _, step := range tt.steps {
				if err := s.ToggleSelection(step.id, step.checked, step.extend); err != nil {
					t.Fatalf("ToggleSelection(%s) error = %v", step.id, err)
				}
			}
			if diff := cmp.Diff(tt.want, s.SelectedIDs()); diff != "" {
				t.Errorf("SelectedIDs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleSelection_UnknownRow(t *testing.T) {
	s := newSampleState(t)
	_ = s.ToggleSelection("0", true, false)

	if err := s.ToggleSelection("nope", true, true); !IsUnknownRow(err) {
		t.Errorf("ToggleSelection(unknown) error = %v, want unknown row", err)
	}

	anchor, ok := s.Anchor()
	if !ok || anchor != "0" {
		t.Errorf("Anchor() = %q, %v; rejected call must not move the anchor", anchor, ok)
	}
}

func TestSelectAll(t *testing.T) {
	s := newSampleState(t)

	s.SelectAll(true)
	if s.SelectionCount() != 4 {
		t.Errorf("SelectionCount() = %d, want 4", s.SelectionCount())
	}
	if _, ok := s.Anchor(); ok {
		t.Error("SelectAll() should reset the anchor")
	}

	s.ClearSelection()
	if s.SelectionCount() != 0 {
		t.Errorf("SelectionCount() = %d after ClearSelection(), want 0", s.SelectionCount())
	}
}

func TestRemoveRow_PrunesSelectionAndAnchor(t *testing.T) {
	s := newSampleState(t)
	_ = s.ToggleSelection("1", true, false)
	_ = s.ToggleSelection("2", true, false)
	_ = s.SetRowErrors("2", []CellError{{FieldKey: "bool", Message: "x"}})

	if err := s.RemoveRow("2"); err != nil {
		t.Fatalf("RemoveRow() error = %v", err)
	}

	if s.IsSelected("2") {
		t.Error("removed row still selected")
	}
	if _, ok := s.Anchor(); ok {
		t.Error("anchor still points at removed row")
	}
	if s.ErrorCount() != 0 {
		t.Errorf("ErrorCount() = %d, want 0 after removing the only invalid row", s.ErrorCount())
	}
	if diff := cmp.Diff([]RowID{"0", "1", "3"}, s.RowIDs()); diff != "" {
		t.Errorf("RowIDs() mismatch (-want +got):\n%s", diff)
	}

	// Range selection still resolves positions after removal
	_ = s.ToggleSelection("0", true, false)
	_ = s.ToggleSelection("3", true, true)
	if diff := cmp.Diff([]RowID{"0", "1", "3"}, s.SelectedIDs()); diff != "" {
		t.Errorf("SelectedIDs() mismatch (-want +got):\n%s", diff)
	}

	if err := s.RemoveRow("2"); !IsUnknownRow(err) {
		t.Errorf("RemoveRow(twice) error = %v, want unknown row", err)
	}
}

func TestCellHasError(t *testing.T) {
	s := newSampleState(t)
	_ = s.SetRowErrors("1", []CellError{{FieldKey: "second", Message: "bad option"}})

	tests := []struct {
		id   RowID
		key  string
		want bool
	}{
		{"1", "second", true},
		{"1", "test", false},
		{"0", "second", false},
		{"missing", "second", false},
	}

	for _, tt := range tests {
		if got := s.CellHasError(tt.id, tt.key); got != tt.want {
			t.Errorf("CellHasError(%s, %s) = %v, want %v", tt.id, tt.key, got, tt.want)
		}
	}
}

func TestSetRowErrors(t *testing.T) {
	s := newSampleState(t)

	err := s.SetRowErrors("0", []CellError{{FieldKey: "undeclared", Message: "x"}})
	if !IsUnknownField(err) {
		t.Errorf("SetRowErrors(undeclared) error = %v, want unknown field", err)
	}

	_ = s.SetRowErrors("0", []CellError{{FieldKey: "test"}, {FieldKey: "bool"}})
	_ = s.SetRowErrors("3", []CellError{{FieldKey: "second"}})
	if s.ErrorCount() != 3 {
		t.Errorf("ErrorCount() = %d, want 3", s.ErrorCount())
	}

	_ = s.SetRowErrors("0", nil)
	if s.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d after clearing row 0, want 1", s.ErrorCount())
	}
}

func TestFilteredRows(t *testing.T) {
	s := newSampleState(t)
	_ = s.SetRowErrors("3", []CellError{{FieldKey: "test", Message: "x"}})
	_ = s.SetRowErrors("1", []CellError{{FieldKey: "bool", Message: "y"}})

	if diff := cmp.Diff([]RowID{"0", "1", "2", "3"}, collectIDs(s, false)); diff != "" {
		t.Errorf("FilteredRows(false) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]RowID{"1", "3"}, collectIDs(s, true)); diff != "" {
		t.Errorf("FilteredRows(true) mismatch (-want +got):\n%s", diff)
	}

	// Restartable and lazy: a second pass sees later changes
	seq := s.FilteredRows(true)
	_ = s.SetRowErrors("1", nil)
	var ids []RowID
	for row := range seq {
		ids = append(ids, row.ID)
	}
	if diff := cmp.Diff([]RowID{"3"}, ids); diff != "" {
		t.Errorf("re-ranged sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestFilteredRows_EarlyBreak(t *testing.T) {
	s := newSampleState(t)

	count := 0
	for range s.FilteredRows(false) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iterated %d rows, want 2", count)
	}
}

func TestFilteredRows_SnapshotsDoNotAlias(t *testing.T) {
	s := newSampleState(t)

	for row := range s.FilteredRows(false) {
		row.Values["test"] = "changed"
	}

	got, _ := s.Value("0", "test")
	if got != "Hello" {
		t.Errorf("Value() = %v, snapshot mutation leaked into grid", got)
	}
}

func TestCell(t *testing.T) {
	s := newSampleState(t)
	_ = s.ToggleSelection("2", true, false)
	_ = s.SetRowErrors("2", []CellError{{FieldKey: "bool", Message: "x"}})

	cell, err := s.Cell("2", "bool")
	if err != nil {
		t.Fatalf("Cell() error = %v", err)
	}
	want := Cell{Value: false, Invalid: true, Selected: true}
	if diff := cmp.Diff(want, cell); diff != "" {
		t.Errorf("Cell() mismatch (-want +got):\n%s", diff)
	}
}

func TestSubscribe(t *testing.T) {
	s := newSampleState(t)

	var events []Event
	unsubscribe := s.Subscribe(ObserverFunc(func(ev Event) {
		events = append(events, ev)
	}))

	_ = s.SetCellValue("0", "test", "x")
	_ = s.ToggleSelection("0", true, false)
	_ = s.ToggleSelection("0", true, false) // no change, no event
	_ = s.ToggleSelection("2", true, true)
	_ = s.SetCellValue("nope", "test", "x") // rejected, no event

	want := []Event{
		{Kind: CellEdited, RowIDs: []RowID{"0"}, FieldKey: "test"},
		{Kind: SelectionChanged, RowIDs: []RowID{"0"}},
		{Kind: SelectionChanged, RowIDs: []RowID{"1", "2"}},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	unsubscribe()
	_ = s.SetCellValue("0", "test", "y")
	if len(events) != len(want) {
		t.Errorf("observer called after unsubscribe")
	}
}

func TestFieldsAreCopied(t *testing.T) {
	input := sampleFields()
	s, err := New(input, sampleRows())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	input[1].Type.(Select).Options[1].Value = "changed-by-caller"

	fields := s.Fields()
	fields[0].Key = "renamed"
	fields[1].Type.(Select).Options[0].Label = "changed-via-fields"

	got, err := s.Field("second")
	if err != nil {
		t.Fatalf("Field(second) error = %v", err)
	}
	got.Type.(Select).Options[0].Value = "changed-via-field"

	if _, err := s.Field("test"); err != nil {
		t.Errorf("Field(test) error = %v after mutating Fields() copy", err)
	}
	second, _ := s.Field("second")
	want := []Option{{Value: "one", Label: "One"}, {Value: "two", Label: "Two"}}
	if diff := cmp.Diff(want, second.Type.(Select).Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if count, _ := NewValidator().Apply(s); count != 0 {
		t.Errorf("Apply() = %d errors, want 0 with the original options", count)
	}
	if !slices.Equal(s.RowIDs(), []RowID{"0", "1", "2", "3"}) {
		t.Errorf("RowIDs() = %v", s.RowIDs())
	}
}

func TestFilteredRows_RemoveWhileRanging(t *testing.T) {
	tests := []struct {
		name       string
		errorsOnly bool
		remove     func(Row) bool
		wantSeen   []RowID
		wantLeft   []RowID
	}{
		{
			name:       "remove every row",
			errorsOnly: false,
			remove:     func(Row) bool { return true },
			wantSeen:   []RowID{"0", "1", "2", "3"},
			wantLeft:   []RowID{},
		},
		{
			name:       "remove invalid rows",
			errorsOnly: true,
			remove:     func(Row) bool { return true },
			wantSeen:   []RowID{"1", "3"},
			wantLeft:   []RowID{"0", "2"},
		},
		{
			name:       "remove the next row",
			errorsOnly: false,
			remove:     func(r Row) bool { return r.ID == "0" || r.ID == "2" },
			wantSeen:   []RowID{"0", "1", "2", "3"},
			wantLeft:   []RowID{"1", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSampleState(t)
			invalid := []CellError{{FieldKey: "test", Message: "bad"}}
			for _, id := range []RowID{"1", "3"} {
				if err := s.SetRowErrors(id, invalid); err != nil {
					t.Fatalf("SetRowErrors(%s) error = %v", id, err)
				}
			}

			seen := []RowID{}
			for row := range s.FilteredRows(tt.errorsOnly) {
				seen = append(seen, row.ID)
				if tt.remove(row) {
					if err := s.RemoveRow(row.ID); err != nil {
						t.Fatalf("RemoveRow(%s) error = %v", row.ID, err)
					}
				}
			}

			if diff := cmp.Diff(tt.wantSeen, seen); diff != "" {
				t.Errorf("yielded rows mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantLeft, append([]RowID{}, s.RowIDs()...)); diff != "" {
				t.Errorf("remaining rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilteredRows_SkipsRowRemovedAhead(t *testing.T) {
	s := newSampleState(t)

	var seen []RowID
	for row := range s.FilteredRows(false) {
		seen = append(seen, row.ID)
		if row.ID == "1" {
			if err := s.RemoveRow("2"); err != nil {
				t.Fatalf("RemoveRow(2) error = %v", err)
			}
		}
	}

	if diff := cmp.Diff([]RowID{"0", "1", "3"}, seen); diff != "" {
		t.Errorf("yielded rows mismatch (-want +got):\n%s", diff)
	}
}
