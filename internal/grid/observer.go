package grid

// EventKind identifies what changed in the grid
type EventKind int

const (
	CellEdited EventKind = iota
	SelectionChanged
	ErrorsChanged
	RowRemoved
)

// String returns the event kind name used in logs
func (k EventKind) String() string {
	switch k {
	case CellEdited:
		return "cell_edited"
	case SelectionChanged:
		return "selection_changed"
	case ErrorsChanged:
		return "errors_changed"
	case RowRemoved:
		return "row_removed"
	default:
		return "unknown"
	}
}

// Event describes one completed mutation
type Event struct {
	Kind     EventKind
	RowIDs   []RowID
	FieldKey string // Set for CellEdited
}

// Observer is notified after every successful mutation
type Observer interface {
	GridChanged(Event)
}

// ObserverFunc adapts a plain function to Observer
type ObserverFunc func(Event)

// GridChanged calls f(ev)
func (f ObserverFunc) GridChanged(ev Event) {
	f(ev)
}
