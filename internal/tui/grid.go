package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/gridbook/internal/grid"
	"github.com/muurk/gridbook/internal/logging"
)

// EditMode represents which cell editor, if any, is open
type EditMode int

const (
	ModeBrowse EditMode = iota
	ModeEditText
	ModeEditSelect
)

// Options configures a GridModel
type Options struct {
	Title          string
	FilterErrors   bool // Start with only invalid rows visible
	ValidateOnEdit bool // Run the validator after every committed edit
}

// GridModel is the interactive grid screen. It owns no data of its own: every
// key press becomes a call on the shared grid.State.
type GridModel struct {
	State     *grid.State
	Validator *grid.Validator
	Title     string
	fields    []grid.Field

	// UI state
	Width  int
	Height int

	// Navigation
	CursorRow int // Position within the visible (possibly filtered) rows
	CursorCol int // 0 is the selection column, fields start at 1

	FilterErrors   bool
	ValidateOnEdit bool

	// Inline editing state
	Mode         EditMode
	EditRow      grid.RowID
	EditField    string
	TextInput    textinput.Model
	OptionCursor int

	// Feedback
	Status  string
	LastErr error

	activity *activity

	// Help
	Help       help.Model
	Keys       gridKeyMap
	EditorKeys editorKeyMap
}

// activity remembers the most recent grid event for the status line
type activity struct {
	last  grid.Event
	count int
}

func (a *activity) GridChanged(ev grid.Event) {
	a.last = ev
	a.count++
}

// NewGridModel creates the grid screen over an existing state
func NewGridModel(state *grid.State, opts Options) GridModel {
	input := textinput.New()
	input.Placeholder = "value"
	input.CharLimit = 256
	input.Width = 40

	act := &activity{}
	state.Subscribe(act)

	title := opts.Title
	if title == "" {
		title = "Editable grid"
	}

	return GridModel{
		State:          state,
		Validator:      grid.NewValidator(),
		Title:          title,
		fields:         state.Fields(),
		FilterErrors:   opts.FilterErrors,
		ValidateOnEdit: opts.ValidateOnEdit,
		Mode:           ModeBrowse,
		TextInput:      input,
		activity:       act,
		Help:           help.New(),
		Keys:           newGridKeyMap(),
		EditorKeys:     newEditorKeyMap(),
	}
}

// Init initializes the grid screen
func (m GridModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.Mode {
		case ModeEditText:
			return m.updateTextEditor(msg)
		case ModeEditSelect:
			return m.updateSelectEditor(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	// Cursor blink and other textinput messages
	if m.Mode == ModeEditText {
		var cmd tea.Cmd
		m.TextInput, cmd = m.TextInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateBrowse handles input when no editor is open
func (m GridModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.LastErr = nil

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.moveRow(-1)

	case key.Matches(msg, m.Keys.Down):
		m.moveRow(1)

	case key.Matches(msg, m.Keys.Left):
		if m.CursorCol > 0 {
			m.CursorCol--
		}

	case key.Matches(msg, m.Keys.Right):
		if m.CursorCol < len(m.fields) {
			m.CursorCol++
		}

	case key.Matches(msg, m.Keys.Toggle):
		m.toggleCurrent(false)

	case key.Matches(msg, m.Keys.ExtendUp):
		m.extendSelection(-1)

	case key.Matches(msg, m.Keys.ExtendDown):
		m.extendSelection(1)

	case key.Matches(msg, m.Keys.ExtendRange):
		m.toggleCurrent(true)

	case key.Matches(msg, m.Keys.SelectAll):
		all := m.State.Len() > 0 && m.State.SelectionCount() == m.State.Len()
		m.State.SelectAll(!all)
		if all {
			m.Status = "Selection cleared"
		} else {
			m.Status = "All rows selected"
		}

	case key.Matches(msg, m.Keys.Edit):
		return m.startEditing()

	case key.Matches(msg, m.Keys.Filter):
		m.FilterErrors = !m.FilterErrors
		m.clampCursor()

	case key.Matches(msg, m.Keys.Validate):
		m.runValidation()

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	}

	return m, nil
}

// startEditing opens the editor matching the focused cell's field type
func (m GridModel) startEditing() (tea.Model, tea.Cmd) {
	id, ok := m.currentRowID()
	if !ok {
		return m, nil
	}

	// Enter on the selection column behaves like clicking the checkbox
	if m.CursorCol == 0 {
		m.toggleCurrent(false)
		return m, nil
	}

	field := m.fields[m.CursorCol-1]
	value, err := m.State.Value(id, field.Key)
	if err != nil {
		m.reject("edit", err)
		return m, nil
	}

	switch t := field.Type.(type) {
	case grid.Checkbox:
		checked, _ := value.(bool)
		m.commit(id, field.Key, !checked)
		return m, nil

	case grid.Select:
		if len(t.Options) == 0 {
			m.Status = fmt.Sprintf("%s has no options", field.Label)
			return m, nil
		}
		current, _ := value.(string)
		m.OptionCursor = max(t.IndexOf(current), 0)
		m.Mode = ModeEditSelect
		m.EditRow = id
		m.EditField = field.Key
		return m, nil

	default:
		text := ""
		if value != nil {
			text = fmt.Sprint(value)
		}
		m.Mode = ModeEditText
		m.EditRow = id
		m.EditField = field.Key
		m.TextInput.SetValue(text)
		m.TextInput.CursorEnd()
		return m, m.TextInput.Focus()
	}
}

// updateTextEditor handles input while the text editor is open
func (m GridModel) updateTextEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.EditorKeys.Cancel):
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.EditorKeys.Confirm):
		value := m.TextInput.Value()
		row, field := m.EditRow, m.EditField
		m.closeEditor()
		m.commit(row, field, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.TextInput, cmd = m.TextInput.Update(msg)
	return m, cmd
}

// updateSelectEditor handles input while the option list is open
func (m GridModel) updateSelectEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field, err := m.State.Field(m.EditField)
	if err != nil {
		m.closeEditor()
		m.reject("edit", err)
		return m, nil
	}
	options := field.Type.(grid.Select).Options

	switch {
	case key.Matches(msg, m.EditorKeys.Cancel):
		m.closeEditor()

	case key.Matches(msg, m.EditorKeys.Up):
		m.OptionCursor--
		if m.OptionCursor < 0 {
			m.OptionCursor = len(options) - 1
		}

	case key.Matches(msg, m.EditorKeys.Down):
		m.OptionCursor++
		if m.OptionCursor >= len(options) {
			m.OptionCursor = 0
		}

	case key.Matches(msg, m.EditorKeys.Confirm):
		row, value := m.EditRow, options[m.OptionCursor].Value
		m.closeEditor()
		m.commit(row, field.Key, value)
	}

	return m, nil
}

func (m *GridModel) closeEditor() {
	m.Mode = ModeBrowse
	m.EditRow = ""
	m.EditField = ""
	m.TextInput.Blur()
}

// commit writes a value into the grid, then runs validation when enabled
func (m *GridModel) commit(id grid.RowID, fieldKey string, value any) {
	if err := m.State.SetCellValue(id, fieldKey, value); err != nil {
		m.reject("set_cell_value", err)
		return
	}
	m.Status = fmt.Sprintf("Updated %s on row %s", fieldKey, id)

	if m.ValidateOnEdit {
		m.runValidation()
	}
}

func (m *GridModel) runValidation() {
	count, err := m.Validator.Apply(m.State)
	if err != nil {
		m.reject("validate", err)
		return
	}

	invalid := 0
	for range m.State.FilteredRows(true) {
		invalid++
	}
	logging.LogValidation(count, invalid)

	if count == 0 {
		m.Status = "✓ All rows valid"
	} else {
		m.Status = fmt.Sprintf("✗ %d error(s) in %d row(s)", count, invalid)
	}
	m.clampCursor()
}

func (m *GridModel) toggleCurrent(rangeExtend bool) {
	id, ok := m.currentRowID()
	if !ok {
		return
	}
	if err := m.State.ToggleSelection(id, !m.State.IsSelected(id), rangeExtend); err != nil {
		m.reject("toggle_selection", err)
	}
}

// extendSelection moves the cursor and selects everything between the anchor
// and the new row, like shift+arrow in a spreadsheet
func (m *GridModel) extendSelection(delta int) {
	id, ok := m.currentRowID()
	if !ok {
		return
	}
	if _, hasAnchor := m.State.Anchor(); !hasAnchor {
		if err := m.State.ToggleSelection(id, true, false); err != nil {
			m.reject("toggle_selection", err)
			return
		}
	}

	m.moveRow(delta)
	target, _ := m.currentRowID()
	if err := m.State.ToggleSelection(target, true, true); err != nil {
		m.reject("toggle_selection", err)
	}
}

func (m *GridModel) reject(op string, err error) {
	m.LastErr = err
	logging.LogContractViolation(op, err)
}

func (m *GridModel) moveRow(delta int) {
	m.CursorRow += delta
	m.clampCursor()
}

func (m *GridModel) clampCursor() {
	n := len(m.visibleRows())
	if m.CursorRow >= n {
		m.CursorRow = n - 1
	}
	if m.CursorRow < 0 {
		m.CursorRow = 0
	}
}

func (m GridModel) visibleRows() []grid.Row {
	var rows []grid.Row
	for row := range m.State.FilteredRows(m.FilterErrors) {
		rows = append(rows, row)
	}
	return rows
}

func (m GridModel) currentRowID() (grid.RowID, bool) {
	rows := m.visibleRows()
	if m.CursorRow < 0 || m.CursorRow >= len(rows) {
		return "", false
	}
	return rows[m.CursorRow].ID, true
}
