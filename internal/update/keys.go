package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"listd/internal/capture"
)

type keyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Clear  key.Binding
	Filter key.Binding
	Up     key.Binding
	Down   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit label")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Clear, k.Filter, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Mode {
	case ModeCapture:
		return m.handleCaptureKey(msg)
	case ModeFilter:
		return m.handleFilterKey(msg)
	case ModeEdit:
		return m.handleEditKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.Mode = ModeCapture
		m.captureInput.SetValue("")
		m.captureInput.Focus()
		m.Status = StatusBar{Text: "capture mode", IsError: false}
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.Mode = ModeFilter
		m.filterInput.SetValue(m.Query)
		m.filterInput.Focus()
		m.filterInput.CursorEnd()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.Cursor < len(m.visible())-1 {
			m.Cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if rec, ok := m.selectedRecord(); ok {
			// The intended value comes from the rendered state of the
			// selected row at gesture time, applied explicitly.
			m.applySetDone(rec.ID, !rec.Done)
		}
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if rec, ok := m.selectedRecord(); ok {
			m.beginEdit(rec.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.selectedRecord(); ok {
			m.requestDelete(rec.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.requestClearDone()
		return m, nil
	}
	return m, nil
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.captureInput.Blur()
		m.captureInput.SetValue("")
		m.Status = StatusBar{Text: "capture cancelled", IsError: false}
		return m, nil
	case "enter":
		m.submitCapture(m.captureInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.captureInput, cmd = m.captureInput.Update(msg)
	return m, cmd
}

// Filter keystrokes only change the projection: the store and the slot are
// never touched from here.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.Query = ""
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.ensureCursor()
		m.Status = StatusBar{Text: "filter cleared", IsError: false}
		return m, nil
	case "enter":
		m.Mode = ModeBrowse
		m.Query = m.filterInput.Value()
		m.filterInput.Blur()
		m.ensureCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.ensureCursor()
	return m, cmd
}

func (m *Model) submitCapture(input string) {
	entry, err := capture.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Invalid Input", err.Error(), "error")
		return
	}
	rec, err := m.Store.CreateRecord(entry.Record())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Invalid Input", err.Error(), "error")
		return
	}
	saved := m.saveNow()
	m.Mode = ModeBrowse
	m.captureInput.Blur()
	m.captureInput.SetValue("")
	m.moveCursorTo(rec.ID)
	if saved {
		m.Status = StatusBar{Text: fmt.Sprintf("added %q", rec.Label), IsError: false}
	}
}

func (m *Model) applySetDone(id string, done bool) {
	if m.EditingID == id {
		m.abandonEdit()
	}
	if !m.Store.SetDone(id, done) {
		return
	}
	m.saveNow()
	m.ensureCursor()
}

func (m *Model) moveCursorTo(id string) {
	for i, rec := range m.visible() {
		if rec.ID == id {
			m.Cursor = i
			return
		}
	}
	m.ensureCursor()
}
