package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"listd/internal/model"
)

// Inline edit session: a transient single-record sub-state. EditingID is the
// only handle on it, so a record deleted mid-edit just abandons the session
// instead of crashing, and a second edit gesture settles the first before
// starting.

func (m *Model) beginEdit(id string) {
	if m.EditingID != "" && m.EditingID != id {
		// A second edit gesture commits the active session first.
		m.commitEdit()
	}
	rec, ok := m.Store.Get(id)
	if !ok {
		m.Status = StatusBar{Text: "record no longer exists", IsError: false}
		return
	}
	m.Mode = ModeEdit
	m.EditingID = id
	m.editInput.SetValue(rec.Label)
	m.editInput.Focus()
	m.editInput.CursorEnd()
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.discardEdit()
		return m, nil
	case "enter":
		m.commitEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// commitEdit persists the new label only when it is non-empty and actually
// differs from the original; anything else is a discard. The store decides
// whether the patch changed anything, so an identical value never causes a
// save.
func (m *Model) commitEdit() {
	id := m.EditingID
	newLabel := strings.TrimSpace(m.editInput.Value())
	m.endEditSession()

	if newLabel == "" {
		m.Status = StatusBar{Text: "edit discarded: empty label", IsError: false}
		return
	}
	rec, changed, found := m.Store.Update(id, model.Patch{Label: &newLabel})
	if !found {
		// The record vanished while the session was open.
		return
	}
	if !changed {
		return
	}
	if m.saveNow() {
		m.Status = StatusBar{Text: fmt.Sprintf("renamed to %q", rec.Label), IsError: false}
	}
}

func (m *Model) discardEdit() {
	m.endEditSession()
	m.Status = StatusBar{Text: "edit discarded", IsError: false}
}

// abandonEdit drops the session without touching the store or the status
// line, for mutations that fire while a session is open.
func (m *Model) abandonEdit() {
	m.endEditSession()
}

func (m *Model) endEditSession() {
	m.EditingID = ""
	m.editInput.Blur()
	m.editInput.SetValue("")
	if m.Mode == ModeEdit {
		m.Mode = ModeBrowse
	}
}
