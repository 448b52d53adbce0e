package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type ConfirmAction string

const (
	ConfirmDelete    ConfirmAction = "delete"
	ConfirmClearDone ConfirmAction = "clear_done"
)

// ConfirmState is the pending destructive action while the gate is shown.
type ConfirmState struct {
	Action ConfirmAction
	ID     string
	Count  int
	Prompt string
}

func (m *Model) requestDelete(id string) {
	rec, ok := m.Store.Get(id)
	if !ok {
		return
	}
	if m.EditingID == id {
		m.abandonEdit()
	}
	if !m.confirmGate {
		m.performDelete(id)
		return
	}
	m.Mode = ModeConfirm
	m.Confirm = ConfirmState{
		Action: ConfirmDelete,
		ID:     id,
		Prompt: fmt.Sprintf("delete %q?", rec.Label),
	}
}

func (m *Model) requestClearDone() {
	counts := m.Store.Counts()
	doneCount := counts.Total - counts.Remaining
	if doneCount == 0 {
		m.Status = StatusBar{Text: "no completed records", IsError: false}
		return
	}
	if !m.confirmGate {
		m.performClearDone()
		return
	}
	m.Mode = ModeConfirm
	m.Confirm = ConfirmState{
		Action: ConfirmClearDone,
		Count:  doneCount,
		Prompt: fmt.Sprintf("clear %d completed record(s)?", doneCount),
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.acceptConfirm()
		return m, nil
	case "n", "esc":
		// Declining is a normal outcome, not an error.
		m.Mode = ModeBrowse
		m.Confirm = ConfirmState{}
		m.Status = StatusBar{Text: "cancelled", IsError: false}
		return m, nil
	}
	return m, nil
}

func (m *Model) acceptConfirm() {
	pending := m.Confirm
	m.Mode = ModeBrowse
	m.Confirm = ConfirmState{}
	switch pending.Action {
	case ConfirmDelete:
		m.performDelete(pending.ID)
	case ConfirmClearDone:
		m.performClearDone()
	}
}

func (m *Model) performDelete(id string) {
	if m.EditingID == id {
		m.abandonEdit()
	}
	if !m.Store.Remove(id) {
		return
	}
	saved := m.saveNow()
	m.ensureCursor()
	if saved {
		m.Status = StatusBar{Text: "record deleted", IsError: false}
	}
}

// performClearDone removes the whole completed batch with a single save,
// not one save per record.
func (m *Model) performClearDone() {
	if m.EditingID != "" {
		if rec, ok := m.Store.Get(m.EditingID); !ok || rec.Done {
			m.abandonEdit()
		}
	}
	removed := m.Store.RemoveDone()
	if removed == 0 {
		return
	}
	saved := m.saveNow()
	m.ensureCursor()
	if saved {
		m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed record(s)", removed), IsError: false}
	}
}
