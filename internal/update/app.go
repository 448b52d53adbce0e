package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"listd/internal/model"
	"listd/internal/storage"
	"listd/internal/views"
)

type Mode string

const (
	ModeBrowse  Mode = "browse"
	ModeCapture Mode = "capture"
	ModeFilter  Mode = "filter"
	ModeEdit    Mode = "edit"
	ModeConfirm Mode = "confirm"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Model is the interaction controller: it owns the record store, runs every
// gesture as mutate -> save -> render, and hosts the transient sub-states
// (capture form, filter, inline edit session, confirm gate).
type Model struct {
	Mode          Mode
	Store         *model.Store
	Repo          storage.Repository
	Cursor        int
	Query         string
	EditingID     string
	Confirm       ConfirmState
	Status        StatusBar
	Notifications []Notification
	HelpVisible   bool
	Quitting      bool
	LastError     error

	confirmGate  bool
	captureInput textinput.Model
	filterInput  textinput.Model
	editInput    textinput.Model
	helpModel    help.Model
	keys         keyMap
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// QuickAddRecordMsg feeds a raw capture line into the controller without
// going through the capture form. Used by scripted drivers.
type QuickAddRecordMsg struct {
	Input string
}

// SetDoneMsg applies an explicit completion value, never a blind flip.
type SetDoneMsg struct {
	ID   string
	Done bool
}

// DeleteRecordMsg removes a record, honoring the confirm gate setting.
type DeleteRecordMsg struct {
	ID string
}

// ClearDoneMsg removes every completed record in one batch.
type ClearDoneMsg struct{}

// BeginEditMsg opens an inline edit session on a record by id.
type BeginEditMsg struct {
	ID string
}

func NewModel() Model {
	return NewModelWithRepository(model.NewStore(nil), nil, DefaultRuntimeConfig())
}

func NewModelWithRepository(store *model.Store, repo storage.Repository, cfg RuntimeConfig) Model {
	m := Model{
		Mode:        ModeBrowse,
		Store:       store,
		Repo:        repo,
		confirmGate: cfg.ConfirmDestructive,
		keys:        defaultKeyMap(),
	}
	m.initInputs()
	return m
}

func (m *Model) initInputs() {
	m.captureInput = textinput.New()
	m.captureInput.Prompt = "> "
	m.captureInput.CharLimit = 256
	m.captureInput.Width = 48

	m.filterInput = textinput.New()
	m.filterInput.Prompt = "/"
	m.filterInput.CharLimit = 128
	m.filterInput.Width = 40

	m.editInput = textinput.New()
	m.editInput.Prompt = ""
	m.editInput.CharLimit = 256
	m.editInput.Width = 48

	m.helpModel = help.New()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case QuickAddRecordMsg:
		m.submitCapture(typed.Input)
		return m, nil
	case SetDoneMsg:
		m.applySetDone(typed.ID, typed.Done)
		return m, nil
	case DeleteRecordMsg:
		m.requestDelete(typed.ID)
		return m, nil
	case ClearDoneMsg:
		m.requestClearDone()
		return m, nil
	case BeginEditMsg:
		m.beginEdit(typed.ID)
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.Mode {
	case ModeConfirm:
		body = m.renderListPanel() + "\n\n" + views.RenderConfirm(views.ConfirmData{Prompt: m.Confirm.Prompt})
	default:
		body = m.renderListPanel()
	}
	if m.HelpVisible {
		body += "\n\n" + views.RenderHelpPanel()
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	notification := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notification = fmt.Sprintf("[%s] %s", last.Level, last.Body)
	}

	counts := m.Store.Counts()
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("listd | %d record(s) | mode: %s", counts.Total, m.Mode),
		Body:         body,
		StatusLine:   status,
		Notification: notification,
		Footer:       m.helpModel.View(m.keys),
	})
}

// activeQuery is the filter text the renderer sees right now: the live input
// while the filter is being typed, the committed query otherwise.
func (m Model) activeQuery() string {
	if m.Mode == ModeFilter {
		return m.filterInput.Value()
	}
	return m.Query
}

// visible is the filtered read-only projection the cursor moves over.
func (m Model) visible() []model.Record {
	return m.Store.Filter(m.activeQuery())
}

func (m *Model) ensureCursor() {
	visible := m.visible()
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(visible) && len(visible) > 0 {
		m.Cursor = len(visible) - 1
	}
	if len(visible) == 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedRecord() (model.Record, bool) {
	visible := m.visible()
	if len(visible) == 0 || m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Record{}, false
	}
	return visible[m.Cursor], true
}

func (m Model) renderListPanel() string {
	visible := m.visible()
	rows := make([]views.ListRowData, 0, len(visible))
	for i, rec := range visible {
		row := views.ListRowData{
			ID:       rec.ID,
			Label:    rec.Label,
			Done:     rec.Done,
			Category: rec.Category,
			Minutes:  rec.Minutes,
			Selected: m.Mode != ModeCapture && i == m.Cursor,
		}
		if m.Mode == ModeEdit && rec.ID == m.EditingID {
			row.Editing = true
			row.EditView = m.editInput.View()
		}
		rows = append(rows, row)
	}

	counts := m.Store.Counts()
	return views.RenderListPanel(views.ListPanelData{
		Rows: rows,
		Counts: views.CountsData{
			Total:     counts.Total,
			Remaining: counts.Remaining,
			HasDone:   counts.HasDone,
		},
		Query:         m.activeQuery(),
		FilterActive:  m.Mode == ModeFilter,
		FilterView:    m.filterInput.View(),
		CaptureActive: m.Mode == ModeCapture,
		CaptureView:   m.captureInput.View(),
	})
}

// saveNow persists the full collection immediately after a mutation. A
// failure is terminal for that single write: the in-memory state stays, the
// user sees an error status, nothing retries. Returns whether the write
// succeeded so callers can report their own outcome.
func (m *Model) saveNow() bool {
	if m.Repo == nil {
		return true
	}
	if err := m.Repo.Save(context.Background(), m.Store.Records()); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		m.notify("Save Failed", err.Error(), "error")
		return false
	}
	return true
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}
