package views

import (
	"fmt"
	"strings"
)

type ListRowData struct {
	ID       string
	Label    string
	Done     bool
	Category string
	Minutes  int
	Selected bool
	Editing  bool
	EditView string
}

type CountsData struct {
	Total     int
	Remaining int
	HasDone   bool
}

type ListPanelData struct {
	Rows          []ListRowData
	Counts        CountsData
	Query         string
	FilterActive  bool
	FilterView    string
	CaptureActive bool
	CaptureView   string
}

type ConfirmData struct {
	Prompt string
}

// RenderListPanel draws the whole list from the projection it is handed: the
// caller decides which rows survived the filter, the renderer never inspects
// its own previous output. Counts come from the record store, not from the
// rows being drawn, so a filtered view still reports totals for the full
// collection.
func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	if data.CaptureActive {
		b.WriteString("add: " + data.CaptureView + "\n")
		b.WriteString(mutedStyle.Render("label #category @minutes | enter: add | esc: cancel") + "\n")
	}
	if data.FilterActive || strings.TrimSpace(data.Query) != "" {
		b.WriteString("filter: " + data.FilterView + "\n")
	}

	if len(data.Rows) == 0 {
		if strings.TrimSpace(data.Query) != "" {
			b.WriteString(fmt.Sprintf("(no records match %q)\n", data.Query))
		} else {
			b.WriteString("(list is empty, press a to add a record)\n")
		}
	}

	for _, row := range data.Rows {
		b.WriteString(renderRow(row) + "\n")
	}

	b.WriteString("\n" + renderSummary(data.Counts))
	return strings.TrimSpace(b.String())
}

func renderRow(row ListRowData) string {
	cursor := "  "
	if row.Selected {
		cursor = cursorStyle.Render("> ")
	}
	mark := "[ ]"
	if row.Done {
		mark = "[x]"
	}
	if row.Editing {
		return cursor + mark + " " + row.EditView
	}
	label := row.Label
	if row.Category != "" {
		label += " " + mutedStyle.Render("#"+row.Category)
	}
	if row.Minutes > 0 {
		label += " " + mutedStyle.Render(fmt.Sprintf("@%dm", row.Minutes))
	}
	if row.Done {
		label = doneStyle.Render(label)
	}
	return cursor + mark + " " + label
}

func renderSummary(c CountsData) string {
	summary := fmt.Sprintf("%d record(s), %d remaining", c.Total, c.Remaining)
	if c.HasDone {
		summary += " | c: clear completed"
	}
	return mutedStyle.Render(summary)
}

func RenderConfirm(data ConfirmData) string {
	var b strings.Builder
	b.WriteString("confirm: " + data.Prompt + "\n")
	b.WriteString(mutedStyle.Render("y: confirm | n/esc: cancel"))
	return b.String()
}

const helpMarkdown = `# listd

A persistent editable list.

## Keys

- **a** add a record (` + "`label #category @minutes`" + `)
- **enter** edit the selected label in place
- **space** toggle completion
- **d** delete the selected record
- **c** clear completed records
- **/** filter by label text
- **j/k** move the cursor
- **?** toggle this help
- **q** quit
`

func RenderHelpPanel() string {
	return RenderMarkdown(helpMarkdown)
}
