package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Body         string
	StatusLine   string
	Notification string
	Footer       string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		panelStyle.Width(64).Render(data.Body),
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
