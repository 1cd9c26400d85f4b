package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme        string
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	Notice       string
}

// Theme is the palette picked on the settings screen.
type Theme struct {
	Header lipgloss.Color
	Status lipgloss.Color
	Error  lipgloss.Color
	Border lipgloss.Color
	Footer lipgloss.Color
	Accent lipgloss.Color
}

var themes = map[string]Theme{
	"classic": {Header: "12", Status: "10", Error: "9", Border: "7", Footer: "8", Accent: "14"},
	"ocean":   {Header: "#4FC3F7", Status: "#80CBC4", Error: "#FF8A80", Border: "#0277BD", Footer: "#546E7A", Accent: "#26C6DA"},
	"sunset":  {Header: "#FF7043", Status: "#FFCA28", Error: "#E53935", Border: "#AB47BC", Footer: "#8D6E63", Accent: "#FFA726"},
}

// ThemeByName falls back to classic for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["classic"]
}

func RenderApp(data AppData) string {
	theme := ThemeByName(data.Theme)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Header)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1)
	footerStyle := lipgloss.NewStyle().Foreground(theme.Footer)

	if data.Notice != "" {
		noticeStyle := panelStyle.BorderForeground(theme.Error).Width(58)
		return strings.Join([]string{
			headerStyle.Render(data.Header),
			noticeStyle.Render(data.Notice),
		}, "\n")
	}

	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := lipgloss.NewStyle().Foreground(theme.Status).Render(data.StatusLine)
	if data.StatusError {
		status = lipgloss.NewStyle().Foreground(theme.Error).Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
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
