package views

import (
	"fmt"
	"strings"
)

type ReminderRowData struct {
	Index        int
	ID           string
	MedicineName string
	Time         string
	Taken        bool
	Missed       bool
}

// HomePanelData carries the reminder list. Rows are rendered as text when
// TableView is empty.
type HomePanelData struct {
	NameInputView string
	TimeInputView string
	FormActive    bool
	TableView     string
	Rows          []ReminderRowData
	Cursor        int
}

type SettingsRowData struct {
	Label    string
	Value    string
	Selected bool
}

type SettingsPanelData struct {
	Rows  []SettingsRowData
	Dirty bool
	Path  string
}

type NoticeData struct {
	Title string
	Body  string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderHomePanel(data HomePanelData) string {
	var b strings.Builder
	b.WriteString("home:\n")
	b.WriteString(data.NameInputView + "\n")
	b.WriteString(data.TimeInputView + "\n")
	if data.FormActive {
		b.WriteString("form: [tab]field [enter]add reminder [esc]done\n")
	} else {
		b.WriteString("actions: [a]add [t]taken [m]missed [d]delete [j/k]move\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("\n(no reminders yet)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString("\n")
	if data.TableView != "" {
		b.WriteString(data.TableView)
		return strings.TrimSpace(b.String())
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor && !data.FormActive {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s @ %s\n", cursor, row.Index, statusBadge(row), row.MedicineName, row.Time))
	}
	return strings.TrimSpace(b.String())
}

func statusBadge(row ReminderRowData) string {
	return StatusBadge(row.Taken, row.Missed)
}

func StatusBadge(taken, missed bool) string {
	switch {
	case taken:
		return "[TAKEN]"
	case missed:
		return "[MISSED]"
	default:
		return "[ ]"
	}
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]select [h/l]change [s]save\n")
	b.WriteString("note: ringtone and delay apply to reminders added from now on\n\n")
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: < %s >\n", cursor, row.Label, row.Value))
	}
	if data.Dirty {
		b.WriteString("\n(unsaved changes)")
	}
	if data.Path != "" {
		b.WriteString("\nfile: " + data.Path)
	}
	return strings.TrimSpace(b.String())
}

func RenderNotice(data NoticeData) string {
	return fmt.Sprintf("%s\n\n%s\n\n[enter] OK", data.Title, data.Body)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return "notification: " + body
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
