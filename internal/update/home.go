package update

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/views"
)

const missingInputMessage = "Please enter medicine name and reminder time."

func (m Model) handleHomeKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "a", "tab":
		m.Form.Active = true
		m.Form.Focus = FieldName
	case "j", "down":
		if m.Cursor < m.Tracker.Store().Len()-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "t":
		if r, ok := m.selectedReminder(); ok {
			m = m.toggleTaken(r.ID)
		}
	case "m":
		if r, ok := m.selectedReminder(); ok {
			m = m.toggleMissed(r.ID)
		}
	case "d", "x", "delete":
		if r, ok := m.selectedReminder(); ok {
			m = m.removeReminder(r.ID)
		}
	}
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.Form.Active = false
		return m
	case tea.KeyTab, tea.KeyShiftTab:
		if m.Form.Focus == FieldName {
			m.Form.Focus = FieldTime
		} else {
			m.Form.Focus = FieldName
		}
		return m
	case tea.KeyEnter:
		m, _ = m.addReminder(m.Form.Name, m.Form.Time)
		return m
	case tea.KeyBackspace:
		m.setFormField(trimLastRune(m.formField()))
		return m
	case tea.KeySpace:
		m.setFormField(m.formField() + " ")
		return m
	case tea.KeyRunes:
		m.setFormField(m.formField() + string(msg.Runes))
		return m
	}
	return m
}

func (m Model) formField() string {
	if m.Form.Focus == FieldTime {
		return m.Form.Time
	}
	return m.Form.Name
}

func (m *Model) setFormField(v string) {
	if m.Form.Focus == FieldTime {
		m.Form.Time = v
		return
	}
	m.Form.Name = v
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// addReminder reports whether the reminder was stored. A scheduling failure
// still stores it and raises a notice.
func (m Model) addReminder(name, rawTime string) (Model, bool) {
	r, err := m.Tracker.Add(context.Background(), name, rawTime)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			body := missingInputMessage
			if vErr.Field == model.FieldReminderTime && strings.TrimSpace(rawTime) != "" {
				body = "Please enter a valid reminder time, e.g. 08:00 AM or 20:30."
			}
			m.Notice = &Notice{Title: "Error", Body: body}
			return m, false
		}
		var schedErr *notify.SchedulingError
		if !errors.As(err, &schedErr) {
			m.Notice = &Notice{Title: "Error", Body: err.Error()}
			return m, false
		}
		m.Notice = &Notice{Title: "Notification not scheduled", Body: schedErr.Error()}
	}

	m.Form.Name = ""
	m.Form.Time = ""
	m.Form.Focus = FieldName
	m.Cursor = m.Tracker.Store().Len() - 1
	if err == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("added %s at %s", r.MedicineName, r.Time.Format(m.timeFormat()))}
	}
	return m, true
}

func (m Model) toggleTaken(id string) Model {
	if r, ok := m.Tracker.ToggleTaken(context.Background(), id); ok {
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", r.MedicineName, strings.ToLower(string(r.Status())))}
	}
	return m
}

func (m Model) toggleMissed(id string) Model {
	if r, ok := m.Tracker.ToggleMissed(context.Background(), id); ok {
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", r.MedicineName, strings.ToLower(string(r.Status())))}
	}
	return m
}

func (m Model) removeReminder(id string) Model {
	if r, ok := m.Tracker.Remove(context.Background(), id); ok {
		m.Status = StatusBar{Text: fmt.Sprintf("deleted %s", r.MedicineName)}
		if m.Cursor >= m.Tracker.Store().Len() && m.Cursor > 0 {
			m.Cursor--
		}
	}
	return m
}

func (m Model) selectedReminder() (model.Reminder, bool) {
	list := m.Tracker.List()
	if m.Cursor < 0 || m.Cursor >= len(list) {
		return model.Reminder{}, false
	}
	return list[m.Cursor], true
}

// resolveTarget accepts a 1-based row number or a reminder id.
func (m Model) resolveTarget(target string) (string, bool) {
	list := m.Tracker.List()
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > len(list) {
			return "", false
		}
		return list[n-1].ID, true
	}
	if _, ok := m.Tracker.Store().Get(target); ok {
		return target, true
	}
	return "", false
}

func (m Model) renderHomeView() string {
	list := m.Tracker.List()
	rows := make([]views.ReminderRowData, 0, len(list))
	format := m.timeFormat()
	for i, r := range list {
		rows = append(rows, views.ReminderRowData{
			Index:        i + 1,
			ID:           r.ID,
			MedicineName: r.MedicineName,
			Time:         r.Time.Format(format),
			Taken:        r.Taken,
			Missed:       r.Missed,
		})
	}
	return views.RenderHomePanel(views.HomePanelData{
		NameInputView: m.nameInput.View(),
		TimeInputView: m.timeInput.View(),
		FormActive:    m.Form.Active,
		TableView:     m.reminderTable.View(),
		Rows:          rows,
		Cursor:        m.Cursor,
	})
}
