package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsimRizwan/Med-Rem/internal/settings"
	"github.com/AsimRizwan/Med-Rem/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.Settings.Cursor < len(settings.Fields)-1 {
			m.Settings.Cursor++
		}
	case "k", "up":
		if m.Settings.Cursor > 0 {
			m.Settings.Cursor--
		}
	case "h", "left":
		m = m.cycleSetting(-1)
	case "l", "right", "enter", " ":
		m = m.cycleSetting(1)
	case "s":
		m = m.saveSettings()
	}
	return m
}

func (m Model) cycleSetting(step int) Model {
	field := settings.Fields[m.Settings.Cursor]
	m.Settings.Current = m.Settings.Current.Cycle(field, step)
	m.Settings.Dirty = true
	if m.notifier != nil {
		m.notifier.Apply(m.Settings.Current)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", field.Label(), m.Settings.Current.Value(field))}
	return m
}

func (m Model) saveSettings() Model {
	if m.settingsPath == "" {
		m.Status = StatusBar{Text: "settings applied but not persisted: no settings file configured", IsError: true}
		return m
	}
	if err := settings.Save(m.settingsPath, m.Settings.Current); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save settings: %v", err), IsError: true}
		m.log.Printf("save settings failed: %v", err)
		return m
	}
	m.Settings.Dirty = false
	m.Status = StatusBar{Text: "settings saved"}
	return m
}

func (m Model) renderSettingsView() string {
	rows := make([]views.SettingsRowData, 0, len(settings.Fields))
	for i, f := range settings.Fields {
		rows = append(rows, views.SettingsRowData{
			Label:    f.Label(),
			Value:    m.Settings.Current.Value(f),
			Selected: i == m.Settings.Cursor,
		})
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Rows:  rows,
		Dirty: m.Settings.Dirty,
		Path:  m.settingsPath,
	})
}
