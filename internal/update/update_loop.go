package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3)
	if m.notifier != nil {
		cmds = append(cmds, requestPermissionCmd(m.notifier), m.permSpinner.Tick)
	}
	if m.engine != nil {
		cmds = append(cmds, waitForReminderCmd(m.engine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.Notice != nil {
			switch keyStr {
			case "enter", "esc", " ":
				m.Notice = nil
			}
			return m, nil
		}

		if m.Palette.Active {
			if keyStr == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		if m.CurrentView == ViewHome && m.Form.Active {
			return m.handleFormKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Home:
			m.CurrentView = ViewHome
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewHome:
			return m.handleHomeKey(typed), nil
		case ViewSettings:
			return m.handleSettingsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
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
			m.log.Printf("error: %v", typed.Err)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.PermissionPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.permSpinner, cmd = m.permSpinner.Update(typed)
		return m, cmd
	case PermissionResultMsg:
		return m.onPermissionResult(typed), nil
	case ReminderDueMsg:
		return m.onReminderDue(typed)
	case DeliveryResultMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("notification delivery failed: %v", typed.Err), IsError: true}
			m.log.Printf("deliver %s failed: %v", typed.ID, typed.Err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	notice := ""
	if m.Notice != nil {
		notice = views.RenderNotice(views.NoticeData{Title: m.Notice.Title, Body: m.Notice.Body})
	}

	leftPane := ""
	rightPane := m.renderCommandPalette() + m.renderHelpIfVisible()
	switch m.CurrentView {
	case ViewHome:
		leftPane = m.renderHomeView()
	case ViewSettings:
		leftPane = m.renderSettingsView()
	}

	notifications := "off"
	switch {
	case m.PermissionPending:
		notifications = m.permSpinner.View() + " checking"
	case m.Permission:
		notifications = "on"
	}

	return views.RenderApp(views.AppData{
		Theme:        m.Settings.Current.Theme,
		Header:       fmt.Sprintf("medrem | view: %s | reminders: %d | notifications: %s", m.CurrentView, m.Tracker.Store().Len(), notifications),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: views.RenderNotification(m.LastFired),
		Notice:       notice,
		Footer:       fmt.Sprintf("keys: %s home | %s settings | / cmd | %s help | %s quit", m.Keys.Home, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func isKnownView(v View) bool {
	switch v {
	case ViewHome, ViewSettings:
		return true
	default:
		return false
	}
}

func requestPermissionCmd(n *notify.Scheduler) tea.Cmd {
	return func() tea.Msg {
		granted, err := n.RequestPermission(context.Background())
		return PermissionResultMsg{Granted: granted, Err: err}
	}
}
