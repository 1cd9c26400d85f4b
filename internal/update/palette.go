package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsimRizwan/Med-Rem/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	notFound := func(target string) error {
		return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no reminder matches %q", target)}
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewHome
			var added bool
			m, added = m.addReminder(a.MedicineName, a.Time)
			if !added {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "reminder not added"}
			}
			return commands.Result{Message: fmt.Sprintf("added reminder: %s", a.MedicineName)}, nil
		},
		Take: func(a commands.TargetArgs) (commands.Result, error) {
			id, ok := m.resolveTarget(a.Target)
			if !ok {
				return commands.Result{}, notFound(a.Target)
			}
			m = m.toggleTaken(id)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Miss: func(a commands.TargetArgs) (commands.Result, error) {
			id, ok := m.resolveTarget(a.Target)
			if !ok {
				return commands.Result{}, notFound(a.Target)
			}
			m = m.toggleMissed(id)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Remove: func(a commands.TargetArgs) (commands.Result, error) {
			id, ok := m.resolveTarget(a.Target)
			if !ok {
				return commands.Result{}, notFound(a.Target)
			}
			m = m.removeReminder(id)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Open: func(a commands.OpenArgs) (commands.Result, error) {
			switch a.Screen {
			case "settings":
				m.CurrentView = ViewSettings
			default:
				m.CurrentView = ViewHome
			}
			return commands.Result{Message: fmt.Sprintf("opened %s", strings.ToLower(string(m.CurrentView)))}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.closePalette()
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}
