package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/scheduler"
)

const deliverTimeout = 15 * time.Second

// waitForReminderCmd blocks until the engine fires. A closed channel ends the
// wait loop.
func waitForReminderCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func deliverCmd(d notify.Deliverer, n notify.Notification) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()
		return DeliveryResultMsg{ID: n.ID, Err: d.Send(ctx, n)}
	}
}

func (m Model) onPermissionResult(msg PermissionResultMsg) Model {
	m.Permission = msg.Granted
	m.PermissionPending = false
	switch {
	case msg.Err != nil:
		m.LastError = msg.Err
		m.Status = StatusBar{Text: "notification permission request failed: " + msg.Err.Error(), IsError: true}
		m.log.Printf("permission request failed: %v", msg.Err)
	case msg.Granted:
		m.Status = StatusBar{Text: "notifications enabled"}
	default:
		m.Status = StatusBar{Text: "notifications disabled: permission denied", IsError: true}
	}
	return m
}

func (m Model) onReminderDue(msg ReminderDueMsg) (Model, tea.Cmd) {
	n := notify.FromEvent(msg.Event)
	m.Tracker.Fired(context.Background(), n.ID)
	m.LastFired = n.Body
	m.log.Printf("reminder %s fired", n.ID)

	cmds := []tea.Cmd{deliverCmd(m.deliverer, n)}
	if m.engine != nil {
		cmds = append(cmds, waitForReminderCmd(m.engine.C()))
	}
	return m, tea.Batch(cmds...)
}
