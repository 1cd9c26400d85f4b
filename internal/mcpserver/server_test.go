package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/reminders"
)

type failingScheduler struct{}

func (failingScheduler) Schedule(_ context.Context, r model.Reminder) error {
	return &notify.SchedulingError{ReminderID: r.ID, Reason: notify.ReasonPlatform, Err: errors.New("engine stopped")}
}

func (failingScheduler) Cancel(context.Context, string) error { return nil }

func newTestServer(sched reminders.Scheduler) *Server {
	n := 0
	store := reminders.NewStore(reminders.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("rem-%d", n)
	}))
	return NewServer(reminders.NewTracker(store, sched, nil, nil), model.TimeFormat12Hour, "test")
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestAddAndListReminders(t *testing.T) {
	s := newTestServer(nil)
	ctx := t.Context()

	res, err := s.handleAddReminder(ctx, call("add_reminder", map[string]any{"medicine_name": "Vitamin D", "time": "08:00 AM"}))
	if err != nil || res.IsError {
		t.Fatalf("add failed: err=%v text=%s", err, resultText(t, res))
	}
	var added reminderView
	if err := json.Unmarshal([]byte(resultText(t, res)), &added); err != nil {
		t.Fatalf("decode add result: %v", err)
	}
	if added.ID != "rem-1" || added.ReminderTime != "08:00 AM" || added.Taken || added.Missed || added.Status != "Pending" {
		t.Fatalf("unexpected reminder: %#v", added)
	}

	if _, err := s.handleAddReminder(ctx, call("add_reminder", map[string]any{"medicine_name": "Aspirin", "time": "21:15"})); err != nil {
		t.Fatalf("add second: %v", err)
	}

	res, err = s.handleListReminders(ctx, call("list_reminders", nil))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var list []reminderView
	if err := json.Unmarshal([]byte(resultText(t, res)), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 || list[0].MedicineName != "Vitamin D" || list[1].ReminderTime != "09:15 PM" {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestServer(nil)
	res, _ := s.handleListReminders(t.Context(), call("list_reminders", nil))
	if got := resultText(t, res); got != "No reminders found." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestAddValidationIsToolError(t *testing.T) {
	s := newTestServer(nil)
	res, err := s.handleAddReminder(t.Context(), call("add_reminder", map[string]any{"medicine_name": "", "time": "9:00"}))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "medicineName") {
		t.Fatalf("expected validation tool error, got %q", resultText(t, res))
	}
	if len(s.tracker.List()) != 0 {
		t.Fatal("expected store unchanged")
	}
}

func TestAddSchedulingFailureKeepsReminder(t *testing.T) {
	s := newTestServer(failingScheduler{})
	res, _ := s.handleAddReminder(t.Context(), call("add_reminder", map[string]any{"medicine_name": "Aspirin", "time": "9:00 AM"}))
	if !res.IsError || !strings.Contains(resultText(t, res), "saved but not scheduled") {
		t.Fatalf("expected scheduling tool error, got %q", resultText(t, res))
	}
	if len(s.tracker.List()) != 1 {
		t.Fatal("expected reminder kept")
	}
}

func TestToggleAndDelete(t *testing.T) {
	s := newTestServer(nil)
	ctx := t.Context()
	if _, err := s.handleAddReminder(ctx, call("add_reminder", map[string]any{"medicine_name": "Aspirin", "time": "9:00 AM"})); err != nil {
		t.Fatalf("add: %v", err)
	}

	res, _ := s.handleToggleMissed(ctx, call("toggle_missed", map[string]any{"id": "rem-1"}))
	res, _ = s.handleToggleTaken(ctx, call("toggle_taken", map[string]any{"id": "rem-1"}))
	var got reminderView
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if !got.Taken || got.Missed {
		t.Fatalf("expected taken and not missed, got %#v", got)
	}

	res, _ = s.handleToggleTaken(ctx, call("toggle_taken", map[string]any{"id": "nope"}))
	if res.IsError || !strings.Contains(resultText(t, res), "No reminder") {
		t.Fatalf("expected silent no-op, got %q", resultText(t, res))
	}

	res, _ = s.handleDeleteReminder(ctx, call("delete_reminder", map[string]any{"id": "rem-1"}))
	if !strings.Contains(resultText(t, res), "deleted") {
		t.Fatalf("unexpected delete text: %q", resultText(t, res))
	}
	if len(s.tracker.List()) != 0 {
		t.Fatal("expected reminder removed")
	}

	res, _ = s.handleDeleteReminder(ctx, call("delete_reminder", map[string]any{}))
	if !res.IsError {
		t.Fatal("expected missing id to be a tool error")
	}
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	s := newTestServer(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.handleAddReminder(context.Background(), call("add_reminder", map[string]any{
				"medicine_name": fmt.Sprintf("med-%d", i),
				"time":          "10:00",
			}))
		}(i)
	}
	wg.Wait()
	if got := len(s.tracker.List()); got != 20 {
		t.Fatalf("expected 20 reminders, got %d", got)
	}
}

func TestAddReminderDescriptionIsOneShot(t *testing.T) {
	if strings.Contains(strings.ToLower(addReminderDescription), "daily") {
		t.Fatalf("add_reminder must not promise daily repeats: %q", addReminderDescription)
	}
	if !strings.Contains(addReminderDescription, "one-shot") {
		t.Fatalf("expected one-shot wording: %q", addReminderDescription)
	}
}
