package reminders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/storage"
)

type fakeScheduler struct {
	scheduled []string
	cancelled []string
	err       error
}

func (f *fakeScheduler) Schedule(_ context.Context, r model.Reminder) error {
	if f.err != nil {
		return f.err
	}
	f.scheduled = append(f.scheduled, r.ID)
	return nil
}

func (f *fakeScheduler) Cancel(_ context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeJournal struct {
	events []storage.DoseEvent
	err    error
}

func (f *fakeJournal) RecordEvent(_ context.Context, ev storage.DoseEvent) (storage.DoseEvent, error) {
	if f.err != nil {
		return storage.DoseEvent{}, f.err
	}
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeJournal) kinds() []storage.EventKind {
	out := make([]storage.EventKind, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Kind)
	}
	return out
}

func newTestTracker() (*Tracker, *fakeScheduler, *fakeJournal) {
	sched := &fakeScheduler{}
	journal := &fakeJournal{}
	return NewTracker(NewStore(WithIDGenerator(sequentialIDs())), sched, journal, nil), sched, journal
}

func TestTrackerAddSchedulesAndJournals(t *testing.T) {
	tr, sched, journal := newTestTracker()

	r, err := tr.Add(t.Context(), "Vitamin D", "08:00 AM")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != r.ID {
		t.Fatalf("expected reminder scheduled, got %#v", sched.scheduled)
	}
	if len(journal.events) != 1 {
		t.Fatalf("expected one journal event, got %d", len(journal.events))
	}
	ev := journal.events[0]
	if ev.Kind != storage.EventScheduled || ev.ReminderID != r.ID || ev.MedicineName != "Vitamin D" || ev.ReminderTime != "08:00" {
		t.Fatalf("unexpected journal event: %#v", ev)
	}
}

func TestTrackerAddValidationSkipsScheduling(t *testing.T) {
	tr, sched, journal := newTestTracker()

	_, err := tr.Add(t.Context(), "", "9:00")
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(sched.scheduled) != 0 || len(journal.events) != 0 || len(tr.List()) != 0 {
		t.Fatal("expected no side effects on validation failure")
	}
}

func TestTrackerAddKeepsReminderWhenSchedulingFails(t *testing.T) {
	tr, sched, journal := newTestTracker()
	sched.err = errors.New("trigger in the past")

	r, err := tr.Add(t.Context(), "Aspirin", "9:00 AM")
	if !errors.Is(err, sched.err) {
		t.Fatalf("expected scheduling error, got %v", err)
	}
	if r.ID == "" {
		t.Fatal("expected reminder returned alongside the error")
	}
	if list := tr.List(); len(list) != 1 || list[0].ID != r.ID {
		t.Fatalf("expected reminder kept, got %#v", list)
	}
	if len(journal.events) != 0 {
		t.Fatalf("expected no scheduled event, got %#v", journal.kinds())
	}
}

func TestTrackerAddWithoutPermissionSkipsScheduledEvent(t *testing.T) {
	tr, sched, journal := newTestTracker()
	sched.err = fmt.Errorf("schedule rem-1: %w", notify.ErrPermissionDenied)

	r, err := tr.Add(t.Context(), "Aspirin", "9:00 AM")
	if err != nil {
		t.Fatalf("expected denied permission to be silent, got %v", err)
	}
	if list := tr.List(); len(list) != 1 || list[0].ID != r.ID {
		t.Fatalf("expected reminder kept, got %#v", list)
	}
	if len(journal.events) != 0 {
		t.Fatalf("expected no scheduled event, got %#v", journal.kinds())
	}
}

func TestTrackerRemoveCancels(t *testing.T) {
	tr, sched, journal := newTestTracker()
	r, _ := tr.Add(t.Context(), "Aspirin", "9:00 AM")

	if _, ok := tr.Remove(t.Context(), r.ID); !ok {
		t.Fatal("expected remove to succeed")
	}
	if len(sched.cancelled) != 1 || sched.cancelled[0] != r.ID {
		t.Fatalf("expected cancel for %s, got %#v", r.ID, sched.cancelled)
	}
	if kinds := journal.kinds(); len(kinds) != 2 || kinds[1] != storage.EventRemoved {
		t.Fatalf("unexpected journal kinds: %#v", kinds)
	}

	if _, ok := tr.Remove(t.Context(), r.ID); ok {
		t.Fatal("expected second remove to be a no-op")
	}
	if len(sched.cancelled) != 1 {
		t.Fatalf("expected no extra cancel, got %#v", sched.cancelled)
	}
}

func TestTrackerTogglesJournalStatus(t *testing.T) {
	tr, _, journal := newTestTracker()
	r, _ := tr.Add(t.Context(), "Aspirin", "9:00 AM")

	tr.ToggleTaken(t.Context(), r.ID)
	tr.ToggleMissed(t.Context(), r.ID)
	tr.ToggleMissed(t.Context(), r.ID)
	tr.ToggleTaken(t.Context(), "missing")

	want := []storage.EventKind{storage.EventScheduled, storage.EventTaken, storage.EventMissed, storage.EventCleared}
	got := journal.kinds()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTrackerFired(t *testing.T) {
	tr, _, journal := newTestTracker()
	r, _ := tr.Add(t.Context(), "Aspirin", "9:00 AM")

	tr.Fired(t.Context(), r.ID)
	tr.Fired(t.Context(), "gone")

	kinds := journal.kinds()
	if len(kinds) != 2 || kinds[1] != storage.EventFired {
		t.Fatalf("unexpected journal kinds: %v", kinds)
	}
}

func TestTrackerWithoutCollaborators(t *testing.T) {
	tr := NewTracker(nil, nil, nil, nil)
	r, err := tr.Add(t.Context(), "Aspirin", "21:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	tr.ToggleTaken(t.Context(), r.ID)
	tr.Fired(t.Context(), r.ID)
	if _, ok := tr.Remove(t.Context(), r.ID); !ok {
		t.Fatal("expected remove to succeed")
	}
	if tr.Store().Len() != 0 {
		t.Fatalf("expected empty store, got %d", tr.Store().Len())
	}
}

func TestTrackerJournalFailureDoesNotBlock(t *testing.T) {
	sched := &fakeScheduler{}
	journal := &fakeJournal{err: errors.New("disk full")}
	tr := NewTracker(NewStore(), sched, journal, nil)

	r, err := tr.Add(t.Context(), "Aspirin", "9:00 AM")
	if err != nil {
		t.Fatalf("expected journal failure to be swallowed, got %v", err)
	}
	if got, ok := tr.ToggleTaken(t.Context(), r.ID); !ok || !got.Taken {
		t.Fatalf("expected toggle to apply, got %#v", got)
	}
}
