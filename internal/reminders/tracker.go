package reminders

import (
	"context"
	"errors"

	"github.com/AsimRizwan/Med-Rem/internal/logging"
	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/storage"
)

// Scheduler is the notification side of a reminder.
type Scheduler interface {
	Schedule(ctx context.Context, r model.Reminder) error
	Cancel(ctx context.Context, id string) error
}

// Journal records dose history.
type Journal interface {
	RecordEvent(ctx context.Context, ev storage.DoseEvent) (storage.DoseEvent, error)
}

// Tracker keeps the store, pending notifications and the dose journal in
// step. Scheduler and journal may be nil.
type Tracker struct {
	store     *Store
	scheduler Scheduler
	journal   Journal
	log       *logging.Logger
}

func NewTracker(store *Store, scheduler Scheduler, journal Journal, log *logging.Logger) *Tracker {
	if store == nil {
		store = NewStore()
	}
	return &Tracker{store: store, scheduler: scheduler, journal: journal, log: log.With("reminders")}
}

func (t *Tracker) Store() *Store {
	return t.store
}

func (t *Tracker) List() []model.Reminder {
	return t.store.List()
}

// Add stores the reminder and schedules its notification. When scheduling
// fails the reminder stays in the store and is returned with the error. A
// schedule skipped for missing permission is not an error and is not
// journaled as scheduled.
func (t *Tracker) Add(ctx context.Context, medicineName, rawTime string) (model.Reminder, error) {
	r, err := t.store.Add(medicineName, rawTime)
	if err != nil {
		return model.Reminder{}, err
	}
	t.log.Printf("added %s (%s at %s)", r.ID, r.MedicineName, r.Time)
	if t.scheduler == nil {
		return r, nil
	}
	if err := t.scheduler.Schedule(ctx, r); err != nil {
		if errors.Is(err, notify.ErrPermissionDenied) {
			return r, nil
		}
		t.log.Printf("schedule %s failed: %v", r.ID, err)
		return r, err
	}
	t.record(ctx, r, storage.EventScheduled)
	return r, nil
}

// Remove deletes the reminder and cancels its pending notification.
func (t *Tracker) Remove(ctx context.Context, id string) (model.Reminder, bool) {
	r, ok := t.store.Remove(id)
	if !ok {
		return model.Reminder{}, false
	}
	if t.scheduler != nil {
		if err := t.scheduler.Cancel(ctx, id); err != nil {
			t.log.Printf("cancel %s failed: %v", id, err)
		}
	}
	t.record(ctx, r, storage.EventRemoved)
	return r, true
}

func (t *Tracker) ToggleTaken(ctx context.Context, id string) (model.Reminder, bool) {
	r, ok := t.store.ToggleTaken(id)
	if ok {
		t.record(ctx, r, statusEvent(r))
	}
	return r, ok
}

func (t *Tracker) ToggleMissed(ctx context.Context, id string) (model.Reminder, bool) {
	r, ok := t.store.ToggleMissed(id)
	if ok {
		t.record(ctx, r, statusEvent(r))
	}
	return r, ok
}

// Fired records that the notification for id was delivered. Unknown ids are
// ignored.
func (t *Tracker) Fired(ctx context.Context, id string) {
	r, ok := t.store.Get(id)
	if !ok {
		return
	}
	t.record(ctx, r, storage.EventFired)
}

func statusEvent(r model.Reminder) storage.EventKind {
	switch r.Status() {
	case model.StatusTaken:
		return storage.EventTaken
	case model.StatusMissed:
		return storage.EventMissed
	default:
		return storage.EventCleared
	}
}

func (t *Tracker) record(ctx context.Context, r model.Reminder, kind storage.EventKind) {
	if t.journal == nil {
		return
	}
	_, err := t.journal.RecordEvent(ctx, storage.DoseEvent{
		ReminderID:   r.ID,
		MedicineName: r.MedicineName,
		ReminderTime: r.Time.String(),
		Kind:         kind,
	})
	if err != nil {
		t.log.Printf("journal %s %s failed: %v", kind, r.ID, err)
	}
}
