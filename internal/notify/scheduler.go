package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AsimRizwan/Med-Rem/internal/logging"
	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/AsimRizwan/Med-Rem/internal/settings"
)

type Option func(*Scheduler)

func WithClock(fn func() time.Time) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.now = fn
		}
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Scheduler) {
		s.log = l.With("notify")
	}
}

func WithVibrate(on bool) Option {
	return func(s *Scheduler) {
		s.vibrate = on
	}
}

// Scheduler turns reminders into one-shot notifications on a Service, gated
// by the user's notification permission. It is safe for concurrent use.
type Scheduler struct {
	mu          sync.Mutex
	service     Service
	permissions PermissionService
	log         *logging.Logger
	now         func() time.Time

	sound   string
	vibrate bool
	delay   time.Duration

	asked   bool
	granted bool
}

func NewScheduler(service Service, permissions PermissionService, opts ...Option) *Scheduler {
	s := &Scheduler{
		service:     service,
		permissions: permissions,
		now:         time.Now,
		sound:       settings.Default().Ringtone,
		vibrate:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestPermission asks once and caches the answer. A failed request is not
// cached so it can be retried.
func (s *Scheduler) RequestPermission(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asked {
		return s.granted, nil
	}
	if s.permissions == nil {
		return false, errors.New("notify: no permission service")
	}
	status, err := s.permissions.Status(ctx)
	if err != nil {
		return false, err
	}
	if status != PermissionGranted {
		status, err = s.permissions.Request(ctx)
		if err != nil {
			return false, err
		}
	}
	s.asked = true
	s.granted = status == PermissionGranted
	s.log.Printf("permission %s", status)
	return s.granted, nil
}

func (s *Scheduler) Granted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.granted
}

// Apply takes the notification sound and trigger delay from the settings.
// Notifications already queued keep the options they were scheduled with.
func (s *Scheduler) Apply(st settings.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sound = st.Ringtone
	s.delay = time.Duration(st.DelaySeconds) * time.Second
}

// NotificationFor builds the notification for r's next occurrence after now.
func (s *Scheduler) NotificationFor(r model.Reminder, now time.Time) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notificationFor(r, now)
}

func (s *Scheduler) notificationFor(r model.Reminder, now time.Time) (Notification, error) {
	if !r.Time.Valid() {
		return Notification{}, &SchedulingError{ReminderID: r.ID, Reason: ReasonInvalidTime, Err: model.ErrInvalidTimeOfDay}
	}
	trigger := r.Time.NextAfter(now).Add(s.delay)
	if !trigger.After(now) {
		return Notification{}, &SchedulingError{ReminderID: r.ID, Reason: ReasonPastTrigger}
	}
	return Notification{
		ID:      r.ID,
		Title:   Title,
		Body:    BodyFor(r.MedicineName),
		Sound:   s.sound,
		Vibrate: s.vibrate,
		Trigger: trigger,
	}, nil
}

// ErrPermissionDenied reports a Schedule call skipped because notification
// permission was not granted. Nothing was queued.
var ErrPermissionDenied = errors.New("notify: permission not granted")

// Schedule queues a notification for r. Without permission nothing is queued
// and ErrPermissionDenied is returned.
func (s *Scheduler) Schedule(ctx context.Context, r model.Reminder) error {
	s.mu.Lock()
	n, err := s.notificationFor(r, s.now())
	granted := s.granted
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if !granted {
		s.log.Printf("permission not granted, skipping %s", r.ID)
		return ErrPermissionDenied
	}
	if err := s.service.Schedule(ctx, n); err != nil {
		return &SchedulingError{ReminderID: r.ID, Reason: ReasonPlatform, Err: err}
	}
	s.log.Debugf("scheduled %s at %s", r.ID, n.Trigger.Format(time.RFC3339))
	return nil
}

func (s *Scheduler) Cancel(ctx context.Context, id string) error {
	if err := s.service.Cancel(ctx, id); err != nil {
		return err
	}
	s.log.Debugf("cancelled %s", id)
	return nil
}
