package notify

import (
	"context"
	"time"

	"github.com/AsimRizwan/Med-Rem/internal/scheduler"
)

const Title = "Medicine Reminder"

type Notification struct {
	ID      string
	Title   string
	Body    string
	Sound   string
	Vibrate bool
	Trigger time.Time
}

func BodyFor(medicineName string) string {
	return "Reminder: Take " + medicineName
}

// Service is the platform notification service.
type Service interface {
	Schedule(ctx context.Context, n Notification) error
	Cancel(ctx context.Context, id string) error
}

// EngineService queues notifications on the in-process timer engine.
type EngineService struct {
	engine *scheduler.Engine
}

func NewEngineService(engine *scheduler.Engine) *EngineService {
	return &EngineService{engine: engine}
}

func (s *EngineService) Schedule(_ context.Context, n Notification) error {
	return s.engine.Schedule(toEvent(n))
}

func (s *EngineService) Cancel(_ context.Context, id string) error {
	s.engine.Cancel(id)
	return nil
}

func toEvent(n Notification) scheduler.Event {
	return scheduler.Event{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Sound:     n.Sound,
		Vibrate:   n.Vibrate,
		TriggerAt: n.Trigger,
	}
}

// FromEvent converts a due engine event back into a notification.
func FromEvent(ev scheduler.Event) Notification {
	return Notification{
		ID:      ev.ID,
		Title:   ev.Title,
		Body:    ev.Body,
		Sound:   ev.Sound,
		Vibrate: ev.Vibrate,
		Trigger: ev.TriggerAt,
	}
}
