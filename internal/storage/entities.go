package storage

import "time"

type EventKind string

const (
	EventScheduled EventKind = "scheduled"
	EventFired     EventKind = "fired"
	EventTaken     EventKind = "taken"
	EventMissed    EventKind = "missed"
	EventCleared   EventKind = "cleared"
	EventRemoved   EventKind = "removed"
)

func (k EventKind) IsValid() bool {
	switch k {
	case EventScheduled, EventFired, EventTaken, EventMissed, EventCleared, EventRemoved:
		return true
	default:
		return false
	}
}

// DoseEvent is one line of the adherence journal. ReminderTime is kept in
// 24-hour "HH:MM" form.
type DoseEvent struct {
	ID           string
	ReminderID   string
	MedicineName string
	ReminderTime string
	Kind         EventKind
	OccurredAt   time.Time
}

type DoseEventFilter struct {
	ReminderID string
	Kind       EventKind
	Since      *time.Time
	Limit      int
	Offset     int
}
