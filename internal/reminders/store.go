package reminders

import (
	"errors"
	"strings"
	"time"

	"github.com/AsimRizwan/Med-Rem/internal/model"
	"github.com/google/uuid"
)

const maxIDAttempts = 8

var ErrIDExhausted = errors.New("reminders: could not generate a unique id")

type Option func(*Store)

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// Store is the ordered, in-memory reminder list owned by the home screen.
// It is not safe for concurrent use.
type Store struct {
	items []model.Reminder
	newID func() string
	now   func() time.Time
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		items: make([]model.Reminder, 0),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates both inputs and appends a pending reminder. rawTime is parsed
// here so that nothing past the store handles display strings.
func (s *Store) Add(medicineName, rawTime string) (model.Reminder, error) {
	name := strings.TrimSpace(medicineName)
	if name == "" {
		return model.Reminder{}, &model.ValidationError{Field: model.FieldMedicineName, Message: "is required"}
	}
	if strings.TrimSpace(rawTime) == "" {
		return model.Reminder{}, &model.ValidationError{Field: model.FieldReminderTime, Message: "is required"}
	}
	at, err := model.ParseTimeOfDay(rawTime)
	if err != nil {
		return model.Reminder{}, &model.ValidationError{Field: model.FieldReminderTime, Message: "is not a valid time: " + strings.TrimSpace(rawTime)}
	}
	return s.AddAt(name, at)
}

func (s *Store) AddAt(medicineName string, at model.TimeOfDay) (model.Reminder, error) {
	rem := model.Reminder{
		MedicineName: strings.TrimSpace(medicineName),
		Time:         at,
		CreatedAt:    s.now().UTC(),
	}
	id, err := s.freshID()
	if err != nil {
		return model.Reminder{}, err
	}
	rem.ID = id
	if err := rem.Validate(); err != nil {
		return model.Reminder{}, err
	}
	s.items = append(s.items, rem)
	return rem, nil
}

func (s *Store) Remove(id string) (model.Reminder, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Reminder{}, false
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return removed, true
}

func (s *Store) ToggleTaken(id string) (model.Reminder, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Reminder{}, false
	}
	s.items[i].Taken = !s.items[i].Taken
	if s.items[i].Taken {
		s.items[i].Missed = false
	}
	return s.items[i], true
}

func (s *Store) ToggleMissed(id string) (model.Reminder, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Reminder{}, false
	}
	s.items[i].Missed = !s.items[i].Missed
	if s.items[i].Missed {
		s.items[i].Taken = false
	}
	return s.items[i], true
}

func (s *Store) Get(id string) (model.Reminder, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Reminder{}, false
	}
	return s.items[i], true
}

// List returns a copy in insertion order.
func (s *Store) List() []model.Reminder {
	out := make([]model.Reminder, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) freshID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := strings.TrimSpace(s.newID())
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
