package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	FieldID           = "id"
	FieldMedicineName = "medicineName"
	FieldReminderTime = "reminderTime"
	FieldStatus       = "status"
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: %s %s", e.Field, e.Message)
}

type Status string

const (
	StatusPending Status = "Pending"
	StatusTaken   Status = "Taken"
	StatusMissed  Status = "Missed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusTaken, StatusMissed:
		return true
	default:
		return false
	}
}

type Reminder struct {
	ID           string
	MedicineName string
	Time         TimeOfDay
	Taken        bool
	Missed       bool
	CreatedAt    time.Time
}

func (r Reminder) Status() Status {
	switch {
	case r.Taken:
		return StatusTaken
	case r.Missed:
		return StatusMissed
	default:
		return StatusPending
	}
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return &ValidationError{Field: FieldID, Message: "is required"}
	}
	if strings.TrimSpace(r.MedicineName) == "" {
		return &ValidationError{Field: FieldMedicineName, Message: "is required"}
	}
	if !r.Time.Valid() {
		return &ValidationError{Field: FieldReminderTime, Message: fmt.Sprintf("is out of range: %02d:%02d", r.Time.Hour, r.Time.Minute)}
	}
	if r.Taken && r.Missed {
		return &ValidationError{Field: FieldStatus, Message: "cannot be both taken and missed"}
	}
	return nil
}
