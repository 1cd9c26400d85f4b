package notify

import "fmt"

type Reason string

const (
	ReasonInvalidTime Reason = "invalid_time"
	ReasonPastTrigger Reason = "past_trigger"
	ReasonPlatform    Reason = "platform"
)

// SchedulingError reports a notification that could not be scheduled.
type SchedulingError struct {
	ReminderID string
	Reason     Reason
	Err        error
}

func (e *SchedulingError) Error() string {
	msg := "notify: scheduling failed"
	switch e.Reason {
	case ReasonInvalidTime:
		msg = "notify: reminder time is invalid"
	case ReasonPastTrigger:
		msg = "notify: trigger time is not in the future"
	case ReasonPlatform:
		msg = "notify: notification service rejected the reminder"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}
