package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("model: invalid time of day")

type TimeFormat string

const (
	TimeFormat12Hour TimeFormat = "12-hour"
	TimeFormat24Hour TimeFormat = "24-hour"
)

func (f TimeFormat) IsValid() bool {
	switch f {
	case TimeFormat12Hour, TimeFormat24Hour:
		return true
	default:
		return false
	}
}

// TimeOfDay is a wall-clock time without a date. Display strings are produced
// with Format only at the UI edge.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var timeOfDayLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
	if normalized == "" {
		return TimeOfDay{}, fmt.Errorf("%w: empty", ErrInvalidTimeOfDay)
	}
	for _, layout := range timeOfDayLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
}

func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

func (t TimeOfDay) Format(format TimeFormat) string {
	if format == TimeFormat24Hour {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", hour, t.Minute, suffix)
}

func (t TimeOfDay) String() string {
	return t.Format(TimeFormat24Hour)
}

// NextAfter returns the first instant strictly after now, in now's location,
// whose wall clock reads t.
func (t TimeOfDay) NextAfter(now time.Time) time.Time {
	y, m, d := now.Date()
	candidate := time.Date(y, m, d, t.Hour, t.Minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = time.Date(y, m, d+1, t.Hour, t.Minute, 0, 0, now.Location())
	}
	return candidate
}
