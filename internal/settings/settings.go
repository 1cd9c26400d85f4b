package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/AsimRizwan/Med-Rem/internal/model"
)

const DefaultFileName = "settings.toml"

var ErrInvalidSetting = errors.New("settings: invalid value")

var (
	Ringtones   = []string{"Ringtone 1", "Ringtone 2", "Ringtone 3"}
	Delays      = []int{0, 5, 10, 15}
	TimeFormats = []model.TimeFormat{model.TimeFormat12Hour, model.TimeFormat24Hour}
	Themes      = []string{"classic", "ocean", "sunset"}
)

// Field names one picker on the settings screen.
type Field int

const (
	FieldRingtone Field = iota
	FieldDelay
	FieldTimeFormat
	FieldTheme
)

var Fields = []Field{FieldRingtone, FieldDelay, FieldTimeFormat, FieldTheme}

func (f Field) Label() string {
	switch f {
	case FieldRingtone:
		return "Ringtone"
	case FieldDelay:
		return "Delay"
	case FieldTimeFormat:
		return "Time format"
	case FieldTheme:
		return "Theme"
	default:
		return "unknown"
	}
}

type Settings struct {
	Ringtone     string           `toml:"ringtone"`
	DelaySeconds int              `toml:"delay_seconds"`
	TimeFormat   model.TimeFormat `toml:"time_format"`
	Theme        string           `toml:"theme"`
}

func Default() Settings {
	return Settings{
		Ringtone:     Ringtones[0],
		DelaySeconds: Delays[0],
		TimeFormat:   model.TimeFormat12Hour,
		Theme:        Themes[0],
	}
}

func (s Settings) Validate() error {
	if !slices.Contains(Ringtones, s.Ringtone) {
		return fmt.Errorf("%w: ringtone %q", ErrInvalidSetting, s.Ringtone)
	}
	if !slices.Contains(Delays, s.DelaySeconds) {
		return fmt.Errorf("%w: delay %d", ErrInvalidSetting, s.DelaySeconds)
	}
	if !s.TimeFormat.IsValid() {
		return fmt.Errorf("%w: time format %q", ErrInvalidSetting, s.TimeFormat)
	}
	if !slices.Contains(Themes, s.Theme) {
		return fmt.Errorf("%w: theme %q", ErrInvalidSetting, s.Theme)
	}
	return nil
}

// Value renders the current value of f for display.
func (s Settings) Value(f Field) string {
	switch f {
	case FieldRingtone:
		return s.Ringtone
	case FieldDelay:
		return fmt.Sprintf("%d seconds", s.DelaySeconds)
	case FieldTimeFormat:
		return string(s.TimeFormat)
	case FieldTheme:
		return s.Theme
	default:
		return ""
	}
}

// Cycle moves f step positions through its option list, wrapping at both
// ends. Values not in the list restart from the first option.
func (s Settings) Cycle(f Field, step int) Settings {
	switch f {
	case FieldRingtone:
		s.Ringtone = rotate(Ringtones, s.Ringtone, step)
	case FieldDelay:
		s.DelaySeconds = rotate(Delays, s.DelaySeconds, step)
	case FieldTimeFormat:
		s.TimeFormat = rotate(TimeFormats, s.TimeFormat, step)
	case FieldTheme:
		s.Theme = rotate(Themes, s.Theme, step)
	}
	return s
}

func rotate[T comparable](options []T, current T, step int) T {
	idx := slices.Index(options, current)
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+step)%n+n)%n]
}

// LoadOrCreate reads the settings file at path, writing defaults when it
// does not exist yet.
func LoadOrCreate(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, s); err != nil {
			return s, err
		}
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Default(), err
	}
	return s, nil
}

func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
