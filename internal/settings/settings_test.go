package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AsimRizwan/Med-Rem/internal/model"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.Ringtone != "Ringtone 1" || s.DelaySeconds != 0 || s.TimeFormat != model.TimeFormat12Hour || s.Theme != "classic" {
		t.Fatalf("unexpected defaults: %#v", s)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cases := []func(*Settings){
		func(s *Settings) { s.Ringtone = "Ringtone 9" },
		func(s *Settings) { s.DelaySeconds = 7 },
		func(s *Settings) { s.TimeFormat = "36-hour" },
		func(s *Settings) { s.Theme = "neon" },
	}
	for i, mutate := range cases {
		s := Default()
		mutate(&s)
		if err := s.Validate(); !errors.Is(err, ErrInvalidSetting) {
			t.Fatalf("case %d: expected ErrInvalidSetting, got %v", i, err)
		}
	}
}

func TestCycleWrapsBothWays(t *testing.T) {
	s := Default()

	s = s.Cycle(FieldDelay, 1)
	if s.DelaySeconds != 5 {
		t.Fatalf("expected delay 5, got %d", s.DelaySeconds)
	}
	s = s.Cycle(FieldDelay, -2)
	if s.DelaySeconds != 15 {
		t.Fatalf("expected wrap to 15, got %d", s.DelaySeconds)
	}

	s = s.Cycle(FieldTimeFormat, 1)
	if s.TimeFormat != model.TimeFormat24Hour {
		t.Fatalf("expected 24-hour, got %s", s.TimeFormat)
	}
	s = s.Cycle(FieldTimeFormat, 1)
	if s.TimeFormat != model.TimeFormat12Hour {
		t.Fatalf("expected wrap to 12-hour, got %s", s.TimeFormat)
	}

	s = s.Cycle(FieldTheme, 3)
	if s.Theme != "classic" {
		t.Fatalf("expected full cycle back to classic, got %s", s.Theme)
	}

	s.Ringtone = "custom"
	s = s.Cycle(FieldRingtone, 1)
	if s.Ringtone != "Ringtone 1" {
		t.Fatalf("expected unknown ringtone to reset, got %s", s.Ringtone)
	}
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	s, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != Default() {
		t.Fatalf("expected defaults, got %#v", s)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected settings file: %v", err)
	}
	if !strings.Contains(string(data), "Ringtone 1") || !strings.Contains(string(data), "time_format") {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	want := Settings{Ringtone: "Ringtone 3", DelaySeconds: 10, TimeFormat: model.TimeFormat24Hour, Theme: "sunset"}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	bad := Default()
	bad.Theme = "neon"
	if err := Save(path, bad); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no file written, got %v", err)
	}
}

func TestLoadOrCreateRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("theme = 'neon'\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadOrCreate(path)
	if !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	if s != Default() {
		t.Fatalf("expected defaults on error, got %#v", s)
	}
}
