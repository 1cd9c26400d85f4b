package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/AsimRizwan/Med-Rem/internal/config"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/settings"
	"github.com/AsimRizwan/Med-Rem/internal/storage"
)

func setTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MEDREM_SETTINGS__PATH", filepath.Join(dir, "settings.toml"))
	t.Setenv("MEDREM_LOG__FILE", filepath.Join(dir, "medrem.log"))
	t.Setenv("MEDREM_HISTORY__DB_PATH", filepath.Join(dir, "history.db"))
	t.Setenv("MEDREM_NOTIFICATIONS__DESKTOP", "false")
	return dir
}

func TestLoadConfigVerboseFlagOverrides(t *testing.T) {
	dir := setTestEnv(t)
	cfg, err := loadConfig(filepath.Join(dir, "missing.yaml"), true)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Log.Verbose {
		t.Fatal("expected verbose flag to enable verbose logging")
	}
}

func TestLoadConfigRejectsInvalidPermission(t *testing.T) {
	dir := setTestEnv(t)
	t.Setenv("MEDREM_NOTIFICATIONS__PERMISSION", "maybe")
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml"), false); err == nil {
		t.Fatal("expected invalid permission to fail validation")
	}
}

func TestNewAppJournalsScheduledReminders(t *testing.T) {
	dir := setTestEnv(t)
	t.Setenv("MEDREM_HISTORY__ENABLED", "true")
	t.Setenv("MEDREM_NOTIFICATIONS__PERMISSION", "granted")

	a, err := newApp(filepath.Join(dir, "missing.yaml"), false)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if ok, err := a.notifier.RequestPermission(t.Context()); err != nil || !ok {
		t.Fatalf("request permission: ok=%v err=%v", ok, err)
	}
	r, err := a.tracker.Add(t.Context(), "Aspirin", "08:00 AM")
	if err != nil {
		t.Fatalf("add reminder: %v", err)
	}
	if a.engine.Pending() != 1 {
		t.Fatalf("expected one pending notification, got %d", a.engine.Pending())
	}

	events, err := a.journal.ListEvents(t.Context(), storage.DoseEventFilter{ReminderID: r.ID})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Kind != storage.EventScheduled {
		t.Fatalf("expected one scheduled event, got %+v", events)
	}
	if a.settings != settings.Default() {
		t.Fatalf("expected default settings, got %+v", a.settings)
	}
}

func TestNewAppDeniedPermissionJournalsNothing(t *testing.T) {
	dir := setTestEnv(t)
	t.Setenv("MEDREM_HISTORY__ENABLED", "true")
	t.Setenv("MEDREM_NOTIFICATIONS__PERMISSION", "denied")

	a, err := newApp(filepath.Join(dir, "missing.yaml"), false)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if ok, err := a.notifier.RequestPermission(t.Context()); err != nil || ok {
		t.Fatalf("expected denied permission: ok=%v err=%v", ok, err)
	}
	r, err := a.tracker.Add(t.Context(), "Aspirin", "08:00 AM")
	if err != nil {
		t.Fatalf("expected silent skip, got %v", err)
	}
	if a.engine.Pending() != 0 {
		t.Fatalf("expected nothing queued, got %d", a.engine.Pending())
	}
	events, err := a.journal.ListEvents(t.Context(), storage.DoseEventFilter{ReminderID: r.ID})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no journal entries, got %+v", events)
	}
}

func TestPermissionsFor(t *testing.T) {
	granted, ok := permissionsFor(config.PermissionGranted).(notify.StaticPermissions)
	if !ok || granted.Value != notify.PermissionGranted {
		t.Fatalf("unexpected granted service: %#v", granted)
	}
	denied, ok := permissionsFor(config.PermissionDenied).(notify.StaticPermissions)
	if !ok || denied.Value != notify.PermissionDenied {
		t.Fatalf("unexpected denied service: %#v", denied)
	}
	if _, ok := permissionsFor(config.PermissionAuto).(notify.DesktopPermissions); !ok {
		t.Fatal("expected desktop permissions for auto")
	}
}

func TestDeliverersFor(t *testing.T) {
	cfg := &config.Config{}
	if _, ok := deliverersFor(cfg).(notify.NoopDeliverer); !ok {
		t.Fatal("expected noop deliverer when nothing is enabled")
	}

	cfg.Notifications.Desktop = true
	cfg.Telegram = config.TelegramConfig{BotToken: "token", ChatID: "42"}
	multi, ok := deliverersFor(cfg).(notify.MultiDeliverer)
	if !ok || len(multi) != 2 {
		t.Fatalf("expected desktop and telegram deliverers, got %#v", multi)
	}
}

func TestSettingsMarkdown(t *testing.T) {
	md := settingsMarkdown(settings.Default(), "/tmp/settings.toml")
	for _, want := range []string{"| Ringtone | Ringtone 1 |", "| Theme | classic |", "/tmp/settings.toml"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in %q", want, md)
		}
	}
}

func TestRootHelpDescribesOneShotNotifications(t *testing.T) {
	long := strings.ToLower(rootCmd.Long)
	if strings.Contains(long, "daily") {
		t.Fatalf("root help must not promise daily repeats: %q", rootCmd.Long)
	}
	if !strings.Contains(long, "one-shot notification") {
		t.Fatalf("expected one-shot wording in root help: %q", rootCmd.Long)
	}
}
