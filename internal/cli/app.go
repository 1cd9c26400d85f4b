package cli

import (
	"fmt"

	"github.com/AsimRizwan/Med-Rem/internal/config"
	"github.com/AsimRizwan/Med-Rem/internal/logging"
	"github.com/AsimRizwan/Med-Rem/internal/notify"
	"github.com/AsimRizwan/Med-Rem/internal/reminders"
	"github.com/AsimRizwan/Med-Rem/internal/scheduler"
	"github.com/AsimRizwan/Med-Rem/internal/settings"
	"github.com/AsimRizwan/Med-Rem/internal/storage"
)

// app holds everything a running surface (TUI or MCP) shares.
type app struct {
	cfg       *config.Config
	log       *logging.Logger
	settings  settings.Settings
	engine    *scheduler.Engine
	notifier  *notify.Scheduler
	journal   *storage.SQLiteRepository
	deliverer notify.Deliverer
	tracker   *reminders.Tracker
}

func loadConfig(path string, verboseFlag bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verboseFlag {
		cfg.Log.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(cfgPath string, verboseFlag bool) (*app, error) {
	cfg, err := loadConfig(cfgPath, verboseFlag)
	if err != nil {
		return nil, err
	}

	logger, err := logging.Open(cfg.Log.File, cfg.Log.Verbose)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: logger}
	log := logger.With("app")

	a.settings, err = settings.LoadOrCreate(cfg.Settings.Path)
	if err != nil {
		log.Printf("settings: %v, using defaults", err)
	}

	a.engine = scheduler.NewEngine(cfg.Scheduler.Buffer)
	a.engine.Start()

	a.notifier = notify.NewScheduler(
		notify.NewEngineService(a.engine),
		permissionsFor(cfg.Notifications.Permission),
		notify.WithLogger(logger),
		notify.WithVibrate(cfg.Notifications.Vibrate),
	)
	a.notifier.Apply(a.settings)

	var journal reminders.Journal
	if cfg.History.Enabled {
		repo, err := storage.OpenSQLite(cfg.History.DBPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open dose history: %w", err)
		}
		a.journal = repo
		journal = repo
	}

	a.deliverer = deliverersFor(cfg)
	a.tracker = reminders.NewTracker(nil, a.notifier, journal, logger)

	log.Printf("started: history=%t desktop=%t telegram=%t", cfg.History.Enabled, cfg.Notifications.Desktop, cfg.Telegram.Enabled())
	return a, nil
}

func (a *app) Close() {
	if a.engine != nil {
		a.engine.Stop()
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.log.Printf("close dose history: %v", err)
		}
	}
	_ = a.log.Close()
}

func permissionsFor(mode string) notify.PermissionService {
	switch mode {
	case config.PermissionGranted:
		return notify.StaticPermissions{Value: notify.PermissionGranted}
	case config.PermissionDenied:
		return notify.StaticPermissions{Value: notify.PermissionDenied}
	default:
		return notify.NewDesktopPermissions()
	}
}

func deliverersFor(cfg *config.Config) notify.Deliverer {
	var out notify.MultiDeliverer
	if cfg.Notifications.Desktop {
		out = append(out, notify.NewDesktopDeliverer())
	}
	if cfg.Telegram.Enabled() {
		out = append(out, notify.NewTelegramDeliverer(cfg.Telegram.BotToken, cfg.Telegram.ChatID))
	}
	if len(out) == 0 {
		return notify.NoopDeliverer{}
	}
	return out
}
