package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: MEDREM_HISTORY__DB_PATH sets history.db_path.
const EnvPrefix = "MEDREM_"

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Notifications NotificationsConfig `koanf:"notifications"`
	Scheduler     SchedulerConfig     `koanf:"scheduler"`
	History       HistoryConfig       `koanf:"history"`
	Settings      SettingsConfig      `koanf:"settings"`
	Telegram      TelegramConfig      `koanf:"telegram"`
	Log           LogConfig           `koanf:"log"`
}

type NotificationsConfig struct {
	Desktop    bool   `koanf:"desktop"`
	Vibrate    bool   `koanf:"vibrate"`
	Permission string `koanf:"permission"` // auto, granted or denied
}

type SchedulerConfig struct {
	Buffer int `koanf:"buffer"`
}

type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	DBPath  string `koanf:"db_path"`
}

type SettingsConfig struct {
	Path string `koanf:"path"`
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

type LogConfig struct {
	File    string `koanf:"file"`
	Verbose bool   `koanf:"verbose"`
}

// Load layers defaults, the optional YAML file at configPath and MEDREM_
// environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.History.DBPath = expandPath(cfg.History.DBPath)
	cfg.Settings.Path = expandPath(cfg.Settings.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Notifications.Permission = strings.ToLower(strings.TrimSpace(cfg.Notifications.Permission))

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func (c *Config) Validate() error {
	switch c.Notifications.Permission {
	case PermissionAuto, PermissionGranted, PermissionDenied:
	default:
		return fmt.Errorf("%w: notifications.permission must be auto, granted or denied, got %q", ErrInvalidConfig, c.Notifications.Permission)
	}

	if c.Scheduler.Buffer <= 0 {
		return fmt.Errorf("%w: scheduler.buffer must be positive", ErrInvalidConfig)
	}

	if c.History.Enabled && strings.TrimSpace(c.History.DBPath) == "" {
		return fmt.Errorf("%w: history.db_path is required when history is enabled", ErrInvalidConfig)
	}

	if strings.TrimSpace(c.Settings.Path) == "" {
		return fmt.Errorf("%w: settings.path is required", ErrInvalidConfig)
	}

	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("%w: telegram.bot_token and telegram.chat_id must be set together", ErrInvalidConfig)
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
