package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

const (
	PermissionAuto    = "auto"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"notifications": map[string]interface{}{
			"desktop":    true,
			"vibrate":    true,
			"permission": PermissionAuto,
		},
		"scheduler": map[string]interface{}{
			"buffer": 64,
		},
		"history": map[string]interface{}{
			"enabled": false,
			"db_path": "~/.medrem/history.db",
		},
		"settings": map[string]interface{}{
			"path": "~/.medrem/settings.toml",
		},
		"telegram": map[string]interface{}{
			"bot_token": "",
			"chat_id":   "",
		},
		"log": map[string]interface{}{
			"file":    "~/.medrem/medrem.log",
			"verbose": false,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func DefaultConfigPath() string {
	return "~/.medrem/config.yaml"
}
