package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

// DefaultConfig is the base layer every load starts from.
func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"default_list": "",
		"store": map[string]interface{}{
			"path": "~/.reminders/reminders.db",
		},
		"enrichment": map[string]interface{}{
			"sources_dir":  "~/.reminders/sources",
			"flag_command": "",
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"time_format":    "15:04",
		},
	}
}

// NewDefaultProvider wraps DefaultConfig as a koanf provider.
func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

// DefaultConfigPath is where Load looks when no --config is given.
func DefaultConfigPath() string {
	return "~/.reminders/config.yaml"
}
