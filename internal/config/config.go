package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the fully-loaded application configuration: defaults, then
// an optional YAML file, then REMINDERS_* environment variables.
type Config struct {
	// DefaultList is used by commands when no list argument is given.
	DefaultList string           `koanf:"default_list"`
	Store       StoreConfig      `koanf:"store"`
	Enrichment  EnrichmentConfig `koanf:"enrichment"`
	UI          UIConfig         `koanf:"ui"`
}

// StoreConfig locates the primary store database.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// EnrichmentConfig locates the secondary attribute source and the
// out-of-band flag setter.
type EnrichmentConfig struct {
	// SourcesDir holds the read-only attribute partitions.
	SourcesDir string `koanf:"sources_dir"`

	// FlagCommand is the external command invoked to set the flagged
	// attribute; the reminder identifier and a boolean are appended as
	// arguments. Empty disables flag changes.
	FlagCommand string `koanf:"flag_command"`
}

// UIConfig tunes the human renderer.
type UIConfig struct {
	ColoredOutput bool   `koanf:"colored_output"`
	TimeFormat    string `koanf:"time_format"`
}

// Load builds a Config. A missing config file is fine; a malformed one
// is an error. Environment variables use REMINDERS_ as prefix and a
// double underscore as section separator, e.g. REMINDERS_STORE__PATH.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	configPath = expandPath(configPath)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("REMINDERS_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "REMINDERS_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Enrichment.SourcesDir = expandPath(cfg.Enrichment.SourcesDir)
	return &cfg, nil
}

// Validate rejects configurations no command can run with.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.UI.TimeFormat == "" {
		return fmt.Errorf("ui.time_format is required")
	}
	return nil
}

func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
