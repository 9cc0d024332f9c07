// Package config loads and persists the application configuration: a YAML
// file with ${VAR} expansion, overlaid by environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/glotkey/glotkey/pkg/backends"
	"github.com/glotkey/glotkey/pkg/capture"
	"github.com/glotkey/glotkey/pkg/hotkeys"
)

// Config is the whole application configuration.
type Config struct {
	Shortcut   string `yaml:"shortcut" env:"GLOTKEY_SHORTCUT" json:"shortcut"`
	Provider   string `yaml:"provider" env:"GLOTKEY_PROVIDER" json:"provider"`
	Endpoint   string `yaml:"endpoint" env:"GLOTKEY_ENDPOINT" json:"endpoint"`
	APIKey     string `yaml:"api_key" env:"GLOTKEY_API_KEY" json:"api_key"`
	Model      string `yaml:"model" env:"GLOTKEY_MODEL" json:"model"`
	SourceLang string `yaml:"source_lang" env:"GLOTKEY_SOURCE_LANG" json:"source_lang"`
	TargetLang string `yaml:"target_lang" env:"GLOTKEY_TARGET_LANG" json:"target_lang"`

	// SettleDelay is the copy-to-clipboard-read wait as a duration string
	// (e.g. "100ms").
	SettleDelay string `yaml:"settle_delay" env:"GLOTKEY_SETTLE_DELAY" json:"settle_delay"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		Shortcut:    "ctrl+shift+t",
		Provider:    "ollama",
		Endpoint:    "http://localhost:11434",
		Model:       "llama3",
		SourceLang:  "auto",
		TargetLang:  "English",
		SettleDelay: capture.DefaultSettleDelay.String(),
	}
}

// DefaultPath returns the per-user config file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve config dir: %w", err)
	}

	return filepath.Join(dir, "glotkey", "config.yaml"), nil
}

// Load reads the YAML file at path, expanding ${VAR} references before
// parsing so secrets can live in the environment, then overlays GLOTKEY_*
// environment variables. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run; defaults apply.
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: env overlay: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration back to path, creating parent directories as
// needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if !backends.Known(c.Provider) {
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}

	if c.Endpoint == "" {
		return fmt.Errorf("config: endpoint is required")
	}

	if c.TargetLang == "" {
		return fmt.Errorf("config: target_lang is required")
	}

	if _, err := hotkeys.ParseBinding(c.Shortcut); err != nil {
		return fmt.Errorf("config: shortcut: %w", err)
	}

	if c.SettleDelay != "" {
		if _, err := time.ParseDuration(c.SettleDelay); err != nil {
			return fmt.Errorf("config: settle_delay: %w", err)
		}
	}

	return nil
}

// SettleDuration returns the parsed settle delay, falling back to the
// default when unset or unparseable.
func (c Config) SettleDuration() time.Duration {
	d, err := time.ParseDuration(c.SettleDelay)
	if err != nil || d <= 0 {
		return capture.DefaultSettleDelay
	}

	return d
}
