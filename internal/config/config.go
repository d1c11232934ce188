// Package config loads optional per-directory envelope settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional settings file envelope looks for next to the
// database.
const FileName = ".envelope.yaml"

// Config holds per-directory settings. All fields are optional; the zero
// value is a valid configuration.
type Config struct {
	// DefaultEnv is used by commands that accept an optional
	// environment argument.
	DefaultEnv string `yaml:"default_env,omitempty"`

	// Truncate is the default display window for variable values.
	Truncate *TruncateConfig `yaml:"truncate,omitempty"`
}

// TruncateConfig is a display window over variable values.
// Start is 1-based; Length is the maximum number of characters shown.
type TruncateConfig struct {
	Start  int `yaml:"start"`
	Length int `yaml:"length"`
}

// Load reads the settings file from dir. A missing file yields the zero
// configuration, not an error.
func Load(dir string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", FileName, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if t := c.Truncate; t != nil {
		if t.Start < 1 {
			return fmt.Errorf("truncate.start must be >= 1, got %d", t.Start)
		}
		if t.Length < 1 {
			return fmt.Errorf("truncate.length must be >= 1, got %d", t.Length)
		}
	}
	return nil
}
