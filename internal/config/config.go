// Package config loads the YAML configuration of the coffee machine CLI.
// A missing file yields the defaults, which match a freshly installed machine.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/coffeemachine"
)

// Config is the top-level configuration document.
type Config struct {
	Machine MachineConfig `yaml:"machine" json:"machine"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Journal JournalConfig `yaml:"journal" json:"journal"`
}

// MachineConfig identifies the machine and sets its starting stock.
type MachineConfig struct {
	ID        string                  `yaml:"id" json:"id"`
	Inventory coffeemachine.Inventory `yaml:"inventory" json:"inventory"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level,omitempty"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format,omitempty"` // json, console
	Output string `yaml:"output" json:"output,omitempty"` // stderr or a file path
}

// JournalConfig enables the transition journal when Path is set.
type JournalConfig struct {
	Path   string `yaml:"path" json:"path,omitempty"`
	Format string `yaml:"format" json:"format,omitempty"` // json, yaml
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Machine: MachineConfig{
			ID:        "coffee-machine",
			Inventory: coffeemachine.DefaultInventory(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
		Journal: JournalConfig{
			Format: "json",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Machine.ID) == "" {
		return errors.New("machine id is required")
	}
	if err := c.Machine.Inventory.Validate(); err != nil {
		return fmt.Errorf("machine: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	if c.Logging.Output == "" {
		return errors.New("logging output is required")
	}

	switch c.Journal.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid journal format %q", c.Journal.Format)
	}
	return nil
}
