// Package config provides configuration management for borrowscope.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Data is where the analysis output lives: a local directory or an
	// http(s) base URL serving the same tree.
	Data string `yaml:"data"`
	// StateDir holds the settings database. Defaults to ~/.borrowscope.
	StateDir string `yaml:"state_dir"`
	// Function preselects a function at startup, overriding the persisted
	// one.
	Function string `yaml:"function,omitempty"`

	// Display defaults, applied only when nothing was persisted yet.
	HideUnwindEdges  bool `yaml:"hide_unwind_edges"`
	HideStorageStmts bool `yaml:"hide_storage_stmts"`

	// LogFile receives slog output while the TUI owns the terminal.
	LogFile string `yaml:"log_file,omitempty"`
	Debug   bool   `yaml:"debug"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	stateDir := ".borrowscope"
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, ".borrowscope")
	}
	return &Config{
		Data:             "visualization/data",
		StateDir:         stateDir,
		HideUnwindEdges:  true,
		HideStorageStmts: false,
	}
}

// Load reads configuration from file, falling back to defaults. If
// configPath is empty, it looks for borrowscope.yaml in the current
// directory; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = "borrowscope.yaml"
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("data location must be set")
	}
	if strings.HasPrefix(c.Data, "http://") || strings.HasPrefix(c.Data, "https://") {
		return nil
	}
	abs, err := filepath.Abs(c.Data)
	if err != nil {
		return fmt.Errorf("invalid data directory %s: %w", c.Data, err)
	}
	c.Data = abs
	if _, err := os.Stat(c.Data); os.IsNotExist(err) {
		return fmt.Errorf("data directory does not exist: %s", c.Data)
	}
	return nil
}
