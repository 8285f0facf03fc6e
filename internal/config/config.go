// Package config handles noctopo configuration loading and saving.
//
// Configuration is loaded from (in priority order):
//  1. $NOCTOPO_CONFIG (explicit path)
//  2. ./noctopo.yaml (working directory)
//  3. $XDG_CONFIG_HOME/noctopo/config.yaml
//  4. ~/.config/noctopo/config.yaml
//  5. /etc/noctopo/config.yaml
//
// Missing values fall back to DefaultConfig.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"noctopo/internal/domain"
)

// Load finds and loads configuration from standard locations.
// Returns the config, the path it was loaded from (empty if defaults), and any error.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Theme.Validate(); err != nil {
		return nil, "", fmt.Errorf("config theme: %w", err)
	}
	return &cfg, path, nil
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":3000",
		},
		Database: DatabaseConfig{
			Path: "noctopo.db",
		},
		Panel: PanelConfig{
			ID:     "default",
			Canvas: CanvasConfig{Width: 1200, Height: 800},
		},
		Feed: FeedConfig{
			Debounce: Duration(500 * time.Millisecond),
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Theme: domain.DefaultTheme(),
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Database.Path == "" {
		c.Database.Path = defaults.Database.Path
	}
	if c.Panel.ID == "" {
		c.Panel.ID = defaults.Panel.ID
	}
	if c.Panel.Canvas.Width <= 0 {
		c.Panel.Canvas.Width = defaults.Panel.Canvas.Width
	}
	if c.Panel.Canvas.Height <= 0 {
		c.Panel.Canvas.Height = defaults.Panel.Canvas.Height
	}
	if c.Feed.Debounce <= 0 {
		c.Feed.Debounce = defaults.Feed.Debounce
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = defaults.Log.MaxSizeMB
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = defaults.Log.MaxBackups
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = defaults.Log.MaxAgeDays
	}
	c.Theme = c.Theme.WithDefaults(defaults.Theme)
}
