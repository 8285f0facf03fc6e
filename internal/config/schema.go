package config

import (
	"time"

	"noctopo/internal/domain"
)

// Config is the noctopo configuration file
type Config struct {
	Server   ServerConfig         `yaml:"server"`
	Database DatabaseConfig       `yaml:"database"`
	Panel    PanelConfig          `yaml:"panel"`
	Feed     FeedConfig           `yaml:"feed"`
	Log      LogConfig            `yaml:"log"`
	Theme    domain.ThemeSettings `yaml:"theme"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// PanelConfig selects the stored panel and its canvas
type PanelConfig struct {
	ID     string       `yaml:"id"`
	Canvas CanvasConfig `yaml:"canvas"`
}

// CanvasConfig is the drawing area; new devices land in its centre
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Center returns the default position for devices added without one
func (c CanvasConfig) Center() domain.Position {
	return domain.Position{X: c.Width / 2, Y: c.Height / 2}
}

// FeedConfig points at a file of series frames refreshed by an exporter.
// An empty path disables the watcher.
type FeedConfig struct {
	Path     string   `yaml:"path,omitempty"`
	Debounce Duration `yaml:"debounce"`
}

// LogConfig controls the logger. An empty file logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
