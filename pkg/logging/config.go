package logging

import (
	"fmt"
	"log/slog"
)

// Config holds logging configuration settings.
type Config struct {
	Level   string `toml:"level" env:"LEVEL"`
	Format  Format `toml:"format" env:"FORMAT"`
	Source  bool   `toml:"source" env:"SOURCE"`
	Service string `toml:"service" env:"SERVICE"`
}

// SlogLevel returns the configured level, or slog.LevelInfo when it does
// not parse.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Finalize applies defaults and validates the configuration. Environment
// overrides are applied by the caller before Finalize.
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration. Source can
// only be switched on.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Source {
		c.Source = true
	}
	if overlay.Service != "" {
		c.Service = overlay.Service
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) validate() error {
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q (must be text or json)", c.Format)
	}
}
