package config

import (
	"fmt"

	"github.com/docker/go-units"
)

// RoutesConfig controls how contributed routes are served.
type RoutesConfig struct {
	MaxBodySize string `toml:"max_body_size" env:"MAX_BODY_SIZE"`
	Validate    bool   `toml:"validate" env:"VALIDATE"`

	maxBodyBytes int64
}

// MaxBodyBytes returns the parsed max_body_size. It is zero until Finalize succeeds.
func (c *RoutesConfig) MaxBodyBytes() int64 {
	return c.maxBodyBytes
}

// Finalize applies defaults and validates the routes configuration.
func (c *RoutesConfig) Finalize() error {
	if c.MaxBodySize == "" {
		c.MaxBodySize = "10MB"
	}

	size, err := units.FromHumanSize(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	c.maxBodyBytes = size

	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *RoutesConfig) Merge(overlay *RoutesConfig) {
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.Validate {
		c.Validate = true
	}
}
