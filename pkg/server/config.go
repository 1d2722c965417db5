package server

import (
	"fmt"
	"net"
	"time"

	"github.com/docker/go-units"
)

// Config contains HTTP server configuration.
type Config struct {
	Host            string `toml:"host" env:"HOST"`
	Port            int    `toml:"port" env:"PORT"`
	ReadTimeout     string `toml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    string `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     string `toml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout string `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxHeaderSize   string `toml:"max_header_size" env:"MAX_HEADER_SIZE"`

	maxHeaderBytes int64
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// ReadTimeoutDuration parses and returns the read timeout as a time.Duration.
func (c *Config) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// WriteTimeoutDuration parses and returns the write timeout as a time.Duration.
func (c *Config) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// IdleTimeoutDuration parses and returns the idle timeout as a time.Duration.
func (c *Config) IdleTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	return d
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// MaxHeaderBytes returns the parsed max_header_size. It is zero until Finalize succeeds.
func (c *Config) MaxHeaderBytes() int64 {
	return c.maxHeaderBytes
}

// Finalize applies defaults and validates the server configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.IdleTimeout != "" {
		c.IdleTimeout = overlay.IdleTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.MaxHeaderSize != "" {
		c.MaxHeaderSize = overlay.MaxHeaderSize
	}
}

func (c *Config) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "1m"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "15m"
	}
	if c.IdleTimeout == "" {
		c.IdleTimeout = "2m"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.MaxHeaderSize == "" {
		c.MaxHeaderSize = "1MB"
	}
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.IdleTimeout); err != nil {
		return fmt.Errorf("invalid idle_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	size, err := units.FromHumanSize(c.MaxHeaderSize)
	if err != nil {
		return fmt.Errorf("invalid max_header_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_header_size must be positive")
	}
	c.maxHeaderBytes = size

	return nil
}
