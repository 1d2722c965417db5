// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/autoroute/pkg/logging"
	"github.com/JaimeStill/autoroute/pkg/middleware"
	"github.com/JaimeStill/autoroute/pkg/openapi"
	"github.com/JaimeStill/autoroute/pkg/server"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"

	// EnvPrefix prefixes every environment override, e.g. AUTOROUTE_SERVER_PORT.
	EnvPrefix = "AUTOROUTE_"
)

// Config represents the root service configuration. The server section's
// shutdown_timeout bounds the whole shutdown.
type Config struct {
	Server  server.Config         `toml:"server" envPrefix:"SERVER_"`
	Logging logging.Config        `toml:"logging" envPrefix:"LOG_"`
	CORS    middleware.CORSConfig `toml:"cors" envPrefix:"CORS_"`
	Routes  RoutesConfig          `toml:"routes" envPrefix:"ROUTES_"`
	OpenAPI openapi.Config        `toml:"openapi" envPrefix:"OPENAPI_"`
}

// Env returns the active overlay environment name.
func (c *Config) Env() string {
	return os.Getenv(EnvServiceEnv)
}

// Load reads config.toml from the working directory and applies any
// environment-specific overlay.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom reads the base configuration at path and applies the overlay named
// by SERVICE_ENV from the same directory. A missing base file yields an empty
// configuration so that defaults and environment overrides still apply.
func LoadFrom(path string) (*Config, error) {
	cfg, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	if overlay := overlayPath(filepath.Dir(path)); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}
	return cfg, nil
}

// Finalize loads environment overrides, applies defaults, and validates the configuration.
func (c *Config) Finalize() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.CORS.Finalize(); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Routes.Finalize(); err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	if err := c.OpenAPI.Finalize(); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.CORS.Merge(&overlay.CORS)
	c.Routes.Merge(&overlay.Routes)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if name := os.Getenv(EnvServiceEnv); name != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, name))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
