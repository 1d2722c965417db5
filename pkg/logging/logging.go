// Package logging builds the service logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Common level names. Any name slog.Level parses is accepted, including
// offsets such as "warn+2".
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// New creates a logger writing to stdout.
func New(cfg *Config) *slog.Logger {
	return NewWriter(cfg, os.Stdout)
}

// NewWriter creates a logger writing to w. Records carry a service attribute
// when cfg.Service is set.
func NewWriter(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.SlogLevel(),
		AddSource: cfg.Source,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
