// Package server provides HTTP server lifecycle management with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/autoroute/pkg/lifecycle"
)

// Server is a configured HTTP server that has not necessarily started.
type Server struct {
	http            *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
	listener        net.Listener
}

// New creates a server with the specified configuration, handler, and logger.
// cfg should already be finalized.
func New(cfg *Config, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		http: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        handler,
			ReadTimeout:    cfg.ReadTimeoutDuration(),
			WriteTimeout:   cfg.WriteTimeoutDuration(),
			IdleTimeout:    cfg.IdleTimeoutDuration(),
			MaxHeaderBytes: int(cfg.MaxHeaderBytes()),
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}
}

// Addr returns the configured listen address, or the bound address once started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.http.Addr
}

// Handler returns the root handler the server dispatches to.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start binds the listen address, serves in the background, and registers a
// graceful shutdown hook with lc. Bind failures are returned directly.
func (s *Server) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	s.listener = ln

	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		} else {
			s.logger.Info("server shutdown complete")
		}
	})

	return nil
}
