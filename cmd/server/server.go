package main

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/autoroute/internal/config"
	_ "github.com/JaimeStill/autoroute/internal/demo"
	"github.com/JaimeStill/autoroute/pkg/lifecycle"
	"github.com/JaimeStill/autoroute/pkg/logging"
	"github.com/JaimeStill/autoroute/pkg/module"
	"github.com/JaimeStill/autoroute/pkg/routes"
	"github.com/JaimeStill/autoroute/pkg/server"
)

// Server coordinates the lifecycle of the HTTP server.
type Server struct {
	lifecycle *lifecycle.Coordinator
	logger    *slog.Logger
	http      *server.Server
	router    *module.Router
}

// NewServer mounts every contributed route and prepares the HTTP server.
func NewServer(cfg *config.Config) (*Server, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	router := module.NewRouter(
		module.WithLogger(logger),
		module.WithMaxBodyBytes(cfg.Routes.MaxBodyBytes()),
	)

	if err := registerNative(router, lc, cfg); err != nil {
		return nil, err
	}

	httpSrv, err := routes.BuildServer(
		&cfg.Server,
		routes.WithRouter(router),
		routes.WithLogger(logger),
		routes.WithMiddleware(buildMiddleware(logger, router, cfg).Chain()...),
	)
	if err != nil {
		return nil, err
	}

	logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
	)

	return &Server{
		lifecycle: lc,
		logger:    logger,
		http:      httpSrv,
		router:    router,
	}, nil
}

// Start binds the listener and returns once the server is accepting requests.
func (s *Server) Start() error {
	s.logger.Info("starting server")

	if err := s.http.Start(s.lifecycle); err != nil {
		return err
	}

	go func() {
		s.lifecycle.WaitForStartup()
		s.logger.Info("server ready", "routes", len(s.router.Entries()))
	}()

	return nil
}

// Shutdown gracefully stops the server within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("initiating shutdown")
	return s.lifecycle.Shutdown(timeout)
}
