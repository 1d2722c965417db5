package main

import (
	"log/slog"

	"github.com/JaimeStill/autoroute/internal/config"
	"github.com/JaimeStill/autoroute/pkg/middleware"
	"github.com/JaimeStill/autoroute/pkg/module"
	"github.com/JaimeStill/autoroute/pkg/openapi"
)

// buildMiddleware creates the middleware stack applied around the route table.
func buildMiddleware(logger *slog.Logger, router *module.Router, cfg *config.Config) middleware.System {
	mw := middleware.New()
	mw.Use(middleware.RequestID())
	mw.Use(middleware.Logger(logger))
	mw.Use(middleware.CORS(&cfg.CORS))

	if cfg.Routes.Validate {
		mw.Use(middleware.Validate(openapi.Provider(&cfg.OpenAPI, router.Entries), logger))
	}

	return mw
}
