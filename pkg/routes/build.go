package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/autoroute/pkg/module"
	"github.com/JaimeStill/autoroute/pkg/server"
)

// BuildOption configures BuildServer.
type BuildOption func(*buildOptions)

type buildOptions struct {
	registry    *Registry
	router      *module.Router
	routerOpts  []module.RouterOption
	logger      *slog.Logger
	middlewares []func(http.Handler) http.Handler
	natives     []native
}

type native struct {
	pattern string
	handler http.HandlerFunc
}

// WithRegistry builds from r instead of the process-wide registry.
func WithRegistry(r *Registry) BuildOption {
	return func(o *buildOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithRouter mounts onto an existing router, for example one that already
// carries native health endpoints.
func WithRouter(router *module.Router) BuildOption {
	return func(o *buildOptions) {
		o.router = router
	}
}

// WithRouterOptions configures the router BuildServer creates. It has no
// effect when WithRouter is used.
func WithRouterOptions(opts ...module.RouterOption) BuildOption {
	return func(o *buildOptions) {
		o.routerOpts = append(o.routerOpts, opts...)
	}
}

// WithLogger sets the logger passed to the router and server.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMiddleware wraps the compiled route table. The first middleware is the
// outermost.
func WithMiddleware(middlewares ...func(http.Handler) http.Handler) BuildOption {
	return func(o *buildOptions) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// WithNative registers a raw ServeMux pattern alongside the contributed
// routes, for endpoints such as health checks that are not declared.
func WithNative(pattern string, handler http.HandlerFunc) BuildOption {
	return func(o *buildOptions) {
		o.natives = append(o.natives, native{pattern: pattern, handler: handler})
	}
}

// BuildServer mounts every contributed group onto a router, compiles the
// route table, and returns a server configured for cfg that has not been
// started. Host defaults to 0.0.0.0.
func BuildServer(cfg *server.Config, opts ...BuildOption) (*server.Server, error) {
	o := &buildOptions{
		registry: defaultRegistry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if cfg == nil {
		cfg = &server.Config{}
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	router := o.router
	if router == nil {
		routerOpts := append([]module.RouterOption{module.WithLogger(o.logger)}, o.routerOpts...)
		router = module.NewRouter(routerOpts...)
	}

	for _, n := range o.natives {
		if err := router.HandleNative(n.pattern, n.handler); err != nil {
			return nil, fmt.Errorf("native route: %w", err)
		}
	}

	if _, err := o.registry.MountAll(router); err != nil {
		return nil, err
	}

	if err := router.Build(); err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}

	var handler http.Handler = router
	for i := len(o.middlewares) - 1; i >= 0; i-- {
		if o.middlewares[i] != nil {
			handler = o.middlewares[i](handler)
		}
	}

	o.logger.Info(
		"server built",
		"addr", cfg.Addr(),
		"groups", o.registry.Len(),
		"routes", len(router.Entries()),
	)

	return server.New(cfg, handler, o.logger), nil
}

// MountAll mounts every group in the process-wide registry onto router.
func MountAll(router *module.Router) (*module.Router, error) {
	return defaultRegistry.MountAll(router)
}

// MountAll invokes each group's producer once, in Enumerate order, and mounts
// the routes under the group's prefix. It returns router for chaining.
// Mounting twice is tolerated because the router skips routes it already holds.
func (r *Registry) MountAll(router *module.Router) (*module.Router, error) {
	for _, group := range r.Enumerate() {
		if err := router.Mount(group.Mount, group.produce()); err != nil {
			return router, fmt.Errorf("mount routes: %w", err)
		}
	}
	return router, nil
}
