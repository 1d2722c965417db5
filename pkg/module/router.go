package module

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Entry is a route as it sits in the router's table.
type Entry struct {
	Pattern string
	Mount   string
	Native  bool
	Route   Route
}

// Path returns the mounted path without the method or exact-match marker.
func (e Entry) Path() string {
	pattern := e.Pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		pattern = path
	}
	return strings.TrimSuffix(pattern, "{$}")
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithLogger sets the logger used to report rank resolution and build failures.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxBodyBytes caps the body buffered for routes declared with Data.
func WithMaxBodyBytes(limit int64) RouterOption {
	return func(r *Router) {
		r.maxBody = limit
	}
}

// Router collects mounted routes and compiles them into an http.ServeMux.
// Mount and HandleNative are only valid until the router is built.
type Router struct {
	mu      sync.Mutex
	entries []*Entry
	index   map[string]int
	built   bool
	logger  *slog.Logger
	maxBody int64

	once    sync.Once
	handler http.Handler
	err     error
}

// NewRouter creates an empty router.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		index:  make(map[string]int),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// HandleNative registers a raw ServeMux pattern that bypasses declaration.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built {
		return ErrRouterBuilt
	}
	if handler == nil {
		return fmt.Errorf("%s: %w", pattern, ErrNilHandler)
	}
	if err := checkPattern(pattern); err != nil {
		return fmt.Errorf("%s: %w", pattern, err)
	}

	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		method, path = MethodAny, pattern
	}

	return r.add(&Entry{
		Pattern: pattern,
		Mount:   "/",
		Native:  true,
		Route:   Route{Method: method, Path: path, Handler: handler},
	})
}

// Mount attaches routes under prefix. Mounting a route that is already in
// the table under the same pattern is a no-op.
func (r *Router) Mount(prefix string, routes []Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built {
		return ErrRouterBuilt
	}
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("mount %q: %w", prefix, ErrInvalidPrefix)
	}

	for _, route := range routes {
		if route.Handler == nil {
			return fmt.Errorf("mount %s %s %s: %w", prefix, MethodLabel(route.Method), route.Path, ErrNilHandler)
		}
		entry := &Entry{
			Pattern: route.Pattern(prefix),
			Mount:   prefix,
			Route:   route,
		}
		if err := r.add(entry); err != nil {
			return fmt.Errorf("mount %s: %w", prefix, err)
		}
	}

	return nil
}

var muxWildcard = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*(\.\.\.)?\}`)

// matchKey erases wildcard names so patterns matching the same requests
// share a key: GET /u/{id} and GET /u/{name} both become GET /u/{}.
func matchKey(pattern string) string {
	return muxWildcard.ReplaceAllString(pattern, "{$1}")
}

func (r *Router) add(entry *Entry) error {
	key := matchKey(entry.Pattern)
	idx, exists := r.index[key]
	if !exists {
		r.index[key] = len(r.entries)
		r.entries = append(r.entries, entry)
		return nil
	}

	current := r.entries[idx]
	switch {
	case entry.Route.ID != uuid.Nil && current.Route.ID == entry.Route.ID:
		return nil
	case entry.Route.Rank < current.Route.Rank:
		r.logger.Warn(
			"route superseded by lower rank",
			"pattern", entry.Pattern,
			"rank", entry.Route.Rank,
			"superseded_rank", current.Route.Rank,
		)
		r.entries[idx] = entry
		return nil
	case entry.Route.Rank > current.Route.Rank:
		r.logger.Warn(
			"route ignored in favor of lower rank",
			"pattern", entry.Pattern,
			"rank", entry.Route.Rank,
			"winning_rank", current.Route.Rank,
		)
		return nil
	default:
		return fmt.Errorf("%s (rank %d): %w", entry.Pattern, entry.Route.Rank, ErrRouteConflict)
	}
}

// Build compiles the route table. It runs once; later calls return the
// result of the first.
func (r *Router) Build() error {
	r.once.Do(func() {
		r.handler, r.err = r.compile()
	})
	return r.err
}

func (r *Router) compile() (http.Handler, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.built = true
	mux := http.NewServeMux()

	for _, entry := range r.entries {
		if err := register(mux, entry.Pattern, r.wrap(entry.Route)); err != nil {
			r.logger.Error("route table build failed", "error", err)
			return nil, err
		}
	}

	r.logger.Debug("route table built", "routes", len(r.entries))
	return mux, nil
}

func (r *Router) wrap(route Route) http.HandlerFunc {
	handler := route.Handler
	if route.Data != "" {
		handler = bindBody(route.Data, r.maxBody, handler)
	}
	if route.Format != "" {
		handler = negotiate(route.Format, handler)
	}
	return handler
}

func register(mux *http.ServeMux, pattern string, handler http.HandlerFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s: %w: %v", pattern, ErrRouteConflict, rec)
		}
	}()

	mux.HandleFunc(pattern, handler)
	return nil
}

// ServeHTTP builds the router on first use and dispatches the request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if err := r.Build(); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	r.handler.ServeHTTP(w, req)
}

// Entries returns a copy of the route table in mount order.
func (r *Router) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, len(r.entries))
	for i, entry := range r.entries {
		entries[i] = *entry
	}
	return entries
}
