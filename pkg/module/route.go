package module

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MethodAny declares a route that accepts every HTTP method.
const MethodAny = ""

// Route is a single method, path, and handler binding.
type Route struct {
	ID      uuid.UUID
	Method  string
	Path    string
	Handler http.HandlerFunc
	Rank    int
	Format  string
	Data    string
	Summary string
	Tags    []string
}

// Option configures a route at declaration time.
type Option func(*Route)

// Rank sets the precedence used when two routes resolve to the same method
// and pattern. Lower ranks win.
func Rank(rank int) Option {
	return func(r *Route) {
		r.Rank = rank
	}
}

// Format restricts the route to requests whose media type matches format.
// Shorthands such as "json" or "plain" are expanded by MediaType.
func Format(format string) Option {
	return func(r *Route) {
		r.Format = format
	}
}

// Data buffers the request body before the handler runs and exposes it
// through Body and BindJSON. The parameter name may be written as "<name>".
func Data(param string) Option {
	return func(r *Route) {
		r.Data = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(param), "<"), ">")
	}
}

// Summary attaches a short description used by route introspection.
func Summary(summary string) Option {
	return func(r *Route) {
		r.Summary = summary
	}
}

// Tags attaches grouping labels used by route introspection.
func Tags(tags ...string) Option {
	return func(r *Route) {
		r.Tags = append(r.Tags, tags...)
	}
}

// Declare builds a route for method and path. An empty path declares "/".
// The resulting pattern is checked against http.ServeMux so that malformed
// declarations fail here instead of when the server is built.
func Declare(method, path string, handler http.HandlerFunc, opts ...Option) (Route, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if path == "" {
		path = "/"
	}

	if handler == nil {
		return Route{}, fmt.Errorf("%s %s: %w", MethodLabel(method), path, ErrNilHandler)
	}

	route := Route{
		ID:      uuid.New(),
		Method:  method,
		Path:    NormalizePath(path),
		Handler: handler,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&route)
		}
	}

	if err := checkPattern(route.Pattern("/")); err != nil {
		return Route{}, fmt.Errorf("%s %s: %w", MethodLabel(method), path, err)
	}

	return route, nil
}

// Pattern returns the http.ServeMux pattern for the route mounted under prefix.
func (r Route) Pattern(prefix string) string {
	path := muxPath(JoinPath(prefix, r.Path))
	if r.Method == MethodAny {
		return path
	}
	return r.Method + " " + path
}

// MethodLabel renders a route method for logs and error messages.
func MethodLabel(method string) string {
	if method == MethodAny {
		return "ANY"
	}
	return method
}

var segmentParam = regexp.MustCompile(`<([A-Za-z_][A-Za-z0-9_]*)(\.\.)?>`)

// NormalizePath translates <name> and <name..> segments into the ServeMux
// wildcard forms {name} and {name...}.
func NormalizePath(path string) string {
	return segmentParam.ReplaceAllStringFunc(path, func(seg string) string {
		m := segmentParam.FindStringSubmatch(seg)
		if m[2] != "" {
			return "{" + m[1] + "...}"
		}
		return "{" + m[1] + "}"
	})
}

// JoinPath joins a mount prefix and a route path.
func JoinPath(prefix, path string) string {
	prefix = strings.TrimRight(prefix, "/")
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return prefix + path
}

func muxPath(path string) string {
	if strings.HasSuffix(path, "/") {
		return path + "{$}"
	}
	return path
}

func checkPattern(pattern string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidPattern, rec)
		}
	}()

	http.NewServeMux().HandleFunc(pattern, func(http.ResponseWriter, *http.Request) {})
	return nil
}
