package routes_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/autoroute/pkg/module"
	"github.com/JaimeStill/autoroute/pkg/routes"
	"github.com/JaimeStill/autoroute/pkg/server"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestMountAll_ProducesOncePerGroup(t *testing.T) {
	reg := routes.NewRegistry()

	calls := 0
	reg.Contribute(routes.Group{
		Mount: "/api",
		Routes: func() []module.Route {
			calls++
			route, err := module.Declare(http.MethodGet, "/info", reply("info"))
			if err != nil {
				t.Fatalf("Declare() error = %v", err)
			}
			return []module.Route{route}
		},
	})

	router := module.NewRouter(module.WithLogger(discardLogger()))
	got, err := reg.MountAll(router)
	if err != nil {
		t.Fatalf("MountAll() error = %v", err)
	}
	if got != router {
		t.Error("MountAll() did not return the same router")
	}
	if calls != 1 {
		t.Errorf("producer calls = %d, want 1", calls)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "info" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "info")
	}
}

func TestMountAll_Twice(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Declare(http.MethodGet, "/a", reply("a"))

	router := module.NewRouter(module.WithLogger(discardLogger()))
	for i := 0; i < 2; i++ {
		if _, err := reg.MountAll(router); err != nil {
			t.Fatalf("MountAll() #%d error = %v", i+1, err)
		}
	}

	if n := len(router.Entries()); n != 1 {
		t.Errorf("len(Entries()) = %d, want 1", n)
	}
}

func TestMountAll_Empty(t *testing.T) {
	router := module.NewRouter(module.WithLogger(discardLogger()))

	if _, err := routes.NewRegistry().MountAll(router); err != nil {
		t.Fatalf("MountAll() error = %v", err)
	}
	if n := len(router.Entries()); n != 0 {
		t.Errorf("len(Entries()) = %d, want 0", n)
	}
}

func TestMountAll_NilProducer(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Contribute(routes.Group{Mount: "/empty"})

	if _, err := reg.MountAll(module.NewRouter()); err != nil {
		t.Errorf("MountAll() error = %v", err)
	}
}

func TestMountAll_Conflict(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Declare(http.MethodGet, "/a", noop)
	reg.Declare(http.MethodGet, "/a", noop)

	_, err := reg.MountAll(module.NewRouter(module.WithLogger(discardLogger())))
	if !errors.Is(err, module.ErrRouteConflict) {
		t.Errorf("MountAll() error = %v, want %v", err, module.ErrRouteConflict)
	}
}

func TestMountAll_Default(t *testing.T) {
	if _, err := routes.MountAll(module.NewRouter(module.WithLogger(discardLogger()))); err != nil {
		t.Errorf("MountAll() error = %v", err)
	}
}

func TestBuildServer_EndToEnd(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Declare(http.MethodGet, "/a", reply("a"))
	reg.Declare(http.MethodPost, "/b", func(w http.ResponseWriter, r *http.Request) {
		body, _ := module.Body(r)
		w.Write([]byte(module.BodyParam(r) + "=" + string(body)))
	}, module.Data("<x>"))
	reg.Declare(module.MethodAny, "/c", reply("c"))

	srv, err := routes.BuildServer(
		&server.Config{Port: 9000},
		routes.WithRegistry(reg),
		routes.WithLogger(discardLogger()),
		routes.WithNative("GET /healthz", reply("OK")),
	)
	if err != nil {
		t.Fatalf("BuildServer() error = %v", err)
	}

	if srv.Addr() != "0.0.0.0:9000" {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), "0.0.0.0:9000")
	}

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		want   string
	}{
		{"get a", http.MethodGet, "/a", "", http.StatusOK, "a"},
		{"post a", http.MethodPost, "/a", "", http.StatusMethodNotAllowed, ""},
		{"put a", http.MethodPut, "/a", "", http.StatusMethodNotAllowed, ""},
		{"post b", http.MethodPost, "/b", "hello", http.StatusOK, "x=hello"},
		{"get c", http.MethodGet, "/c", "", http.StatusOK, "c"},
		{"patch c", http.MethodPatch, "/c", "", http.StatusOK, "c"},
		{"native", http.MethodGet, "/healthz", "", http.StatusOK, "OK"},
		{"unknown", http.MethodGet, "/missing", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.want != "" && rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestBuildServer_NoArguments(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Declare(http.MethodGet, "", reply("root"))

	srv, err := routes.BuildServer(nil, routes.WithRegistry(reg), routes.WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("BuildServer() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Body.String() != "root" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "root")
	}
}

func TestBuildServer_Middleware(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Declare(http.MethodGet, "/a", reply("a"))

	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	srv, err := routes.BuildServer(
		&server.Config{},
		routes.WithRegistry(reg),
		routes.WithLogger(discardLogger()),
		routes.WithMiddleware(mark("outer"), mark("inner")),
	)
	if err != nil {
		t.Fatalf("BuildServer() error = %v", err)
	}

	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a", nil))

	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}

func TestBuildServer_WithRouter(t *testing.T) {
	router := module.NewRouter(module.WithLogger(discardLogger()))
	if err := router.HandleNative("GET /healthz", reply("OK")); err != nil {
		t.Fatalf("HandleNative() error = %v", err)
	}

	reg := routes.NewRegistry()
	reg.Declare(http.MethodGet, "/a", reply("a"))

	if _, err := routes.BuildServer(&server.Config{}, routes.WithRegistry(reg), routes.WithRouter(router)); err != nil {
		t.Fatalf("BuildServer() error = %v", err)
	}

	if n := len(router.Entries()); n != 2 {
		t.Errorf("len(Entries()) = %d, want 2", n)
	}
}

func TestBuildServer_Errors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := routes.BuildServer(&server.Config{Port: 70000}, routes.WithRegistry(routes.NewRegistry()))
		if err == nil {
			t.Error("BuildServer() error = nil, want config error")
		}
	})

	t.Run("conflict", func(t *testing.T) {
		reg := routes.NewRegistry()
		reg.Declare(http.MethodGet, "/posts/<id>", noop)
		reg.Declare(http.MethodGet, "/<resource>/latest", noop)

		_, err := routes.BuildServer(&server.Config{}, routes.WithRegistry(reg), routes.WithLogger(discardLogger()))
		if !errors.Is(err, module.ErrRouteConflict) {
			t.Errorf("BuildServer() error = %v, want %v", err, module.ErrRouteConflict)
		}
	})

	t.Run("invalid native", func(t *testing.T) {
		_, err := routes.BuildServer(
			&server.Config{},
			routes.WithRegistry(routes.NewRegistry()),
			routes.WithNative("GET /{", noop),
		)
		if !errors.Is(err, module.ErrInvalidPattern) {
			t.Errorf("BuildServer() error = %v, want %v", err, module.ErrInvalidPattern)
		}
	})
}
