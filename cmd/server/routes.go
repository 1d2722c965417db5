package main

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/JaimeStill/autoroute/internal/config"
	"github.com/JaimeStill/autoroute/pkg/handlers"
	"github.com/JaimeStill/autoroute/pkg/lifecycle"
	"github.com/JaimeStill/autoroute/pkg/module"
	"github.com/JaimeStill/autoroute/pkg/openapi"
	"github.com/JaimeStill/autoroute/web/scalar"
)

// routeInfo is the JSON form of a mounted route.
type routeInfo struct {
	ID      string   `json:"id,omitempty"`
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Mount   string   `json:"mount"`
	Pattern string   `json:"pattern"`
	Native  bool     `json:"native"`
	Rank    int      `json:"rank"`
	Format  string   `json:"format,omitempty"`
	Data    string   `json:"data,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// registerNative adds the service endpoints that are not declared through
// the registry. They read the route table at request time, after it is built.
func registerNative(router *module.Router, lc *lifecycle.Coordinator, cfg *config.Config) error {
	docs := openapi.Provider(&cfg.OpenAPI, router.Entries)

	natives := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /healthz", handleHealthCheck},
		{"GET /readyz", func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, lc)
		}},
		{"GET /routes", func(w http.ResponseWriter, r *http.Request) {
			handlers.RespondJSON(w, http.StatusOK, describeRoutes(router.Entries()))
		}},
		{"GET /openapi.json", serveOpenAPISpec(docs)},
		{scalar.Pattern, scalar.Handler()},
	}

	for _, n := range natives {
		if err := router.HandleNative(n.pattern, n.handler); err != nil {
			return fmt.Errorf("register %s: %w", n.pattern, err)
		}
	}
	return nil
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	handlers.RespondText(w, http.StatusOK, "OK")
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		handlers.RespondText(w, http.StatusServiceUnavailable, "NOT READY")
		return
	}
	handlers.RespondText(w, http.StatusOK, "READY")
}

func describeRoutes(entries []module.Entry) []routeInfo {
	infos := make([]routeInfo, 0, len(entries))
	for _, e := range entries {
		info := routeInfo{
			Method:  module.MethodLabel(e.Route.Method),
			Path:    e.Path(),
			Mount:   e.Mount,
			Pattern: e.Pattern,
			Native:  e.Native,
			Rank:    e.Route.Rank,
			Format:  e.Route.Format,
			Data:    e.Route.Data,
			Summary: e.Route.Summary,
			Tags:    e.Route.Tags,
		}
		if !e.Native {
			info.ID = e.Route.ID.String()
		}
		infos = append(infos, info)
	}
	return infos
}

func serveOpenAPISpec(docs func() (*openapi3.T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := docs()
		if err != nil {
			handlers.RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		spec, err := openapi.MarshalJSON(doc)
		if err != nil {
			handlers.RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
