package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"
)

// DocProvider supplies the OpenAPI document used for request validation.
type DocProvider func() (*openapi3.T, error)

// Validate checks requests against the OpenAPI document returned by provider.
// The document is resolved on the first request so it can describe the
// final route table. Requests with no documented operation, such as HEAD or
// OPTIONS on a route that accepts them, go straight to next so the route
// table decides. If the document cannot be resolved, requests pass through
// unvalidated and the failure is logged once.
func Validate(provider DocProvider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var (
			once       sync.Once
			validated  http.Handler
			operations routers.Router
		)

		resolve := func() {
			doc, err := provider()
			if err != nil {
				logger.Error("request validation disabled", "error", err)
				validated = next
				return
			}

			doc.Servers = nil
			router, err := gorillamux.NewRouter(doc)
			if err != nil {
				logger.Error("request validation disabled", "error", err)
				validated = next
				return
			}
			operations = router

			opts := &oapiMW.Options{
				Options: openapi3filter.Options{
					AuthenticationFunc: func(context.Context, *openapi3filter.AuthenticationInput) error {
						return nil
					},
				},
			}
			validated = oapiMW.OapiRequestValidatorWithOptions(doc, opts)(next)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			once.Do(resolve)
			if operations != nil {
				if _, _, err := operations.FindRoute(r); err != nil {
					next.ServeHTTP(w, r)
					return
				}
			}
			validated.ServeHTTP(w, r)
		})
	}
}
