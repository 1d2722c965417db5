// Package scalar serves the interactive API reference for the generated
// OpenAPI document. The page is embedded at compile time.
package scalar

import (
	_ "embed"
	"net/http"
)

// Pattern is the native route the reference page is registered under.
const Pattern = "GET /scalar"

//go:embed index.html
var indexHTML []byte

// Handler serves the reference page. The page loads its document from
// /openapi.json.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(indexHTML)
	}
}
