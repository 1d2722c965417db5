// Package openapi generates an OpenAPI 3 document from a compiled route table.
package openapi

import (
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/JaimeStill/autoroute/pkg/module"
)

// Version is the OpenAPI version of generated documents.
const Version = "3.0.3"

// anyMethods are the operations documented for a route that accepts every method.
var anyMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

var wildcard = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(\.\.\.)?\}`)

// Generate builds a document describing entries. Routes that accept every
// method are documented under each common method unless a method-specific
// route covers the same path.
func Generate(cfg *Config, entries []module.Entry) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     cfg.Version,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, entry := range entries {
		if entry.Route.Method == module.MethodAny {
			for _, method := range anyMethods {
				addOperation(doc, entry, method)
			}
		}
	}

	for _, entry := range entries {
		if entry.Route.Method != module.MethodAny {
			addOperation(doc, entry, entry.Route.Method)
		}
	}

	return doc
}

// MarshalJSON renders doc as JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	return doc.MarshalJSON()
}

// Provider returns a function that generates the document from entries on
// first call and returns the same document afterwards.
func Provider(cfg *Config, entries func() []module.Entry) func() (*openapi3.T, error) {
	var (
		once sync.Once
		doc  *openapi3.T
	)
	return func() (*openapi3.T, error) {
		once.Do(func() {
			doc = Generate(cfg, entries())
		})
		return doc, nil
	}
}

// DocPath converts a mounted ServeMux path into an OpenAPI path template.
func DocPath(path string) string {
	return wildcard.ReplaceAllString(path, "{$1}")
}

func addOperation(doc *openapi3.T, entry module.Entry, method string) {
	path := entry.Path()
	if !strings.HasPrefix(path, "/") {
		return
	}
	path = DocPath(path)

	item := doc.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		doc.Paths.Set(path, item)
	}

	item.SetOperation(method, newOperation(entry, path, method))
}

func newOperation(entry module.Entry, path, method string) *openapi3.Operation {
	route := entry.Route
	op := openapi3.NewOperation()
	op.Summary = route.Summary
	op.Tags = append([]string(nil), route.Tags...)

	for _, m := range wildcard.FindAllStringSubmatch(path, -1) {
		op.AddParameter(openapi3.NewPathParameter(m[1]).WithSchema(openapi3.NewStringSchema()))
	}

	mediaType := "application/json"
	if route.Format != "" {
		mediaType = module.MediaType(route.Format)
	}

	// Data alone fixes no media type, so only formatted bodies are documented.
	if route.Data != "" && route.Format != "" && carriesBody(method) {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription(route.Data).
				WithContent(openapi3.Content{mediaType: openapi3.NewMediaType()}),
		}
	}

	response := openapi3.NewResponse().WithDescription(http.StatusText(http.StatusOK))
	if route.Format != "" && !carriesBody(method) {
		response.WithContent(openapi3.Content{mediaType: openapi3.NewMediaType()})
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: response}),
	)

	return op
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
