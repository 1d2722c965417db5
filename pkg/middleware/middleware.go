// Package middleware provides the HTTP middleware chain applied around the
// compiled route table.
package middleware

import "net/http"

// System collects middleware and applies it to a handler.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
	Chain() []func(http.Handler) http.Handler
}

type system struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware system.
func New() System {
	return &system{}
}

// Use appends mw to the chain. Middleware registered first runs first.
func (s *system) Use(mw func(http.Handler) http.Handler) {
	if mw != nil {
		s.stack = append(s.stack, mw)
	}
}

// Apply wraps handler with every registered middleware.
func (s *system) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}

// Chain returns a copy of the registered middleware in registration order.
func (s *system) Chain() []func(http.Handler) http.Handler {
	chain := make([]func(http.Handler) http.Handler, len(s.stack))
	copy(chain, s.stack)
	return chain
}
