// Package middleware provides HTTP middleware shared by modules.
package middleware

import "net/http"

// System collects middleware and applies it to a handler.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type system struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware system.
func New() System {
	return &system{}
}

// Use appends mw. The first registered middleware runs outermost.
func (s *system) Use(mw func(http.Handler) http.Handler) {
	s.stack = append(s.stack, mw)
}

// Apply wraps handler in every registered middleware.
func (s *system) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
