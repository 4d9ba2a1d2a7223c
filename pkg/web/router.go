package web

import "net/http"

// Router is a ServeMux with a fallback for requests that match no pattern.
type Router struct {
	mux      *http.ServeMux
	fallback http.Handler
}

// NewRouter creates a Router that answers unmatched requests with http.NotFound.
func NewRouter() *Router {
	return &Router{
		mux:      http.NewServeMux(),
		fallback: http.NotFoundHandler(),
	}
}

// SetFallback replaces the handler for unmatched requests.
func (r *Router) SetFallback(h http.HandlerFunc) {
	r.fallback = h
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) HandleFunc(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// ServeHTTP dispatches to the matching route, or to the fallback.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" {
		r.fallback.ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}
