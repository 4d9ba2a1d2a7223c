package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records completed requests.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics returns middleware that reports every request to obs.
// The route label is the matched ServeMux pattern when available, else the module prefix.
func Metrics(obs RequestObserver, prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := prefix
			if r.Pattern != "" {
				route = prefix + " " + r.Pattern
			}
			obs.ObserveRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
