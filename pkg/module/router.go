package module

import (
	"net/http"
	"strings"
)

// Router dispatches to mounted modules by first path segment and falls back
// to a native ServeMux for everything else.
type Router struct {
	native  *http.ServeMux
	modules map[string]*Module
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make(map[string]*Module),
	}
}

// Mount registers m at its prefix, replacing any module with the same prefix.
func (r *Router) Mount(m *Module) {
	r.modules[m.prefix] = m
}

// HandleNative registers a handler on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// ServeHTTP implements http.Handler. Trailing slashes are removed before dispatch.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
		req.URL.Path = path
	}

	if m, ok := r.modules[prefixOf(path)]; ok {
		m.Serve(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}

func prefixOf(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	rest := path[1:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return "/" + rest[:i]
	}
	return "/" + rest
}
