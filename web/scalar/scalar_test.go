package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/octo/pkg/module"
	"github.com/JaimeStill/octo/web/scalar"
)

func TestModule(t *testing.T) {
	m, err := scalar.NewModule("/scalar", "Octo API", "/api/openapi.json")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)

	tests := []struct {
		path   string
		status int
	}{
		{"/scalar", http.StatusOK},
		{"/scalar/", http.StatusOK},
		{"/scalar/other", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}

			if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}
			body := w.Body.String()
			for _, want := range []string{"<title>Octo API</title>", `data-url="/api/openapi.json"`} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}
