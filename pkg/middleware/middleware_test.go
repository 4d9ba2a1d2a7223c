package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/octo/pkg/middleware"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestSystem_Apply_Order(t *testing.T) {
	var order []string
	mw := middleware.New()

	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	h := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "first,second,handler" {
		t.Errorf("order = %v, want [first second handler]", order)
	}
}

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"redirects trailing slash", "/agents/", http.StatusMovedPermanently, "/agents"},
		{"keeps query", "/agents/?search=math&page=2", http.StatusMovedPermanently, "/agents?search=math&page=2"},
		{"passes canonical", "/agents", http.StatusOK, ""},
		{"passes root", "/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			middleware.TrimSlash()(ok()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestLogger_LogsAfterHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if buf.Len() != 0 {
			t.Error("logged before handler completed")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/agents?page=2", nil))

	out := buf.String()
	for _, want := range []string{"request", "GET", "/api/agents?page=2", "status=418", "duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

type observation struct {
	method string
	route  string
	status int
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.seen = append(o.seen, observation{method, route, status})
}

func TestMetrics_UsesMatchedPattern(t *testing.T) {
	obs := &recordingObserver{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	h := middleware.Metrics(obs, "/api")(mux)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/agents/42", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(obs.seen) != 2 {
		t.Fatalf("observations = %d, want 2", len(obs.seen))
	}
	if got := obs.seen[0]; got.route != "/api GET /agents/{id}" || got.status != http.StatusNotFound {
		t.Errorf("first observation = %+v", got)
	}
	if got := obs.seen[1]; got.route != "/api" {
		t.Errorf("unmatched route label = %q, want /api", got.route)
	}
}

func TestMaxBody(t *testing.T) {
	h := middleware.MaxBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	small := httptest.NewRecorder()
	h.ServeHTTP(small, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
	if small.Code != http.StatusOK {
		t.Errorf("small body status = %d, want 200", small.Code)
	}

	large := httptest.NewRecorder()
	h.ServeHTTP(large, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too large")))
	if large.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("large body status = %d, want 413", large.Code)
	}
}
