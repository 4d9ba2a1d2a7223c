package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/JaimeStill/octo/internal/metrics"
	"github.com/JaimeStill/octo/pkg/cache"
	"github.com/JaimeStill/octo/pkg/middleware"
)

func TestMetrics_CacheRecorder(t *testing.T) {
	m := metrics.New()
	c := cache.New[int]("agents.list", cache.WithRecorder(m))
	key := cache.Key{Family: "agents.list", Owner: "u1"}
	fetch := func(context.Context) (int, error) { return 1, nil }

	c.Fetch(context.Background(), key, fetch)
	c.Fetch(context.Background(), key, fetch)
	c.Invalidate(cache.Family("agents.list", "u1"))

	if got := testutil.ToFloat64(m.CacheHits.WithLabelValues("agents.list")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheMisses.WithLabelValues("agents.list")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheInvalidations.WithLabelValues("agents.list")); got != 1 {
		t.Errorf("invalidations = %v, want 1", got)
	}
}

func TestMetrics_RequestObserver(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := middleware.Metrics(m, "/api")(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/agents/abc", nil))

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api GET /agents/{id}", "404"))
	if got != 1 {
		t.Errorf("requests counter = %v, want 1", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.AgentCreated("free")
	m.ObserveRequest("GET", "/app", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`octo_agents_created_total{plan="free"} 1`,
		`octo_http_requests_total{method="GET",route="/app",status="200"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
