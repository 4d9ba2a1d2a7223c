// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector, registered on its own registry.
// It implements cache.Recorder and middleware.RequestObserver.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CacheHits           *prometheus.CounterVec
	CacheMisses         *prometheus.CounterVec
	CacheInvalidations  *prometheus.CounterVec
	AgentsCreated       *prometheus.CounterVec
}

// New registers the collectors on a fresh registry along with process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "octo_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "octo_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "octo_cache_hits_total",
				Help: "Cache lookups served from a stored entry",
			},
			[]string{"cache"},
		),
		CacheMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "octo_cache_misses_total",
				Help: "Cache lookups that required a fetch",
			},
			[]string{"cache"},
		),
		CacheInvalidations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "octo_cache_invalidations_total",
				Help: "Cache keys dropped by invalidation",
			},
			[]string{"cache"},
		),
		AgentsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "octo_agents_created_total",
				Help: "Agents created, by plan",
			},
			[]string{"plan"},
		),
	}
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Hit(cache string) {
	m.CacheHits.WithLabelValues(cache).Inc()
}

func (m *Metrics) Miss(cache string) {
	m.CacheMisses.WithLabelValues(cache).Inc()
}

func (m *Metrics) Invalidated(cache string, n int) {
	m.CacheInvalidations.WithLabelValues(cache).Add(float64(n))
}

// AgentCreated counts a created agent for plan.
func (m *Metrics) AgentCreated(plan string) {
	m.AgentsCreated.WithLabelValues(plan).Inc()
}
