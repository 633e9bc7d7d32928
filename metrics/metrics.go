// File: /metrics/metrics.go

// Package metrics records handler outcomes and database reachability in
// Prometheus form.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the collectors and the registry they are registered on.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	databaseUp  prometheus.Gauge
}

// NewManager registers every collector on a fresh registry unless one is
// supplied with WithRegistry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tricycle",
		histogramBuckets: prometheus.DefBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)
	m.invocations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "handler",
		Name:      "invocations_total",
		Help:      "Handler invocations by operation, response status and error kind.",
	}, []string{"operation", "status", "kind"})
	m.duration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "handler",
		Name:      "duration_seconds",
		Help:      "Handler latency by operation.",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})
	m.databaseUp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "database_up",
		Help:      "1 when the last database ping succeeded, 0 otherwise.",
	})

	return m
}

// ObserveInvocation records one handler call. kind is empty on success.
func (m *Manager) ObserveInvocation(operation string, status int, kind string, elapsed time.Duration) {
	if kind == "" {
		kind = "none"
	}
	m.invocations.WithLabelValues(operation, strconv.Itoa(status), kind).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetDatabaseUp records the outcome of a health ping.
func (m *Manager) SetDatabaseUp(up bool) {
	if up {
		m.databaseUp.Set(1)
		return
	}
	m.databaseUp.Set(0)
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
