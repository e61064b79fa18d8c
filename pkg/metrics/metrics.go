package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the per-service HTTP metrics.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers the metric set on its own registry so
// multiple services (and tests) never collide.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		ErrorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
		registry: registry,
	}

	registry.MustRegister(m.RequestDuration, m.RequestTotal, m.ErrorTotal)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
