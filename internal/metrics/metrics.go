// Package metrics exposes Prometheus instruments for password generation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	PasswordsTotal    prometheus.Counter
	RequirementErrors *prometheus.CounterVec
	PasswordLength    prometheus.Histogram
}

// New registers the passgen instruments on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PasswordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passgen_passwords_generated_total",
			Help: "Number of passwords generated.",
		}),
		RequirementErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passgen_requirement_errors_total",
			Help: "Generation requests rejected during validation, by reason.",
		}, []string{"reason"}),
		PasswordLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "passgen_password_length",
			Help:    "Length of generated passwords.",
			Buckets: []float64{8, 12, 16, 24, 32, 64, 128, 256, 1024},
		}),
	}

	m.registry.MustRegister(
		m.PasswordsTotal,
		m.RequirementErrors,
		m.PasswordLength,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveGenerated records count passwords of the given length.
func (m *Metrics) ObserveGenerated(length, count int) {
	if m == nil {
		return
	}
	m.PasswordsTotal.Add(float64(count))
	for i := 0; i < count; i++ {
		m.PasswordLength.Observe(float64(length))
	}
}

// ObserveRejected records a request rejected for reason.
func (m *Metrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.RequirementErrors.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
