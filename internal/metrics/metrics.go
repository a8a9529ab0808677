// Package metrics exposes Prometheus counters for authentication outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess      = "success"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRejected     = "rejected"
	OutcomeError        = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	AuthTotal   *prometheus.CounterVec
	GuardDenied *prometheus.CounterVec
}

// New creates a registry with process and Go collectors plus the auth
// counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		AuthTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidtrack_auth_total",
				Help: "Authentication operations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		GuardDenied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidtrack_guard_denied_total",
				Help: "Requests rejected by a request guard",
			},
			[]string{"guard"},
		),
	}

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(m.AuthTotal, m.GuardDenied)
	return m
}

func (m *Metrics) ObserveAuth(op, outcome string) {
	m.AuthTotal.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) ObserveDenied(guard string) {
	m.GuardDenied.WithLabelValues(guard).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
