package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Orchestration outcomes recorded on the requests counter.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeNoMatch = "no_match"
)

// Metrics collects coordinator-level Prometheus metrics on a private
// registry, exposed at GET /metrics. All methods are nil-safe so callers can
// disable collection by passing a nil *Metrics.
type Metrics struct {
	registry           *prometheus.Registry
	orchestrationsTot  *prometheus.CounterVec
	planDuration       prometheus.Histogram
	registrationsTotal prometheus.Counter
	registeredAgents   prometheus.Gauge
}

// NewMetrics constructs a Metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		orchestrationsTot: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agentgrid_orchestrations_total",
			Help: "Orchestration requests by outcome.",
		}, []string{"outcome"}),
		planDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "agentgrid_plan_duration_seconds",
			Help:    "Wall-clock duration of executed plans.",
			Buckets: prometheus.DefBuckets,
		}),
		registrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "agentgrid_registrations_total",
			Help: "Agent registration calls accepted.",
		}),
		registeredAgents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "agentgrid_registered_agents",
			Help: "Agents currently known to the registry.",
		}),
	}
}

// Handler serves the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OrchestrationObserved records one orchestration request. Plan duration is
// only observed for executed plans (zero duration is skipped).
func (m *Metrics) OrchestrationObserved(outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.orchestrationsTot.WithLabelValues(outcome).Inc()
	if dur > 0 {
		m.planDuration.Observe(dur.Seconds())
	}
}

// RegistrationObserved records one accepted registration and the resulting
// registry size.
func (m *Metrics) RegistrationObserved(registered int) {
	if m == nil {
		return
	}
	m.registrationsTotal.Inc()
	m.registeredAgents.Set(float64(registered))
}
