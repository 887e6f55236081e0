// Package metrics records provider discovery outcomes in a private
// Prometheus registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels the result of a single probe.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeAbsent   Outcome = "absent"
	OutcomeError    Outcome = "error"
	OutcomeCanceled Outcome = "canceled"
)

// Metrics holds the registry and the discovery meters.
type Metrics struct {
	Registry      *prometheus.Registry
	ProbeDuration *prometheus.HistogramVec
	ProbeTotal    *prometheus.CounterVec
	ResolveTotal  *prometheus.CounterVec
}

// New creates a registry with the discovery metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	probeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ipfs_provider_probe_duration_seconds",
		Help:    "Duration of provider probes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "outcome"})

	probeTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipfs_provider_probe_total",
		Help: "Total number of provider probes.",
	}, []string{"provider", "outcome"})

	resolveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipfs_provider_resolve_total",
		Help: "Total number of discovery runs by winning provider.",
	}, []string{"provider"})

	reg.MustRegister(probeDuration, probeTotal, resolveTotal)

	return &Metrics{
		Registry:      reg,
		ProbeDuration: probeDuration,
		ProbeTotal:    probeTotal,
		ResolveTotal:  resolveTotal,
	}
}

// ObserveProbe records one probe of provider.
func (m *Metrics) ObserveProbe(provider string, outcome Outcome, d time.Duration) {
	if m == nil {
		return
	}
	m.ProbeTotal.WithLabelValues(provider, string(outcome)).Inc()
	m.ProbeDuration.WithLabelValues(provider, string(outcome)).Observe(d.Seconds())
}

// ObserveResolve records the end of a discovery run. winner is "none" when
// nothing was found.
func (m *Metrics) ObserveResolve(winner string) {
	if m == nil {
		return
	}
	m.ResolveTotal.WithLabelValues(winner).Inc()
}
