package metrics

import (
	"testing"
	"time"
)

// counterValue reads a counter from the registry by name and label values.
func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserveProbe(t *testing.T) {
	m := New()
	m.ObserveProbe("network-api", OutcomeAbsent, 10*time.Millisecond)
	m.ObserveProbe("network-api", OutcomeAbsent, 20*time.Millisecond)
	m.ObserveProbe("network-api", OutcomeFound, 5*time.Millisecond)

	if got := counterValue(t, m, "ipfs_provider_probe_total", map[string]string{"provider": "network-api", "outcome": "absent"}); got != 2 {
		t.Fatalf("absent probes = %v, want 2", got)
	}
	if got := counterValue(t, m, "ipfs_provider_probe_total", map[string]string{"provider": "network-api", "outcome": "found"}); got != 1 {
		t.Fatalf("found probes = %v, want 1", got)
	}
}

func TestObserveResolve(t *testing.T) {
	m := New()
	m.ObserveResolve("none")
	m.ObserveResolve("injected-global")

	if got := counterValue(t, m, "ipfs_provider_resolve_total", map[string]string{"provider": "none"}); got != 1 {
		t.Fatalf("resolve none = %v, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveProbe("network-api", OutcomeError, time.Second)
	m.ObserveResolve("none")
}
