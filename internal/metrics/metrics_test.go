package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRegisterAddsEveryCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"forgectl_cache_hits_total",
		"forgectl_cache_misses_total",
		"forgectl_rate_limit_exceeded_total",
		"forgectl_backoff_retries_total",
		"forgectl_http_requests_total",
	} {
		if !names[want] {
			t.Errorf("expected %s to be registered", want)
		}
	}
}

func TestCacheHitsTotalIncrementsPerProvider(t *testing.T) {
	CacheHitsTotal.Reset()
	CacheHitsTotal.WithLabelValues("github").Inc()
	CacheHitsTotal.WithLabelValues("github").Inc()
	CacheHitsTotal.WithLabelValues("gitlab").Inc()

	var m dto.Metric
	if err := CacheHitsTotal.WithLabelValues("github").Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected github counter 2, got %v", got)
	}
}
