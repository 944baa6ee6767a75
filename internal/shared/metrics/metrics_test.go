package metrics

import (
	"strings"
	"testing"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot count=%d sum=%v", snap.count, snap.sum)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("expected one observation per bucket, got %v", snap.counts)
	}
}

func TestRenderIncludesLabeledCounters(t *testing.T) {
	IncRecommendSource("fallback")
	IncProviderFailure("cohere")
	IncStoreFallback()

	out := Render()
	for _, want := range []string{
		`recommend_source_total{source="fallback"}`,
		`provider_failures_total{provider="cohere"}`,
		"store_fallback_total",
		`recommend_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
