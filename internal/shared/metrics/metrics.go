package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	recommendRequestsTotal atomic.Uint64
	recommendFailedTotal   atomic.Uint64
	storeFallbackTotal     atomic.Uint64

	recommendSource  = newLabeledCounter()
	providerFailures = newLabeledCounter()

	recommendDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncRecommendRequest counts an accepted recommendation request.
func IncRecommendRequest() {
	recommendRequestsTotal.Add(1)
}

// IncRecommendFailed counts a request that ended without a recommendation.
func IncRecommendFailed() {
	recommendFailedTotal.Add(1)
}

// IncRecommendSource counts a produced recommendation by source (provider name or "fallback").
func IncRecommendSource(source string) {
	recommendSource.Inc(source)
}

// IncProviderFailure counts a failed provider attempt.
func IncProviderFailure(provider string) {
	providerFailures.Inc(provider)
}

// IncStoreFallback counts a switch from the primary store to the flat-file store.
func IncStoreFallback() {
	storeFallbackTotal.Add(1)
}

// ObserveRecommendDurationMs records an end-to-end recommendation duration in milliseconds.
func ObserveRecommendDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	recommendDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommend_requests_total", "Total recommendation requests", recommendRequestsTotal.Load())
	writeCounter(&buf, "recommend_failed_total", "Total recommendation requests that failed", recommendFailedTotal.Load())
	writeLabeledCounter(&buf, "recommend_source_total", "Recommendations produced by source", "source", recommendSource.Snapshot())
	writeLabeledCounter(&buf, "provider_failures_total", "Failed provider attempts", "provider", providerFailures.Snapshot())
	writeCounter(&buf, "store_fallback_total", "Primary store failures served by the flat-file store", storeFallbackTotal.Load())
	writeHistogram(&buf, "recommend_duration_ms", "Recommendation duration in milliseconds", recommendDuration.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{counts: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[label]++
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
