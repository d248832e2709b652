package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

var defaultBuckets = []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000}

// Registry tracks generative call counters and latency per use case.
type Registry struct {
	mu        sync.Mutex
	calls     map[callKey]uint64
	durations map[string]*histogram
}

type callKey struct {
	useCase string
	outcome string
}

func New() *Registry {
	return &Registry{
		calls:     make(map[callKey]uint64),
		durations: make(map[string]*histogram),
	}
}

// ObserveCall records one generative call. outcome is "ok" or an error kind.
func (r *Registry) ObserveCall(useCase, outcome string, durationMs float64) {
	if r == nil {
		return
	}
	if durationMs < 0 {
		durationMs = 0
	}
	r.mu.Lock()
	r.calls[callKey{useCase: useCase, outcome: outcome}]++
	h, ok := r.durations[useCase]
	if !ok {
		h = newHistogram(defaultBuckets)
		r.durations[useCase] = h
	}
	r.mu.Unlock()
	h.Observe(durationMs)
}

// Calls returns the call count for a use case and outcome.
func (r *Registry) Calls(useCase, outcome string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[callKey{useCase: useCase, outcome: outcome}]
}

// Handler exposes metrics in Prometheus text format.
func (r *Registry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, r.Render())
	}
}

// Render renders metrics in Prometheus text format.
func (r *Registry) Render() string {
	r.mu.Lock()
	keys := make([]callKey, 0, len(r.calls))
	for k := range r.calls {
		keys = append(keys, k)
	}
	counts := make(map[callKey]uint64, len(r.calls))
	for k, v := range r.calls {
		counts[k] = v
	}
	useCases := make([]string, 0, len(r.durations))
	snaps := make(map[string]histogramSnapshot, len(r.durations))
	for uc, h := range r.durations {
		useCases = append(useCases, uc)
		snaps[uc] = h.Snapshot()
	}
	r.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].useCase != keys[j].useCase {
			return keys[i].useCase < keys[j].useCase
		}
		return keys[i].outcome < keys[j].outcome
	})
	sort.Strings(useCases)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# HELP llm_calls_total Generative calls by use case and outcome\n")
	fmt.Fprintf(&buf, "# TYPE llm_calls_total counter\n")
	for _, k := range keys {
		fmt.Fprintf(&buf, "llm_calls_total{use_case=%q,outcome=%q} %d\n", k.useCase, k.outcome, counts[k])
	}
	fmt.Fprintf(&buf, "# HELP llm_call_duration_ms Generative call duration in milliseconds\n")
	fmt.Fprintf(&buf, "# TYPE llm_call_duration_ms histogram\n")
	for _, uc := range useCases {
		writeHistogram(&buf, "llm_call_duration_ms", uc, snaps[uc])
	}
	return buf.String()
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

// Observe counts value in the first bucket that holds it; Render accumulates.
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

func writeHistogram(buf *bytes.Buffer, name, useCase string, snap histogramSnapshot) {
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{use_case=%q,le=\"%s\"} %d\n", name, useCase, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{use_case=%q,le=\"+Inf\"} %d\n", name, useCase, snap.count)
	fmt.Fprintf(buf, "%s_sum{use_case=%q} %s\n", name, useCase, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count{use_case=%q} %d\n", name, useCase, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
