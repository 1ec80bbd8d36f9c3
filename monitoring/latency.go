package monitoring

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

const defaultLatencyWindow = 1024

// LatencyTracker keeps the most recent inference durations in a fixed ring.
type LatencyTracker struct {
	mu      sync.RWMutex
	samples []float64
	next    int
	filled  bool
	max     time.Duration
}

// LatencySummary is in milliseconds.
type LatencySummary struct {
	Count int     `json:"count"`
	P50   float64 `json:"p50_ms"`
	P95   float64 `json:"p95_ms"`
	Max   float64 `json:"max_ms"`
}

func NewLatencyTracker(window int) *LatencyTracker {
	if window <= 0 {
		window = defaultLatencyWindow
	}
	return &LatencyTracker{samples: make([]float64, window)}
}

func (lt *LatencyTracker) Record(d time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.samples[lt.next] = float64(d) / float64(time.Millisecond)
	lt.next++
	if lt.next == len(lt.samples) {
		lt.next = 0
		lt.filled = true
	}
	if d > lt.max {
		lt.max = d
	}
}

func (lt *LatencyTracker) Summary() LatencySummary {
	lt.mu.RLock()
	n := lt.next
	if lt.filled {
		n = len(lt.samples)
	}
	sorted := make([]float64, n)
	copy(sorted, lt.samples[:n])
	longest := lt.max
	lt.mu.RUnlock()

	if n == 0 {
		return LatencySummary{}
	}
	sort.Float64s(sorted)
	return LatencySummary{
		Count: n,
		P50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Max:   float64(longest) / float64(time.Millisecond),
	}
}
