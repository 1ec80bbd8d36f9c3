package monitoring

import (
	"sync/atomic"
	"time"

	"potability/ml"
)

// Metrics counts verdicts served since process start. Only aggregate
// counters are kept; individual predictions are never recorded.
type Metrics struct {
	potable    atomic.Int64
	notPotable atomic.Int64
	failures   atomic.Int64
	rejected   atomic.Int64
	latency    *LatencyTracker
	startTime  time.Time
}

// Snapshot is the JSON view served by the metrics endpoint.
type Snapshot struct {
	Potable     int64          `json:"potable"`
	NotPotable  int64          `json:"not_potable"`
	Failures    int64          `json:"failures"`
	Rejected    int64          `json:"rejected"`
	CacheHits   uint64         `json:"cache_hits"`
	CacheMisses uint64         `json:"cache_misses"`
	Latency     LatencySummary `json:"latency"`
	StartTime   time.Time      `json:"start_time"`
	Uptime      time.Duration  `json:"uptime"`
}

func NewMetrics() *Metrics {
	return &Metrics{latency: NewLatencyTracker(defaultLatencyWindow), startTime: time.Now()}
}

func (m *Metrics) RecordVerdict(label ml.Label) {
	if label == ml.Potable {
		m.potable.Add(1)
		return
	}
	m.notPotable.Add(1)
}

// RecordFailure counts an aborted inference.
func (m *Metrics) RecordFailure() {
	m.failures.Add(1)
}

// ObserveLatency records how long one inference took, successful or not.
func (m *Metrics) ObserveLatency(d time.Duration) {
	m.latency.Record(d)
}

// RecordRejected counts a snapshot that failed input validation.
func (m *Metrics) RecordRejected() {
	m.rejected.Add(1)
}

func (m *Metrics) Snapshot(cacheHits, cacheMisses uint64) Snapshot {
	return Snapshot{
		Potable:     m.potable.Load(),
		NotPotable:  m.notPotable.Load(),
		Failures:    m.failures.Load(),
		Rejected:    m.rejected.Load(),
		CacheHits:   cacheHits,
		CacheMisses: cacheMisses,
		Latency:     m.latency.Summary(),
		StartTime:   m.startTime,
		Uptime:      time.Since(m.startTime),
	}
}
