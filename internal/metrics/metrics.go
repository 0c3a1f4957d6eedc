// Package metrics collects in-process counters and latencies for deck
// analysis. Every method is safe on a nil *Collector, so callers that were
// not handed one need no checks.
package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks analyzer performance.
type Collector struct {
	BuildLatency    *Histogram
	ClassifyLatency *Histogram
	LookupLatency   *Histogram

	DecksAnalyzed atomic.Uint64
	AnalyzeErrors atomic.Uint64

	LocalHits    atomic.Uint64
	RemoteHits   atomic.Uint64
	LookupMisses atomic.Uint64
	LookupErrors atomic.Uint64

	Requests     atomic.Uint64
	ServerErrors atomic.Uint64

	startTime atomic.Int64
}

// New creates a collector.
func New() *Collector {
	m := &Collector{
		BuildLatency:    NewHistogram(DefaultSamples),
		ClassifyLatency: NewHistogram(DefaultSamples),
		LookupLatency:   NewHistogram(DefaultSamples),
	}
	m.startTime.Store(time.Now().UnixNano())
	return m
}

// ObserveBuild records how long a deck build took.
func (m *Collector) ObserveBuild(start time.Time) {
	if m == nil {
		return
	}
	m.BuildLatency.Time(start)
}

// ObserveClassify records how long classification took.
func (m *Collector) ObserveClassify(start time.Time) {
	if m == nil {
		return
	}
	m.ClassifyLatency.Time(start)
}

// ObserveAnalysis counts a finished analysis.
func (m *Collector) ObserveAnalysis(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.AnalyzeErrors.Add(1)
		return
	}
	m.DecksAnalyzed.Add(1)
}

// LookupResult is how a card lookup ended.
type LookupResult int

const (
	LookupLocal LookupResult = iota
	LookupRemote
	LookupMiss
	LookupError
)

// ObserveLookup records a card lookup.
func (m *Collector) ObserveLookup(result LookupResult, start time.Time) {
	if m == nil {
		return
	}
	m.LookupLatency.Time(start)
	switch result {
	case LookupLocal:
		m.LocalHits.Add(1)
	case LookupRemote:
		m.RemoteHits.Add(1)
	case LookupMiss:
		m.LookupMisses.Add(1)
	case LookupError:
		m.LookupErrors.Add(1)
	}
}

// ObserveRequest counts an HTTP request by its response status.
func (m *Collector) ObserveRequest(status int) {
	if m == nil {
		return
	}
	m.Requests.Add(1)
	if status >= 500 {
		m.ServerErrors.Add(1)
	}
}

// Snapshot is a point-in-time view of a collector.
type Snapshot struct {
	BuildLatency    LatencyStats `json:"build_latency"`
	ClassifyLatency LatencyStats `json:"classify_latency"`
	LookupLatency   LatencyStats `json:"lookup_latency"`

	DecksAnalyzed uint64 `json:"decks_analyzed"`
	AnalyzeErrors uint64 `json:"analyze_errors"`

	LocalHits    uint64  `json:"local_hits"`
	RemoteHits   uint64  `json:"remote_hits"`
	LookupMisses uint64  `json:"lookup_misses"`
	LookupErrors uint64  `json:"lookup_errors"`
	LocalHitRate float64 `json:"local_hit_rate"` // percentage of resolved lookups

	Requests     uint64 `json:"requests"`
	ServerErrors uint64 `json:"server_errors"`

	Uptime string `json:"uptime"`
}

// LatencyStats summarizes a histogram in milliseconds.
type LatencyStats struct {
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Snapshot returns the current values. A nil collector yields a zero
// snapshot.
func (m *Collector) Snapshot() *Snapshot {
	if m == nil {
		return &Snapshot{}
	}

	local := m.LocalHits.Load()
	remote := m.RemoteHits.Load()
	hitRate := 0.0
	if local+remote > 0 {
		hitRate = float64(local) / float64(local+remote) * 100
	}

	return &Snapshot{
		BuildLatency:    m.BuildLatency.Stats(),
		ClassifyLatency: m.ClassifyLatency.Stats(),
		LookupLatency:   m.LookupLatency.Stats(),
		DecksAnalyzed:   m.DecksAnalyzed.Load(),
		AnalyzeErrors:   m.AnalyzeErrors.Load(),
		LocalHits:       local,
		RemoteHits:      remote,
		LookupMisses:    m.LookupMisses.Load(),
		LookupErrors:    m.LookupErrors.Load(),
		LocalHitRate:    hitRate,
		Requests:        m.Requests.Load(),
		ServerErrors:    m.ServerErrors.Load(),
		Uptime:          time.Since(time.Unix(0, m.startTime.Load())).Round(time.Second).String(),
	}
}

// Reset zeroes every counter and histogram.
func (m *Collector) Reset() {
	if m == nil {
		return
	}
	m.BuildLatency.Reset()
	m.ClassifyLatency.Reset()
	m.LookupLatency.Reset()
	for _, c := range []*atomic.Uint64{
		&m.DecksAnalyzed, &m.AnalyzeErrors,
		&m.LocalHits, &m.RemoteHits, &m.LookupMisses, &m.LookupErrors,
		&m.Requests, &m.ServerErrors,
	} {
		c.Store(0)
	}
	m.startTime.Store(time.Now().UnixNano())
}
