package cache

import "go.uber.org/atomic"

// Namespace partitions the cache into independently configured segments.
type Namespace string

const (
	NamespaceCurrent  Namespace = "current"
	NamespaceForecast Namespace = "forecast"
)

// StatsCollector accumulates hit/miss/eviction counters per namespace.
// Counters are atomic so recording never contends with the store locks.
type StatsCollector struct {
	current  namespaceCounters
	forecast namespaceCounters
}

type namespaceCounters struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewStatsCollector returns a collector with all counters at zero.
func NewStatsCollector() *StatsCollector { return &StatsCollector{} }

func (s *StatsCollector) counters(ns Namespace) *namespaceCounters {
	if ns == NamespaceForecast {
		return &s.forecast
	}
	return &s.current
}

// RecordHit counts one successful lookup in ns.
func (s *StatsCollector) RecordHit(ns Namespace) { s.counters(ns).hits.Inc() }

// RecordMiss counts one failed lookup in ns.
func (s *StatsCollector) RecordMiss(ns Namespace) { s.counters(ns).misses.Inc() }

// RecordEvictions adds count swept entries to the namespace's eviction total.
func (s *StatsCollector) RecordEvictions(ns Namespace, count int) {
	if count > 0 {
		s.counters(ns).evictions.Add(uint64(count))
	}
}

// NamespaceStats is an immutable view of one namespace's counters. Size is
// sampled from the store at snapshot time rather than tracked independently,
// so it cannot drift from the live entry count.
type NamespaceStats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	Size      int     `json:"size"`
	HitRate   float64 `json:"hit_rate"`
}

func (s *StatsCollector) snapshot(ns Namespace, size int) NamespaceStats {
	c := s.counters(ns)
	st := NamespaceStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}
	return st
}
