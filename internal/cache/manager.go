package cache

import (
	"fmt"
	"time"
)

// Settings carries the cache configuration resolved at startup. It is read at
// construction and immutable thereafter.
type Settings struct {
	// CurrentTTL bounds how long a current-conditions document is served.
	CurrentTTL time.Duration

	// ForecastTTL bounds how long a forecast document is served. Forecast
	// data stays valid far longer than current conditions.
	ForecastTTL time.Duration

	// CoordPrecision is the number of decimal digits coordinates are rounded
	// to when forming cache keys.
	CoordPrecision int

	// CleanupInterval is the period of the background sweep.
	CleanupInterval time.Duration
}

func (s Settings) validate() error {
	if s.CurrentTTL <= 0 {
		return fmt.Errorf("%w: non-positive current-weather ttl %v", ErrInvalidConfig, s.CurrentTTL)
	}
	if s.ForecastTTL <= 0 {
		return fmt.Errorf("%w: non-positive forecast-weather ttl %v", ErrInvalidConfig, s.ForecastTTL)
	}
	if s.CleanupInterval <= 0 {
		return fmt.Errorf("%w: non-positive cleanup interval %v", ErrInvalidConfig, s.CleanupInterval)
	}
	if s.CoordPrecision < 0 {
		return fmt.Errorf("%w: negative coordinate precision %d", ErrInvalidConfig, s.CoordPrecision)
	}
	return nil
}

// Manager is the public cache surface: one store per namespace behind a shared
// quantizer and stats collector. Fetching fresh data on a miss is the caller's
// responsibility; the manager never performs network I/O.
type Manager struct {
	settings  Settings
	quantizer Quantizer
	clock     Clock
	current   *Store
	forecast  *Store
	stats     *StatsCollector
}

// NewManager validates settings and builds an empty cache. A nil clock means
// the wall clock. Configuration errors abort construction.
func NewManager(settings Settings, clock Clock) (*Manager, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock()
	}

	quantizer, err := NewQuantizer(settings.CoordPrecision)
	if err != nil {
		return nil, err
	}

	return &Manager{
		settings:  settings,
		quantizer: quantizer,
		clock:     clock,
		current:   NewStore(clock),
		forecast:  NewStore(clock),
		stats:     NewStatsCollector(),
	}, nil
}

// Settings returns the configuration the manager was built with.
func (m *Manager) Settings() Settings { return m.settings }

// GetCurrent probes the current-conditions namespace for the coordinate,
// recording a hit or miss. A miss is a normal outcome, not an error.
func (m *Manager) GetCurrent(lat, lon float64) (any, bool, error) {
	return m.lookup(NamespaceCurrent, m.current, lat, lon)
}

// GetForecast probes the forecast namespace for the coordinate.
func (m *Manager) GetForecast(lat, lon float64) (any, bool, error) {
	return m.lookup(NamespaceForecast, m.forecast, lat, lon)
}

// PutCurrent caches document under the current-weather TTL, replacing any
// prior entry for the coordinate's cell.
func (m *Manager) PutCurrent(lat, lon float64, document any) error {
	return m.write(m.current, lat, lon, document, m.settings.CurrentTTL)
}

// PutForecast caches document under the forecast-weather TTL.
func (m *Manager) PutForecast(lat, lon float64, document any) error {
	return m.write(m.forecast, lat, lon, document, m.settings.ForecastTTL)
}

func (m *Manager) lookup(ns Namespace, store *Store, lat, lon float64) (any, bool, error) {
	key, err := m.quantizer.Quantize(lat, lon)
	if err != nil {
		return nil, false, err
	}

	value, ok := store.Get(key)
	if ok {
		m.stats.RecordHit(ns)
	} else {
		m.stats.RecordMiss(ns)
	}
	return value, ok, nil
}

func (m *Manager) write(store *Store, lat, lon float64, document any, ttl time.Duration) error {
	key, err := m.quantizer.Quantize(lat, lon)
	if err != nil {
		return err
	}
	return store.Put(key, document, ttl)
}

// SweepExpired eagerly removes expired entries from both namespaces, credits
// the eviction counters, and returns the total removed. Lazy expiration in Get
// already guarantees read correctness; sweeping only bounds memory between
// accesses.
func (m *Manager) SweepExpired() int {
	now := m.clock.Now()

	removedCurrent := m.current.Sweep(now)
	m.stats.RecordEvictions(NamespaceCurrent, removedCurrent)

	removedForecast := m.forecast.Sweep(now)
	m.stats.RecordEvictions(NamespaceForecast, removedForecast)

	return removedCurrent + removedForecast
}

// Snapshot is a point-in-time view of cache performance, safe to serialize.
type Snapshot struct {
	Current  NamespaceStats `json:"current_weather"`
	Forecast NamespaceStats `json:"forecast_weather"`
	Total    NamespaceStats `json:"total"`
}

// Snapshot renders the current stats, sampling live sizes from the stores.
func (m *Manager) Snapshot() Snapshot {
	cur := m.stats.snapshot(NamespaceCurrent, m.current.Size())
	fc := m.stats.snapshot(NamespaceForecast, m.forecast.Size())

	total := NamespaceStats{
		Hits:      cur.Hits + fc.Hits,
		Misses:    cur.Misses + fc.Misses,
		Evictions: cur.Evictions + fc.Evictions,
		Size:      cur.Size + fc.Size,
	}
	if lookups := total.Hits + total.Misses; lookups > 0 {
		total.HitRate = float64(total.Hits) / float64(lookups)
	}

	return Snapshot{Current: cur, Forecast: fc, Total: total}
}
