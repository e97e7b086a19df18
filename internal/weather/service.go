package weather

import (
	"context"
	"fmt"

	"github.com/harborops/port-weather-service/internal/cache"
)

// Provider abstracts the upstream weather source (Open-Meteo in production).
type Provider interface {
	Current(ctx context.Context, lat, lon float64) (*Observation, error)
	Forecast(ctx context.Context, lat, lon float64) ([]Observation, error)
}

// Service fronts the provider with the coordinate cache. Outbound fetches
// happen only on a cache miss; hits are served from the cache with the
// namespace's hit marker.
type Service struct {
	cache    *cache.Manager
	provider Provider
}

// NewService creates a Service over the given cache and provider.
func NewService(cacheManager *cache.Manager, provider Provider) *Service {
	return &Service{
		cache:    cacheManager,
		provider: provider,
	}
}

// CurrentReport serves current conditions for the coordinate, cache first.
func (s *Service) CurrentReport(ctx context.Context, lat, lon float64) (*Report, error) {
	cached, ok, err := s.cache.GetCurrent(lat, lon)
	if err != nil {
		return nil, err
	}
	if ok {
		if report, ok := fromCache(cached, CacheStatusHitCurrent); ok {
			return report, nil
		}
	}

	observation, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("fetch current weather: %w", err)
	}

	report := &Report{
		Coordinates: Coordinates{Latitude: lat, Longitude: lon},
		Units:       reportUnits(),
		CacheStatus: CacheStatusMiss,
		Current:     observation,
	}
	if err := s.cache.PutCurrent(lat, lon, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ForecastReport serves the hourly forecast for the coordinate, cache first.
func (s *Service) ForecastReport(ctx context.Context, lat, lon float64) (*Report, error) {
	cached, ok, err := s.cache.GetForecast(lat, lon)
	if err != nil {
		return nil, err
	}
	if ok {
		if report, ok := fromCache(cached, CacheStatusHitForecast); ok {
			return report, nil
		}
	}

	hours, err := s.provider.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("fetch weather forecast: %w", err)
	}

	report := &Report{
		Coordinates:   Coordinates{Latitude: lat, Longitude: lon},
		Units:         reportUnits(),
		CacheStatus:   CacheStatusMiss,
		Forecast:      hours,
		ForecastHours: len(hours),
	}
	if err := s.cache.PutForecast(lat, lon, report); err != nil {
		return nil, err
	}
	return report, nil
}

// CacheSnapshot exposes cache performance counters for the stats endpoint.
func (s *Service) CacheSnapshot() cache.Snapshot { return s.cache.Snapshot() }

// CacheSettings exposes the resolved cache configuration for the stats endpoint.
func (s *Service) CacheSettings() cache.Settings { return s.cache.Settings() }

// fromCache shallow-copies a cached report and marks how it was served, so the
// stored document itself is never mutated by response decoration.
func fromCache(cached any, status string) (*Report, bool) {
	report, ok := cached.(*Report)
	if !ok || report == nil {
		return nil, false
	}
	out := *report
	out.CacheStatus = status
	return &out, true
}
