package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/harborops/port-weather-service/internal/cache"
	"github.com/harborops/port-weather-service/internal/weather"
)

// stubProvider returns fixed observations so handler tests never go online.
type stubProvider struct{}

func (stubProvider) Current(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	return &weather.Observation{Timestamp: "2026-08-30T12:00", Temperature: 21.5}, nil
}

func (stubProvider) Forecast(ctx context.Context, lat, lon float64) ([]weather.Observation, error) {
	return []weather.Observation{{Timestamp: "2026-08-30T12:00", Temperature: 21.5}}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()

	manager, err := cache.NewManager(cache.Settings{
		CurrentTTL:      30 * time.Minute,
		ForecastTTL:     6 * time.Hour,
		CoordPrecision:  3,
		CleanupInterval: 10 * time.Minute,
	}, nil)
	if err != nil {
		t.Fatalf("failed to build cache manager: %v", err)
	}

	svc := weather.NewService(manager, stubProvider{})
	RegisterRoutes(app, svc)
	return app
}

// TestWeatherCoordinateValidation verifies that the weather endpoint rejects
// missing, non-numeric and out-of-range coordinates with 400.
func TestWeatherCoordinateValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []string{
		"/api/v1/weather",
		"/api/v1/weather?lat=40.7",
		"/api/v1/weather?lat=abc&lon=-74.0",
		"/api/v1/weather?lat=40.7&lon=def",
		"/api/v1/weather?lat=91&lon=0",
		"/api/v1/weather?lat=0&lon=-181",
	}
	for _, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", target, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

// TestWeatherCacheStatusProgression verifies the miss-then-hit flow exposed
// through the cache_status field.
func TestWeatherCacheStatusProgression(t *testing.T) {
	app := newTestApp(t)

	fetch := func(target string) weather.Report {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		defer resp.Body.Close()

		var report weather.Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return report
	}

	// Forecast is the default; first request misses, second hits.
	first := fetch("/api/v1/weather?lat=40.71279&lon=-74.00599")
	if first.CacheStatus != weather.CacheStatusMiss {
		t.Fatalf("expected cache_status %q, got %q", weather.CacheStatusMiss, first.CacheStatus)
	}

	second := fetch("/api/v1/weather?lat=40.71281&lon=-74.00601")
	if second.CacheStatus != weather.CacheStatusHitForecast {
		t.Fatalf("expected cache_status %q, got %q", weather.CacheStatusHitForecast, second.CacheStatus)
	}

	// Current weather is a separate namespace with its own miss.
	current := fetch("/api/v1/weather?lat=40.71279&lon=-74.00599&forecast=false")
	if current.CacheStatus != weather.CacheStatusMiss {
		t.Fatalf("expected cache_status %q, got %q", weather.CacheStatusMiss, current.CacheStatus)
	}

	currentAgain := fetch("/api/v1/weather?lat=40.71279&lon=-74.00599&forecast=false")
	if currentAgain.CacheStatus != weather.CacheStatusHitCurrent {
		t.Fatalf("expected cache_status %q, got %q", weather.CacheStatusHitCurrent, currentAgain.CacheStatus)
	}
}

// TestCacheStatsEndpoint verifies the diagnostics payload shape.
func TestCacheStatsEndpoint(t *testing.T) {
	app := newTestApp(t)

	// One miss and one hit to make the counters non-trivial.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?lat=40.7&lon=-74.0", nil)
		if _, err := app.Test(req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/cache/stats", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	defer resp.Body.Close()

	var payload struct {
		CacheStats cache.Snapshot `json:"cache_stats"`
		Config     struct {
			CurrentTTLSeconds  float64 `json:"current_weather_ttl_seconds"`
			ForecastTTLSeconds float64 `json:"forecast_weather_ttl_seconds"`
			CoordPrecision     int     `json:"coordinate_precision"`
			CleanupSeconds     float64 `json:"cleanup_interval_seconds"`
		} `json:"config"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if payload.CacheStats.Forecast.Hits != 1 || payload.CacheStats.Forecast.Misses != 1 {
		t.Fatalf("unexpected forecast stats: %+v", payload.CacheStats.Forecast)
	}
	if payload.CacheStats.Forecast.HitRate != 0.5 {
		t.Fatalf("expected hit_rate 0.5, got %v", payload.CacheStats.Forecast.HitRate)
	}
	if payload.Config.CurrentTTLSeconds != 1800 {
		t.Fatalf("expected current ttl 1800s, got %v", payload.Config.CurrentTTLSeconds)
	}
	if payload.Config.ForecastTTLSeconds != 21600 {
		t.Fatalf("expected forecast ttl 21600s, got %v", payload.Config.ForecastTTLSeconds)
	}
	if payload.Config.CoordPrecision != 3 {
		t.Fatalf("expected precision 3, got %d", payload.Config.CoordPrecision)
	}
	if payload.Config.CleanupSeconds != 600 {
		t.Fatalf("expected cleanup interval 600s, got %v", payload.Config.CleanupSeconds)
	}
}
