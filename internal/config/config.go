package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/harborops/port-weather-service/internal/cache"
)

// AppConfig is the resolved process configuration, read once at startup.
type AppConfig struct {
	// Cache carries the TTLs, coordinate precision and cleanup interval.
	Cache cache.Settings

	// HTTPTimeout bounds outbound calls to the weather provider.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	currentTTL, err := getenvDuration("CURRENT_WEATHER_TTL", "30m")
	if err != nil {
		return nil, err
	}
	forecastTTL, err := getenvDuration("FORECAST_WEATHER_TTL", "6h")
	if err != nil {
		return nil, err
	}
	cleanupInterval, err := getenvDuration("CLEANUP_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}
	httpTimeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Cache: cache.Settings{
			CurrentTTL:      currentTTL,
			ForecastTTL:     forecastTTL,
			CoordPrecision:  getenvInt("COORD_PRECISION", 3),
			CleanupInterval: cleanupInterval,
		},
		HTTPTimeout: httpTimeout,
		Port:        getenvDefault("PORT", "8080"),
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
