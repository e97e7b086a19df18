package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/harborops/port-weather-service/internal/cache"
	"github.com/harborops/port-weather-service/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		req, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var report *weather.Report
		if req.Forecast {
			report, err = service.ForecastReport(c.Context(), req.Lat, req.Lon)
		} else {
			report, err = service.CurrentReport(c.Context(), req.Lat, req.Lon)
		}
		if err != nil {
			if errors.Is(err, cache.ErrInvalidCoordinate) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
		}

		return c.JSON(report)
	})

	v1.Get("/weather/cache/stats", func(c *fiber.Ctx) error {
		settings := service.CacheSettings()
		return c.JSON(fiber.Map{
			"cache_stats": service.CacheSnapshot(),
			"config": fiber.Map{
				"current_weather_ttl_seconds":  settings.CurrentTTL.Seconds(),
				"forecast_weather_ttl_seconds": settings.ForecastTTL.Seconds(),
				"coordinate_precision":         settings.CoordPrecision,
				"cleanup_interval_seconds":     settings.CleanupInterval.Seconds(),
			},
		})
	})
}

// weatherQuery holds the parsed /weather query parameters.
type weatherQuery struct {
	Lat      float64 `validate:"latitude"`
	Lon      float64 `validate:"longitude"`
	Forecast bool
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	var q weatherQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("missing required parameters: lat and lon must be provided")
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return q, errors.New("invalid coordinates: lat and lon must be numeric values")
	}
	q.Lat = lat
	q.Lon = lon

	if err := validate.Struct(q); err != nil {
		return q, errors.New("invalid coordinates: latitude must be between -90 and 90, longitude between -180 and 180")
	}

	q.Forecast = forecastRequested(c.Query("forecast"))
	return q, nil
}

// forecastRequested interprets the forecast flag; forecast is the default.
func forecastRequested(s string) bool {
	switch strings.ToLower(s) {
	case "", "true", "t", "yes", "y", "1":
		return true
	default:
		return false
	}
}
