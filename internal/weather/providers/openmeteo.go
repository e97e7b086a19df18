package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/harborops/port-weather-service/internal/weather"
	"github.com/sony/gobreaker"
)

// forecastDays covers 48h of hourly data plus the remainder of the current day.
const forecastDays = 3

var hourlyVariables = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"precipitation",
	"weather_code",
	"wind_speed_10m",
	"wind_direction_10m",
	"visibility",
}

// OpenMeteo implements weather.Provider against the Open-Meteo forecast API,
// merging wave height from the companion marine API. Neither endpoint needs an
// API key. Each upstream gets its own circuit breaker so a marine outage does
// not open the forecast circuit.
type OpenMeteo struct {
	weatherURL string
	marineURL  string
	httpCfg    HTTPClientConfig
	weatherCB  *gobreaker.CircuitBreaker
	marineCB   *gobreaker.CircuitBreaker
}

// NewOpenMeteo creates a provider using the public Open-Meteo endpoints.
func NewOpenMeteo(client *http.Client) *OpenMeteo {
	return &OpenMeteo{
		weatherURL: "https://api.open-meteo.com/v1/forecast",
		marineURL:  "https://marine-api.open-meteo.com/v1/marine",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		weatherCB: newBreaker("openmeteo-forecast"),
		marineCB:  newBreaker("openmeteo-marine"),
	}
}

// baseQuery holds the parameters shared by every Open-Meteo request.
func baseQuery(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("timezone", "GMT")
	return values
}

func (p *OpenMeteo) fetchJSON(ctx context.Context, cb *gobreaker.CircuitBreaker, endpoint string, values url.Values, out any) error {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", endpoint, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, cb, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

// Current fetches the present conditions at the coordinate.
func (p *OpenMeteo) Current(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	values := baseQuery(lat, lon)
	values.Set("temperature_unit", "celsius")
	values.Set("windspeed_unit", "kn")
	values.Set("current", strings.Join(hourlyVariables, ","))

	var payload struct {
		Current struct {
			Time          string  `json:"time"`
			Temperature   float64 `json:"temperature_2m"`
			Humidity      float64 `json:"relative_humidity_2m"`
			Precipitation float64 `json:"precipitation"`
			WeatherCode   int     `json:"weather_code"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			WindDirection float64 `json:"wind_direction_10m"`
			Visibility    float64 `json:"visibility"`
		} `json:"current"`
	}
	if err := p.fetchJSON(ctx, p.weatherCB, p.weatherURL, values, &payload); err != nil {
		return nil, fmt.Errorf("openmeteo current: %w", err)
	}

	marineValues := baseQuery(lat, lon)
	marineValues.Set("current", "wave_height")

	var marine struct {
		Current struct {
			WaveHeight float64 `json:"wave_height"`
		} `json:"current"`
	}
	if err := p.fetchJSON(ctx, p.marineCB, p.marineURL, marineValues, &marine); err != nil {
		return nil, fmt.Errorf("openmeteo marine current: %w", err)
	}

	description, simple := weather.DescribeWeatherCode(payload.Current.WeatherCode)

	return &weather.Observation{
		Timestamp:          payload.Current.Time,
		Temperature:        payload.Current.Temperature,
		Humidity:           payload.Current.Humidity,
		Precipitation:      payload.Current.Precipitation,
		WeatherCode:        payload.Current.WeatherCode,
		WeatherDescription: description,
		WeatherSimple:      simple,
		WindSpeed:          payload.Current.WindSpeed,
		WindDirection:      payload.Current.WindDirection,
		Visibility:         payload.Current.Visibility,
		WaveHeight:         marine.Current.WaveHeight,
	}, nil
}

// Forecast fetches the hourly forecast at the coordinate.
func (p *OpenMeteo) Forecast(ctx context.Context, lat, lon float64) ([]weather.Observation, error) {
	values := baseQuery(lat, lon)
	values.Set("temperature_unit", "celsius")
	values.Set("windspeed_unit", "kn")
	values.Set("forecast_days", strconv.Itoa(forecastDays))
	values.Set("hourly", strings.Join(hourlyVariables, ","))

	var payload struct {
		Hourly struct {
			Time          []string  `json:"time"`
			Temperature   []float64 `json:"temperature_2m"`
			Humidity      []float64 `json:"relative_humidity_2m"`
			Precipitation []float64 `json:"precipitation"`
			WeatherCode   []int     `json:"weather_code"`
			WindSpeed     []float64 `json:"wind_speed_10m"`
			WindDirection []float64 `json:"wind_direction_10m"`
			Visibility    []float64 `json:"visibility"`
		} `json:"hourly"`
	}
	if err := p.fetchJSON(ctx, p.weatherCB, p.weatherURL, values, &payload); err != nil {
		return nil, fmt.Errorf("openmeteo forecast: %w", err)
	}

	marineValues := baseQuery(lat, lon)
	marineValues.Set("forecast_days", strconv.Itoa(forecastDays))
	marineValues.Set("hourly", "wave_height")

	var marine struct {
		Hourly struct {
			WaveHeight []float64 `json:"wave_height"`
		} `json:"hourly"`
	}
	if err := p.fetchJSON(ctx, p.marineCB, p.marineURL, marineValues, &marine); err != nil {
		return nil, fmt.Errorf("openmeteo marine forecast: %w", err)
	}

	hours := make([]weather.Observation, 0, len(payload.Hourly.Time))
	for i, ts := range payload.Hourly.Time {
		obs := weather.Observation{Timestamp: ts}

		if i < len(payload.Hourly.Temperature) {
			obs.Temperature = payload.Hourly.Temperature[i]
		}
		if i < len(payload.Hourly.Humidity) {
			obs.Humidity = payload.Hourly.Humidity[i]
		}
		if i < len(payload.Hourly.Precipitation) {
			obs.Precipitation = payload.Hourly.Precipitation[i]
		}
		if i < len(payload.Hourly.WeatherCode) {
			obs.WeatherCode = payload.Hourly.WeatherCode[i]
		}
		if i < len(payload.Hourly.WindSpeed) {
			obs.WindSpeed = payload.Hourly.WindSpeed[i]
		}
		if i < len(payload.Hourly.WindDirection) {
			obs.WindDirection = payload.Hourly.WindDirection[i]
		}
		if i < len(payload.Hourly.Visibility) {
			obs.Visibility = payload.Hourly.Visibility[i]
		}
		if i < len(marine.Hourly.WaveHeight) {
			obs.WaveHeight = marine.Hourly.WaveHeight[i]
		}

		obs.WeatherDescription, obs.WeatherSimple = weather.DescribeWeatherCode(obs.WeatherCode)
		hours = append(hours, obs)
	}

	return hours, nil
}
