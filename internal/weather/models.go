package weather

// Coordinates echoes the requested point back in responses.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Units documents the measurement units used throughout a report.
type Units struct {
	Temperature   string `json:"temperature"`
	Humidity      string `json:"humidity"`
	Precipitation string `json:"precipitation"`
	WindSpeed     string `json:"wind_speed"`
	WindDirection string `json:"wind_direction"`
	Visibility    string `json:"visibility"`
	WaveHeight    string `json:"wave_height"`
}

func reportUnits() Units {
	return Units{
		Temperature:   "°C",
		Humidity:      "%",
		Precipitation: "mm",
		WindSpeed:     "knots",
		WindDirection: "degrees",
		Visibility:    "meters",
		WaveHeight:    "meters",
	}
}

// Observation is one set of conditions: the current reading, or a single
// forecast hour.
type Observation struct {
	Timestamp          string  `json:"timestamp"`
	Temperature        float64 `json:"temperature"`
	Humidity           float64 `json:"humidity"`
	Precipitation      float64 `json:"precipitation"`
	WeatherCode        int     `json:"weather_code"`
	WeatherDescription string  `json:"weather_description"`
	WeatherSimple      string  `json:"weather_simple"`
	WindSpeed          float64 `json:"wind_speed"`
	WindDirection      float64 `json:"wind_direction"`
	Visibility         float64 `json:"visibility"`
	WaveHeight         float64 `json:"wave_height"`
}

// Cache status markers surfaced to clients for monitoring.
const (
	CacheStatusMiss        = "miss"
	CacheStatusHitCurrent  = "hit_current"
	CacheStatusHitForecast = "hit_forecast"
)

// Report is the document served to clients and stored in the cache.
// CacheStatus describes how this particular response was produced; the cached
// copy always carries "miss".
type Report struct {
	Coordinates   Coordinates   `json:"coordinates"`
	Units         Units         `json:"units"`
	CacheStatus   string        `json:"cache_status"`
	Current       *Observation  `json:"current,omitempty"`
	Forecast      []Observation `json:"forecast,omitempty"`
	ForecastHours int           `json:"forecast_hours,omitempty"`
}

// weatherCodeDescriptions maps WMO weather interpretation codes to text.
var weatherCodeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Heavy drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// weatherCodeSimple maps the same codes to layman terms.
var weatherCodeSimple = map[int]string{
	0:  "clear",
	1:  "clear",
	2:  "partly cloudy",
	3:  "cloudy",
	45: "foggy",
	48: "foggy",
	51: "light rain",
	53: "light rain",
	55: "rain",
	56: "freezing rain",
	57: "freezing rain",
	61: "light rain",
	63: "rain",
	65: "heavy rain",
	66: "freezing rain",
	67: "freezing rain",
	71: "light snow",
	73: "snow",
	75: "heavy snow",
	77: "snow",
	80: "rain showers",
	81: "rain showers",
	82: "heavy rain showers",
	85: "snow showers",
	86: "snow showers",
	95: "thunderstorm",
	96: "thunderstorm with hail",
	99: "thunderstorm with hail",
}

// DescribeWeatherCode returns the long and simplified descriptions for a WMO
// weather code. Unknown codes yield "Unknown"/"unknown".
func DescribeWeatherCode(code int) (description, simple string) {
	description, ok := weatherCodeDescriptions[code]
	if !ok {
		description = "Unknown"
	}
	simple, ok = weatherCodeSimple[code]
	if !ok {
		simple = "unknown"
	}
	return description, simple
}
