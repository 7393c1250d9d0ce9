package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/config"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/logger"
)

var (
	// ErrNoResults means the geocoder returned an empty result set.
	ErrNoResults = errors.New("no geocoding results")
	// ErrNoCoordinates means the first geocoding result lacks a coordinate pair.
	ErrNoCoordinates = errors.New("geocoding result has no coordinates")
	// ErrNoCurrentWeather means the forecast response lacks the current_weather section.
	ErrNoCurrentWeather = errors.New("no current weather section")
)

// Client talks to the Open-Meteo geocoding and forecast APIs.
type Client struct {
	geocodeURL string
	weatherURL string
	fetchCfg   FetchConfig
	geoCB      *gobreaker.CircuitBreaker
	wxCB       *gobreaker.CircuitBreaker
}

// NewClient creates a Client using the shared HTTP client and the
// configured endpoints and retry policy.
func NewClient(httpClient *http.Client, cfg *config.AppConfig) *Client {
	return &Client{
		geocodeURL: cfg.GeocodeURL,
		weatherURL: cfg.WeatherURL,
		fetchCfg: FetchConfig{
			Client:   httpClient,
			Attempts: cfg.RetryAttempts,
			Delay:    cfg.RetryDelay,
		},
		geoCB: newBreaker("geocode"),
		wxCB:  newBreaker("weather"),
	}
}

// Geocode resolves a city name to coordinates. The resolved name falls back
// to the query string when the upstream omits it.
func (c *Client) Geocode(ctx context.Context, city string) (*Coordinates, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")

	var payload struct {
		Results []struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
			Name      string   `json:"name"`
		} `json:"results"`
	}

	if err := fetchJSON(ctx, c.fetchCfg, c.geoCB, c.geocodeURL, params, &payload); err != nil {
		return nil, err
	}

	if len(payload.Results) == 0 {
		logger.Warnf("geocoding data not found for %q", city)
		return nil, ErrNoResults
	}

	first := payload.Results[0]
	if first.Latitude == nil || first.Longitude == nil {
		logger.Warnf("incomplete geocoding data for city %q", city)
		return nil, ErrNoCoordinates
	}

	name := first.Name
	if name == "" {
		name = city
	}

	return &Coordinates{
		Lat:  *first.Latitude,
		Lon:  *first.Longitude,
		Name: name,
	}, nil
}

// CurrentWeather fetches current conditions for a coordinate pair. Field
// values pass through verbatim; missing sub-fields stay nil.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*Reading, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current_weather", "true")

	var payload struct {
		CurrentWeather *struct {
			Temperature   *float64 `json:"temperature"`
			Windspeed     *float64 `json:"windspeed"`
			Winddirection *float64 `json:"winddirection"`
			Weathercode   *int     `json:"weathercode"`
			Time          *string  `json:"time"`
		} `json:"current_weather"`
	}

	if err := fetchJSON(ctx, c.fetchCfg, c.wxCB, c.weatherURL, params, &payload); err != nil {
		return nil, err
	}

	if payload.CurrentWeather == nil {
		logger.Warnf("no current weather data found for coordinates %f, %f", lat, lon)
		return nil, ErrNoCurrentWeather
	}

	cw := payload.CurrentWeather
	return &Reading{
		Temperature:   cw.Temperature,
		Windspeed:     cw.Windspeed,
		Winddirection: cw.Winddirection,
		Weathercode:   cw.Weathercode,
		Timestamp:     cw.Time,
	}, nil
}
