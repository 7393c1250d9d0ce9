package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/config"
)

func newTestClient(srv *httptest.Server, attempts int) *Client {
	cfg := &config.AppConfig{
		GeocodeURL:     srv.URL + "/v1/search",
		WeatherURL:     srv.URL + "/v1/forecast",
		RequestTimeout: time.Second,
		RetryAttempts:  attempts,
		RetryDelay:     time.Millisecond,
	}
	return NewClient(srv.Client(), cfg)
}

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))

		fmt.Fprint(w, `{"results":[{"latitude":48.85,"longitude":2.35,"name":"Paris"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv, 1)
	coords, err := c.Geocode(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, 48.85, coords.Lat)
	assert.Equal(t, 2.35, coords.Lon)
	assert.Equal(t, "Paris", coords.Name)
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"generationtime_ms":0.5}`)
	}))
	defer srv.Close()

	c := newTestClient(srv, 1)
	_, err := c.Geocode(context.Background(), "Nowhereville")

	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGeocodeMissingCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"name":"Paris"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv, 1)
	_, err := c.Geocode(context.Background(), "Paris")

	assert.ErrorIs(t, err, ErrNoCoordinates)
}

func TestGeocodeNameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"latitude":1.5,"longitude":2.5}]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv, 1)
	coords, err := c.Geocode(context.Background(), "Springfield")

	require.NoError(t, err)
	assert.Equal(t, "Springfield", coords.Name)
}

func TestCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))

		// winddirection intentionally omitted
		fmt.Fprint(w, `{"current_weather":{"temperature":12.5,"windspeed":11.0,"weathercode":3,"time":"2024-06-01T12:00"}}`)
	}))
	defer srv.Close()

	c := newTestClient(srv, 1)
	reading, err := c.CurrentWeather(context.Background(), 48.85, 2.35)

	require.NoError(t, err)
	require.NotNil(t, reading.Temperature)
	assert.Equal(t, 12.5, *reading.Temperature)
	require.NotNil(t, reading.Windspeed)
	assert.Equal(t, 11.0, *reading.Windspeed)
	assert.Nil(t, reading.Winddirection)
	require.NotNil(t, reading.Weathercode)
	assert.Equal(t, 3, *reading.Weathercode)
	require.NotNil(t, reading.Timestamp)
	assert.Equal(t, "2024-06-01T12:00", *reading.Timestamp)
}

func TestCurrentWeatherMissingSection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latitude":48.85,"longitude":2.35}`)
	}))
	defer srv.Close()

	c := newTestClient(srv, 1)
	_, err := c.CurrentWeather(context.Background(), 48.85, 2.35)

	assert.ErrorIs(t, err, ErrNoCurrentWeather)
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"results":[{"latitude":1.0,"longitude":2.0,"name":"Oslo"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	coords, err := c.Geocode(context.Background(), "Oslo")

	require.NoError(t, err)
	assert.Equal(t, "Oslo", coords.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	_, err := c.Geocode(context.Background(), "Oslo")

	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(srv, 3)
	_, err := c.Geocode(ctx, "Oslo")

	assert.ErrorIs(t, err, context.Canceled)
}
