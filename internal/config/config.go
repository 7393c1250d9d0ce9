package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	// Upstream endpoints.
	GeocodeURL string `validate:"required,url"`
	WeatherURL string `validate:"required,url"`

	// Per-request timeout for outbound HTTP calls.
	RequestTimeout time.Duration `validate:"min=1"`

	// Uniform retry policy: total attempts and fixed delay between them.
	RetryAttempts int           `validate:"min=1"`
	RetryDelay    time.Duration `validate:"min=0"`

	// Courtesy pause between cities.
	CityPause time.Duration `validate:"min=0"`

	// Default output filenames per format.
	JSONOutput string `validate:"required"`
	CSVOutput  string `validate:"required"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		GeocodeURL: getenvDefault("GEOCODE_API_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		WeatherURL: getenvDefault("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast"),
		JSONOutput: getenvDefault("JSON_OUTPUT", "weather_output.json"),
		CSVOutput:  getenvDefault("CSV_OUTPUT", "weather_output.csv"),
	}

	timeout, err := getenvDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	cfg.RetryAttempts = getenvInt("RETRY_ATTEMPTS", 3)

	delay, err := getenvDuration("RETRY_DELAY", 1500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	cfg.RetryDelay = delay

	pause, err := getenvDuration("CITY_PAUSE", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	cfg.CityPause = pause

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
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

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
