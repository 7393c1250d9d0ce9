package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/logger"
)

// FetchConfig bundles the HTTP client with the uniform retry policy:
// a total attempt count and a fixed delay between attempts. Any failure
// (transport error, timeout, non-2xx status, undecodable body) is retried
// the same way; error kinds are deliberately not distinguished.
type FetchConfig struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: 1 * time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// High threshold: a run full of per-city retry exhaustion must
			// not trip the breaker and change the skip behavior of later
			// cities. The breaker guards against a hard upstream outage in
			// long-running watch mode.
			return counts.ConsecutiveFailures > 32
		},
	})
}

// fetchJSON issues a GET against endpoint with the given query parameters
// and decodes the JSON body into out. Failed attempts are logged; on
// exhaustion the last error is returned.
func fetchJSON(ctx context.Context, cfg FetchConfig, cb *gobreaker.CircuitBreaker, endpoint string, params url.Values, out interface{}) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}

		_, err = cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
			}

			if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
				return nil, fmt.Errorf("decode response: %w", decErr)
			}
			return nil, nil
		})
		if err == nil {
			return nil
		}

		lastErr = err
		if attempt < cfg.Attempts {
			logger.Infof("request failed (attempt %d): %v; retrying", attempt, err)

			timer := time.NewTimer(cfg.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		} else {
			logger.Errorf("failed after %d attempts: %v", attempt, err)
		}
	}

	return lastErr
}
