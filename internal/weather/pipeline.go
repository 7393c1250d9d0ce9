package weather

import (
	"context"
	"time"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/logger"
)

// Sink consumes a finished report: persisting it to the output file and
// rendering the console summary. Persistence failures are the sink's to
// report; they never fail the run.
type Sink interface {
	Persist(rep *Report)
	Summarize(rep *Report)
}

// Pipeline resolves city names to coordinates, fetches current weather per
// coordinate, and folds the results into a Report. Cities that fail at
// either stage are skipped; the rest of the run is unaffected.
type Pipeline struct {
	client *Client
	sink   Sink
	pause  time.Duration
}

// NewPipeline creates a Pipeline.
func NewPipeline(client *Client, sink Sink, pause time.Duration) *Pipeline {
	return &Pipeline{
		client: client,
		sink:   sink,
		pause:  pause,
	}
}

// Run processes the cities sequentially in input order, then persists and
// summarizes the aggregated report. The report is returned to the caller.
func (p *Pipeline) Run(ctx context.Context, cities []string) (*Report, error) {
	rep := NewReport()
	var temperatures []float64

	for i, city := range cities {
		logger.Infof("fetching data for %s...", city)

		coords, err := p.client.Geocode(ctx, city)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warnf("skipping %s due to geocoding issues", city)
		} else {
			reading, err := p.client.CurrentWeather(ctx, coords.Lat, coords.Lon)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				logger.Warnf("no weather data available for %s", city)
			} else {
				rep.Add(coords.Name, Entry{
					Temperature:   reading.Temperature,
					Windspeed:     reading.Windspeed,
					Winddirection: reading.Winddirection,
					Timestamp:     reading.Timestamp,
				})
				if reading.Temperature != nil {
					temperatures = append(temperatures, *reading.Temperature)
				}
			}
		}

		// Courtesy pause toward the upstream services, regardless of outcome.
		if i < len(cities)-1 && p.pause > 0 {
			timer := time.NewTimer(p.pause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	rep.SetStats(ComputeStats(temperatures))

	p.sink.Persist(rep)
	p.sink.Summarize(rep)

	return rep, nil
}
