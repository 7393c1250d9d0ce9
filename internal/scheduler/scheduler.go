package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/logger"
)

// Scheduler re-runs the fetch pipeline on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	job       func()
}

// New creates a new Scheduler around the given job.
func New(interval time.Duration, job func()) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		job:       job,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first scheduled run happens one interval after Start; callers wanting
// an immediate run invoke the job themselves first.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		logger.Info("scheduler: running weather fetch job")
		s.job()
		logger.Info("scheduler: completed weather fetch job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
