package store

import (
	"errors"
	"sync"
	"time"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/weather"
)

var (
	// ErrNotFound is returned before the first pipeline run has completed.
	ErrNotFound = errors.New("no report available yet")
)

// RunRecord is one completed pipeline run: when it finished, how many
// cities it reported, and the temperature statistics.
type RunRecord struct {
	CompletedAt time.Time     `json:"completedAt"`
	Cities      int           `json:"cities"`
	Stats       weather.Stats `json:"stats"`
}

// ReportStore is a concurrency-safe holder for the latest report and a
// bounded history of run records. It backs the serve mode, where the
// scheduler writes and HTTP handlers read.
type ReportStore struct {
	mu sync.RWMutex

	latest  *weather.Report
	history []RunRecord

	// max number of run records to retain (<= 0 means unlimited)
	maxHistory int
}

// NewReportStore creates a ReportStore retaining up to maxHistory run records.
func NewReportStore(maxHistory int) *ReportStore {
	return &ReportStore{maxHistory: maxHistory}
}

// Save replaces the latest report and appends a run record, enforcing the
// retention limit.
func (s *ReportStore) Save(rep *weather.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = rep
	s.history = append(s.history, RunRecord{
		CompletedAt: time.Now().UTC(),
		Cities:      rep.Len(),
		Stats:       rep.Stats(),
	})

	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		over := len(s.history) - s.maxHistory
		s.history = s.history[over:]
	}
}

// Latest returns the most recent report.
func (s *ReportStore) Latest() (*weather.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return nil, ErrNotFound
	}
	return s.latest, nil
}

// History returns the retained run records, oldest first.
func (s *ReportStore) History() []RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RunRecord, len(s.history))
	copy(out, s.history)
	return out
}
