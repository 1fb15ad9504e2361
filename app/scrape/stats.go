package scrape

import (
	"sync"
	"time"
)

// ErrorThreshold is the error count above which a run is considered failed.
// The exit code feeds the external scheduler that flags bad runs.
const ErrorThreshold = 10

type VenueError struct {
	Venue   string
	URL     string
	Message string
}

type SourceStats struct {
	Processed int
	Found     int
}

// RunStats aggregates outcomes across a scrape run. Workers update it
// concurrently; it is never persisted.
type RunStats struct {
	mu sync.Mutex

	StartedAt  time.Time
	FinishedAt time.Time

	VenuesProcessed     int
	TournamentsFound    int
	TournamentsUpserted int
	Skipped             int
	Unresolved          int
	UpsertFailures      int
	Pruned              int64

	Errors   []VenueError
	BySource map[string]*SourceStats
}

func NewRunStats() *RunStats {
	return &RunStats{
		StartedAt: time.Now().UTC(),
		BySource:  make(map[string]*SourceStats),
	}
}

func (s *RunStats) VenueProcessed(source string, found int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.VenuesProcessed++
	s.TournamentsFound += found
	src, ok := s.BySource[source]
	if !ok {
		src = &SourceStats{}
		s.BySource[source] = src
	}
	src.Processed++
	src.Found += found
}

func (s *RunStats) VenueSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
}

func (s *RunStats) EntryUpserted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TournamentsUpserted++
}

func (s *RunStats) EntryUnresolved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Unresolved++
}

func (s *RunStats) UpsertFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpsertFailures++
}

func (s *RunStats) AddError(venue, url, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, VenueError{Venue: venue, URL: url, Message: message})
}

func (s *RunStats) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Errors)
}

func (s *RunStats) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FinishedAt = time.Now().UTC()
}

// Failed reports whether the run crossed the error threshold.
func (s *RunStats) Failed() bool {
	return s.ErrorCount() > ErrorThreshold
}

func (s *RunStats) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
