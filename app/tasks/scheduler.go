package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Smarter-Poker/tournament-scraper/app/cfg"
	"github.com/Smarter-Poker/tournament-scraper/app/scrape"
)

var _ SchedulerInterface = (*Scheduler)(nil)

type SchedulerInterface interface {
	Start()
	Stop()
	EnqueueRescrape(venueID string) error
	LastRun() *scrape.RunStats
}

// Scheduler drives scrape runs in daemon mode: a full run on startup and on
// every tick, plus on-demand single-venue rescrapes from the API. Runs and
// rescrapes execute sequentially on one goroutine so a tick can never overlap
// a run already in progress.
type Scheduler struct {
	runner        *scrape.Runner
	interval      time.Duration
	prune         bool
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	rescrapeQueue chan string

	mu      sync.Mutex
	lastRun *scrape.RunStats
}

func NewScheduler(runner *scrape.Runner) SchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		runner:        runner,
		interval:      time.Duration(cfg.SchedulerInterval) * time.Second,
		prune:         cfg.Prune,
		ctx:           ctx,
		cancel:        cancel,
		rescrapeQueue: make(chan string, 100),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runAll()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runAll()
			case venueID := <-s.rescrapeQueue:
				s.runOne(venueID)
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// EnqueueRescrape queues a single venue for an immediate out-of-cycle scrape.
func (s *Scheduler) EnqueueRescrape(venueID string) error {
	select {
	case s.rescrapeQueue <- venueID:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("rescrape queue is full")
	}
}

// LastRun returns the stats of the most recent completed full run, or nil
// before the first run finishes.
func (s *Scheduler) LastRun() *scrape.RunStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *Scheduler) runAll() {
	slog.Info("Scheduled scrape run starting")

	stats, err := s.runner.Run(s.ctx, scrape.RunOptions{Prune: s.prune})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Scheduled scrape run failed", "error", err)
	}
	if stats == nil {
		return
	}

	s.mu.Lock()
	s.lastRun = stats
	s.mu.Unlock()
}

func (s *Scheduler) runOne(venueID string) {
	stats, err := s.runner.ScrapeVenueByID(s.ctx, venueID)
	if err != nil {
		slog.Error("On-demand rescrape failed", "venue_id", venueID, "error", err)
		return
	}

	slog.Info("On-demand rescrape completed", "venue_id", venueID,
		"found", stats.TournamentsFound, "upserted", stats.TournamentsUpserted, "errors", stats.ErrorCount())
}
