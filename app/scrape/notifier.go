package scrape

import (
	"log/slog"
	"time"
)

// Notifier receives run-level events. Injected rather than module-global so
// tests and one-shot runs can substitute a no-op.
type Notifier interface {
	VenueFailed(venueName, url string, err error)
	RunCompleted(stats *RunStats)
}

var _ Notifier = (*LogNotifier)(nil)
var _ Notifier = (*NoopNotifier)(nil)

// LogNotifier reports events through the structured logger.
type LogNotifier struct{}

func (LogNotifier) VenueFailed(venueName, url string, err error) {
	slog.Error("Venue scrape failed", "venue", venueName, "url", url, "error", err)
}

func (LogNotifier) RunCompleted(stats *RunStats) {
	slog.Info("Scrape run completed",
		"duration", stats.Duration().Round(time.Second).String(),
		"venues", stats.VenuesProcessed,
		"found", stats.TournamentsFound,
		"upserted", stats.TournamentsUpserted,
		"skipped", stats.Skipped,
		"unresolved", stats.Unresolved,
		"errors", stats.ErrorCount())

	for source, src := range stats.BySource {
		slog.Info("Source totals", "source", source, "processed", src.Processed, "found", src.Found)
	}

	for i, e := range stats.Errors {
		if i >= 10 {
			slog.Warn("Further errors omitted", "omitted", len(stats.Errors)-10)
			break
		}
		slog.Warn("Venue error", "venue", e.Venue, "url", e.URL, "error", e.Message)
	}
}

type NoopNotifier struct{}

func (NoopNotifier) VenueFailed(string, string, error) {}
func (NoopNotifier) RunCompleted(*RunStats)            {}
