package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Smarter-Poker/tournament-scraper/app/browser"
	"github.com/Smarter-Poker/tournament-scraper/app/cfg"
	"github.com/Smarter-Poker/tournament-scraper/app/database"
	"github.com/Smarter-Poker/tournament-scraper/app/fetch"
	"github.com/Smarter-Poker/tournament-scraper/app/schedule"
	"github.com/Smarter-Poker/tournament-scraper/app/venue"
)

// A venue scraped within the cooldown is skipped unless the run is forced.
const scrapeCooldown = 24 * time.Hour

// Entries not seen within the grace window are deactivated by the prune pass.
// A single empty or failed scrape may be a transient site issue, so the
// window is deliberately wide.
const staleGrace = 14 * 24 * time.Hour

// Direct venue websites keep their schedule under a handful of common paths.
var pathProbes = []string{"", "/poker", "/poker/tournaments", "/tournaments", "/poker-room"}

var ErrVenueNotFound = errors.New("venue not found")

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Renderer is the alternate fetch path for JS-rendered or Cloudflare-fronted
// targets. Nil disables the fallback.
type Renderer interface {
	FetchHTML(ctx context.Context, url string, timeout time.Duration) (string, error)
}

type RunOptions struct {
	State  string
	Venue  string
	Source string
	Limit  int
	Force  bool
	Prune  bool
}

// Runner iterates a batch of venues through the fetch, parse, resolve and
// upsert pipeline with a bounded worker pool. One venue's failure never
// aborts the run.
type Runner struct {
	venues         database.VenueRepository
	tournaments    database.TournamentRepository
	resolver       *venue.Resolver
	fetcher        Fetcher
	renderer       Renderer
	sources        *venue.SourceList
	notifier       Notifier
	limiter        *HostLimiter
	workerCount    int
	requestTimeout time.Duration
}

func NewRunner(venues database.VenueRepository, tournaments database.TournamentRepository,
	resolver *venue.Resolver, fetcher Fetcher, renderer Renderer,
	sources *venue.SourceList, notifier Notifier) *Runner {
	c := cfg.Get()

	return &Runner{
		venues:         venues,
		tournaments:    tournaments,
		resolver:       resolver,
		fetcher:        fetcher,
		renderer:       renderer,
		sources:        sources,
		notifier:       notifier,
		limiter:        NewHostLimiter(time.Duration(c.HostInterval) * time.Second),
		workerCount:    c.WorkerCount,
		requestTimeout: time.Duration(c.RequestTimeout) * time.Second,
	}
}

func (r *Runner) Run(ctx context.Context, opts RunOptions) (*RunStats, error) {
	stats := NewRunStats()

	filter := database.VenueFilter{
		State:        opts.State,
		NameContains: opts.Venue,
		Source:       opts.Source,
	}
	if !opts.Force {
		filter.ScrapedBefore = time.Now().UTC().Add(-scrapeCooldown)
	}

	venues, err := r.venues.GetVenuesForScrape(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to select venues: %w", err)
	}

	if r.sources.Len() > 0 {
		before := len(venues)
		venues = r.sources.Filter(venues, r.venues)
		slog.Info("Filtered to confirmed tournament venues", "before", before, "after", len(venues))
	}

	// The limit applies after source-of-truth filtering so --limit N always
	// yields N scrapeable venues.
	if opts.Limit > 0 && len(venues) > opts.Limit {
		venues = venues[:opts.Limit]
	}

	slog.Info("Starting scrape run", "venues", len(venues), "workers", r.workerCount)

	jobs := make(chan database.Venue)
	var wg sync.WaitGroup

	for i := 0; i < r.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for v := range jobs {
				if ctx.Err() != nil {
					continue
				}
				slog.Debug("Scraping venue", "worker", workerID, "venue", v.Name, "city", v.City, "state", v.State)
				r.scrapeVenue(ctx, v, stats)
			}
		}(i)
	}

dispatch:
	for _, v := range venues {
		select {
		case jobs <- v:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if opts.Prune && !stats.Failed() {
		pruned, err := r.tournaments.DeactivateStale(staleGrace)
		if err != nil {
			slog.Error("Failed to prune stale tournaments", "error", err)
		} else {
			stats.Pruned = pruned
			slog.Info("Stale tournaments deactivated", "count", pruned, "grace", staleGrace.String())
		}
	}

	stats.Finish()
	r.notifier.RunCompleted(stats)

	return stats, ctx.Err()
}

// ScrapeVenueByID runs the pipeline for a single venue, bypassing the
// cooldown and source-of-truth filters. Used by on-demand rescrape requests.
func (r *Runner) ScrapeVenueByID(ctx context.Context, venueID string) (*RunStats, error) {
	v, err := r.venues.GetVenueByID(venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue %s: %w", venueID, err)
	}
	if v == nil {
		return nil, ErrVenueNotFound
	}

	stats := NewRunStats()
	r.scrapeVenue(ctx, *v, stats)
	stats.Finish()

	return stats, nil
}

func (r *Runner) scrapeVenue(ctx context.Context, v database.Venue, stats *RunStats) {
	if v.ScrapeSource == "" || v.ScrapeSource == "manual" {
		slog.Debug("Venue has no scrape source, skipping", "venue", v.Name)
		stats.VenueSkipped()
		return
	}

	entries, sourceURL, err := r.collect(ctx, v)
	if err != nil {
		stats.AddError(v.Name, sourceURL, err.Error())
		r.notifier.VenueFailed(v.Name, sourceURL, err)
		r.updateStatus(v, database.VenueStatusError)
		return
	}

	stats.VenueProcessed(v.ScrapeSource, len(entries))

	if len(entries) == 0 {
		slog.Info("No schedule found", "venue", v.Name, "url", sourceURL)
		r.updateStatus(v, database.VenueStatusNoData)
		return
	}

	r.persistEntries(v, entries, sourceURL, stats)
	slog.Info("Venue scraped", "venue", v.Name, "url", sourceURL, "found", len(entries))
	r.updateStatus(v, database.VenueStatusComplete)
}

func (r *Runner) collect(ctx context.Context, v database.Venue) ([]schedule.Entry, string, error) {
	parser := schedule.ForSource(v.ScrapeSource)

	switch v.ScrapeSource {
	case "direct_website":
		return r.collectWebsite(ctx, v, parser)
	case "cardplayer":
		return r.collectListing(ctx, v, parser)
	default:
		return r.collectPokerAtlas(ctx, v, parser)
	}
}

// collectListing fetches an aggregate listing page whose rows name the venue
// hosting each event. The configured URL is used as-is.
func (r *Runner) collectListing(ctx context.Context, v database.Venue, parser schedule.SourceParser) ([]schedule.Entry, string, error) {
	url := v.ScrapeURL
	if url == "" {
		return nil, "", fmt.Errorf("venue %s has no scrape URL", v.Name)
	}

	html, err := r.fetchPage(ctx, url)
	if err != nil {
		return nil, url, err
	}

	return parser.Parse(html, v.Name), url, nil
}

func (r *Runner) collectPokerAtlas(ctx context.Context, v database.Venue, parser schedule.SourceParser) ([]schedule.Entry, string, error) {
	url := v.PokerAtlasURL
	if url == "" {
		url = v.ScrapeURL
	}
	if url == "" {
		return nil, "", fmt.Errorf("venue %s has no scrape URL", v.Name)
	}
	url = ensureTournamentsPath(url)

	html, err := r.fetchPage(ctx, url)
	if err != nil {
		return nil, url, err
	}

	return parser.Parse(html, v.Name), url, nil
}

// collectWebsite probes the common schedule paths on a venue's own site until
// one yields entries. A venue is only failed when every probe failed; a
// reachable site with no recognizable schedule is a valid empty result.
func (r *Runner) collectWebsite(ctx context.Context, v database.Venue, parser schedule.SourceParser) ([]schedule.Entry, string, error) {
	base := v.ScrapeURL
	if base == "" {
		return nil, "", fmt.Errorf("venue %s has no scrape URL", v.Name)
	}
	if !strings.HasPrefix(base, "http") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")

	var lastErr error
	lastURL := base
	reached := false

	for _, probe := range pathProbes {
		if ctx.Err() != nil {
			return nil, lastURL, ctx.Err()
		}

		tryURL := base + probe
		html, err := r.fetchPage(ctx, tryURL)
		if err != nil {
			lastErr = err
			lastURL = tryURL
			continue
		}

		reached = true
		lastURL = tryURL
		if entries := parser.Parse(html, v.Name); len(entries) > 0 {
			return entries, tryURL, nil
		}
	}

	if !reached {
		return nil, lastURL, lastErr
	}
	return nil, lastURL, nil
}

// fetchPage retrieves a page over HTTP, falling back to the browser when the
// response is an anti-bot challenge.
func (r *Runner) fetchPage(ctx context.Context, url string) (string, error) {
	if err := r.limiter.Wait(ctx, url); err != nil {
		return "", err
	}

	html, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if browser.IsChallengePage(html) {
		if r.renderer == nil {
			return "", fetch.ErrBlocked
		}
		slog.Debug("Challenge detected, rendering with browser", "url", url)
		if err := r.limiter.Wait(ctx, url); err != nil {
			return "", err
		}
		return r.renderer.FetchHTML(ctx, url, 3*r.requestTimeout)
	}

	return html, nil
}

// persistEntries resolves and upserts each entry independently: an
// unresolvable name or a failed write drops that entry with a warning while
// its siblings continue.
func (r *Runner) persistEntries(v database.Venue, entries []schedule.Entry, sourceURL string, stats *RunStats) {
	for _, entry := range entries {
		venueID := v.ID
		if entry.VenueName != "" && !strings.EqualFold(entry.VenueName, v.Name) {
			id, err := r.resolver.Resolve(entry.VenueName, v.State)
			if err != nil {
				slog.Warn("Venue resolution failed", "name", entry.VenueName, "error", err)
				stats.EntryUnresolved()
				continue
			}
			if id == "" {
				slog.Warn("Could not resolve venue, dropping entry", "name", entry.VenueName)
				stats.EntryUnresolved()
				continue
			}
			venueID = id
		}

		buyIn := entry.BuyIn
		err := r.tournaments.UpsertTournament(database.ScheduleEntry{
			VenueID:        venueID,
			VenueName:      entry.VenueName,
			DayOfWeek:      entry.DayOfWeek,
			StartTime:      entry.StartTime,
			BuyIn:          &buyIn,
			Guaranteed:     entry.Guaranteed,
			GameType:       entry.GameType,
			Format:         entry.Format,
			TournamentName: entry.TournamentName,
			SourceURL:      sourceURL,
		})
		if err != nil {
			slog.Error("Failed to upsert tournament", "venue", v.Name, "day", entry.DayOfWeek, "time", entry.StartTime, "error", err)
			stats.UpsertFailed()
			continue
		}
		stats.EntryUpserted()
	}
}

func (r *Runner) updateStatus(v database.Venue, status string) {
	if err := r.venues.UpdateScrapeResult(v.ID, status); err != nil {
		slog.Error("Failed to update venue status", "venue", v.Name, "status", status, "error", err)
	}
}

func ensureTournamentsPath(url string) string {
	url = strings.TrimRight(url, "/")
	if strings.HasSuffix(url, "/tournaments") {
		return url
	}
	return url + "/tournaments"
}
