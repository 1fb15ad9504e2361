package database

import (
	"time"
)

// Venue scrape statuses written by the orchestrator. The venue table is shared
// with the admin UI, which also sets "needs_manual" on rows it curates by hand.
const (
	VenueStatusReady       = "ready"
	VenueStatusComplete    = "complete"
	VenueStatusNoData      = "no_data"
	VenueStatusError       = "error"
	VenueStatusNeedsManual = "needs_manual"
)

// Venue represents a poker venue record in the database
type Venue struct {
	ID             string // Database UUID
	Name           string
	City           string
	State          string
	ScrapeSource   string // pokeratlas, direct_website or manual
	ScrapeURL      string
	PokerAtlasURL  string
	PokerAtlasSlug string
	LastScraped    *time.Time
	ScrapeStatus   string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Tournament represents a recurring tournament schedule slot for a venue.
// Uniqueness is enforced on (venue_id, day_of_week, start_time, buy_in), so
// re-scraping an unchanged schedule overwrites rows instead of duplicating them.
type Tournament struct {
	ID             string
	VenueID        string
	VenueName      string
	DayOfWeek      string
	StartTime      string
	BuyIn          *int
	Guaranteed     *int
	GameType       string
	Format         string
	TournamentName string
	SourceURL      string
	LastScraped    *time.Time
	LastSeenAt     *time.Time
	IsActive       bool
	CreatedAt      time.Time
}
