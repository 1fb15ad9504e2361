package database

import (
	"time"
)

// VenueFilter narrows the venue batch selected for a scrape run.
type VenueFilter struct {
	State        string
	NameContains string
	Source       string
	Limit        int

	// Venues scraped after this cutoff are skipped. Zero value disables the
	// cooldown (--force).
	ScrapedBefore time.Time
}

// ScheduleEntry is the upsert input for a scraped tournament slot.
type ScheduleEntry struct {
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
}

type VenueRepository interface {
	GetVenuesForScrape(filter VenueFilter) ([]Venue, error)
	GetVenueByID(id string) (*Venue, error)
	SearchVenuesByName(fragment, state string, limit int) ([]Venue, error)
	GetVenueCount() (int, error)
	GetStatusCounts() (map[string]int, error)

	UpdateScrapeResult(venueID, status string) error
	UpdateScrapeTarget(venueID, source, pokerAtlasURL string) error
}

type TournamentRepository interface {
	GetTournamentsByVenue(venueID string) ([]Tournament, error)
	GetTournamentCount() (int, error)

	UpsertTournament(entry ScheduleEntry) error
	DeactivateStale(grace time.Duration) (int64, error)
}
