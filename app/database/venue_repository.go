package database

import (
	"database/sql"
	"fmt"
	"strings"
)

var _ VenueRepository = (*VenueRepositoryImpl)(nil)

// VenueRepositoryImpl handles database operations for venues
type VenueRepositoryImpl struct {
	db *DB
}

func NewVenueRepository(db *DB) *VenueRepositoryImpl {
	return &VenueRepositoryImpl{db: db}
}

const venueColumns = `id, name, COALESCE(city, ''), COALESCE(state, ''),
	       COALESCE(scrape_source, 'manual'), COALESCE(scrape_url, ''),
	       COALESCE(pokeratlas_url, ''), COALESCE(pokeratlas_slug, ''),
	       last_scraped, COALESCE(scrape_status, 'ready'), is_active,
	       created_at, updated_at`

func scanVenue(row interface{ Scan(...interface{}) error }) (*Venue, error) {
	var v Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State,
		&v.ScrapeSource, &v.ScrapeURL, &v.PokerAtlasURL, &v.PokerAtlasSlug,
		&v.LastScraped, &v.ScrapeStatus, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVenuesForScrape returns active venues matching the filter, ordered by
// name, honoring the re-scrape cooldown unless it is disabled.
func (r *VenueRepositoryImpl) GetVenuesForScrape(filter VenueFilter) ([]Venue, error) {
	query := `SELECT ` + venueColumns + `
		FROM poker_venues
		WHERE is_active = true`
	var args []interface{}

	if filter.State != "" {
		args = append(args, strings.ToUpper(filter.State))
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}

	if filter.NameContains != "" {
		args = append(args, "%"+filter.NameContains+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	if filter.Source != "" {
		args = append(args, filter.Source)
		query += fmt.Sprintf(" AND scrape_source = $%d", len(args))
	}

	if !filter.ScrapedBefore.IsZero() {
		args = append(args, filter.ScrapedBefore)
		query += fmt.Sprintf(" AND (last_scraped IS NULL OR last_scraped < $%d)", len(args))
	}

	query += " ORDER BY name"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get venues for scrape: %w", err)
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue row: %w", err)
		}
		venues = append(venues, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venue rows: %w", err)
	}

	return venues, nil
}

func (r *VenueRepositoryImpl) GetVenueByID(id string) (*Venue, error) {
	row := r.db.QueryRow(`SELECT `+venueColumns+` FROM poker_venues WHERE id = $1`, id)

	venue, err := scanVenue(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue by id: %w", err)
	}

	return venue, nil
}

// SearchVenuesByName returns active venues whose name contains the fragment,
// case-insensitively, optionally restricted to a state.
func (r *VenueRepositoryImpl) SearchVenuesByName(fragment, state string, limit int) ([]Venue, error) {
	query := `SELECT ` + venueColumns + `
		FROM poker_venues
		WHERE is_active = true AND name ILIKE $1`
	args := []interface{}{"%" + fragment + "%"}

	if state != "" {
		args = append(args, strings.ToUpper(state))
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}

	query += " ORDER BY name"

	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues by name: %w", err)
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue row: %w", err)
		}
		venues = append(venues, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venue rows: %w", err)
	}

	return venues, nil
}

func (r *VenueRepositoryImpl) GetVenueCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM poker_venues WHERE is_active = true").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get venue count: %w", err)
	}
	return count, nil
}

func (r *VenueRepositoryImpl) GetStatusCounts() (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT COALESCE(scrape_status, 'ready'), COUNT(*)
		FROM poker_venues
		WHERE is_active = true
		GROUP BY COALESCE(scrape_status, 'ready')
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status count rows: %w", err)
	}

	return counts, nil
}

// UpdateScrapeResult records the outcome of a scrape attempt. Called after
// every attempt regardless of outcome, so last_scraped always moves forward.
func (r *VenueRepositoryImpl) UpdateScrapeResult(venueID, status string) error {
	_, err := r.db.Exec(`
		UPDATE poker_venues
		SET scrape_status = $2, last_scraped = NOW(), updated_at = NOW()
		WHERE id = $1
	`, venueID, status)

	if err != nil {
		return fmt.Errorf("failed to update scrape result: %w", err)
	}

	return nil
}

// UpdateScrapeTarget enriches a venue with source routing discovered from the
// venue source-of-truth file.
func (r *VenueRepositoryImpl) UpdateScrapeTarget(venueID, source, pokerAtlasURL string) error {
	_, err := r.db.Exec(`
		UPDATE poker_venues
		SET scrape_source = $2, pokeratlas_url = $3, updated_at = NOW()
		WHERE id = $1
	`, venueID, source, pokerAtlasURL)

	if err != nil {
		return fmt.Errorf("failed to update scrape target: %w", err)
	}

	return nil
}
