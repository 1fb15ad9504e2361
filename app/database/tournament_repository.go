package database

import (
	"fmt"
	"time"
)

var _ TournamentRepository = (*TournamentRepositoryImpl)(nil)

// TournamentRepositoryImpl handles database operations for tournament schedule entries
type TournamentRepositoryImpl struct {
	db *DB
}

func NewTournamentRepository(db *DB) *TournamentRepositoryImpl {
	return &TournamentRepositoryImpl{db: db}
}

// UpsertTournament stores a scraped schedule slot, keyed on the composite
// natural key. Conflicting rows are overwritten with the freshly scraped
// values, so re-scraping an unchanged page is idempotent.
func (r *TournamentRepositoryImpl) UpsertTournament(entry ScheduleEntry) error {
	_, err := r.db.Exec(`
		INSERT INTO venue_daily_tournaments (
			venue_id, venue_name, day_of_week, start_time, buy_in,
			guaranteed, game_type, format, tournament_name, source_url,
			last_scraped, last_seen_at, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW(), true)
		ON CONFLICT (venue_id, day_of_week, start_time, buy_in) DO UPDATE SET
			venue_name = EXCLUDED.venue_name,
			guaranteed = EXCLUDED.guaranteed,
			game_type = EXCLUDED.game_type,
			format = EXCLUDED.format,
			tournament_name = EXCLUDED.tournament_name,
			source_url = EXCLUDED.source_url,
			last_scraped = NOW(),
			last_seen_at = NOW(),
			is_active = true
	`, entry.VenueID, entry.VenueName, entry.DayOfWeek, entry.StartTime,
		entry.BuyIn, entry.Guaranteed, entry.GameType,
		nullIfEmpty(entry.Format), nullIfEmpty(entry.TournamentName), entry.SourceURL)

	if err != nil {
		return fmt.Errorf("failed to upsert tournament: %w", err)
	}

	return nil
}

func (r *TournamentRepositoryImpl) GetTournamentsByVenue(venueID string) ([]Tournament, error) {
	rows, err := r.db.Query(`
		SELECT id, venue_id, COALESCE(venue_name, ''), day_of_week, start_time,
		       buy_in, guaranteed, COALESCE(game_type, 'NLH'), COALESCE(format, ''),
		       COALESCE(tournament_name, ''), COALESCE(source_url, ''),
		       last_scraped, last_seen_at, is_active, created_at
		FROM venue_daily_tournaments
		WHERE venue_id = $1 AND is_active = true
		ORDER BY day_of_week, start_time
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournaments by venue: %w", err)
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		var t Tournament
		err := rows.Scan(
			&t.ID, &t.VenueID, &t.VenueName, &t.DayOfWeek, &t.StartTime,
			&t.BuyIn, &t.Guaranteed, &t.GameType, &t.Format,
			&t.TournamentName, &t.SourceURL,
			&t.LastScraped, &t.LastSeenAt, &t.IsActive, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}

	return tournaments, nil
}

func (r *TournamentRepositoryImpl) GetTournamentCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM venue_daily_tournaments WHERE is_active = true").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get tournament count: %w", err)
	}
	return count, nil
}

// DeactivateStale marks entries not refreshed within the grace window as
// inactive. A single failed or empty scrape must not delete rows, so stale
// entries are deactivated rather than removed.
func (r *TournamentRepositoryImpl) DeactivateStale(grace time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-grace)

	result, err := r.db.Exec(`
		UPDATE venue_daily_tournaments
		SET is_active = false
		WHERE is_active = true AND (last_seen_at IS NULL OR last_seen_at < $1)
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate stale tournaments: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deactivated tournaments: %w", err)
	}

	return affected, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
