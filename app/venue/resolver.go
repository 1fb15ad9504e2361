package venue

import (
	"fmt"
	"strings"

	"github.com/Smarter-Poker/tournament-scraper/app/database"
)

// Resolver maps free-text venue names from scraped sources onto venue ids.
// First match wins: a substring hit on the first token of the cleaned name,
// then a hit on any token longer than three characters. Distinct venues
// sharing a first word can collide; callers treat an unresolved name as a
// per-entry skip, not an error.
type Resolver struct {
	venues database.VenueRepository
}

func NewResolver(venues database.VenueRepository) *Resolver {
	return &Resolver{venues: venues}
}

// Resolve returns the id of the matching venue, or "" when nothing matches.
func (r *Resolver) Resolve(name, stateHint string) (string, error) {
	tokens := strings.Fields(cleanName(name))
	if len(tokens) == 0 {
		return "", nil
	}

	matches, err := r.venues.SearchVenuesByName(tokens[0], stateHint, 5)
	if err != nil {
		return "", fmt.Errorf("failed to search venues: %w", err)
	}
	if len(matches) > 0 {
		return matches[0].ID, nil
	}

	for _, token := range tokens {
		if len(token) <= 3 {
			continue
		}
		matches, err := r.venues.SearchVenuesByName(token, "", 1)
		if err != nil {
			return "", fmt.Errorf("failed to search venues: %w", err)
		}
		if len(matches) > 0 {
			return matches[0].ID, nil
		}
	}

	return "", nil
}

// cleanName normalizes typographic apostrophes, which scraped sources mix
// freely with ASCII ones.
func cleanName(name string) string {
	replacer := strings.NewReplacer("‘", "'", "’", "'")
	return strings.TrimSpace(replacer.Replace(name))
}
