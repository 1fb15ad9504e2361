package venue

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Smarter-Poker/tournament-scraper/app/database"
)

// SourceVenue is one entry in the venue source-of-truth file: a venue with a
// confirmed recurring tournament schedule and, where known, its PokerAtlas
// page.
type SourceVenue struct {
	Name          string `yaml:"name"`
	City          string `yaml:"city"`
	State         string `yaml:"state"`
	PokerAtlasURL string `yaml:"pokeratlas_url"`
}

type sourceFile struct {
	Venues []SourceVenue `yaml:"venues"`
}

// SourceList is the parsed source-of-truth file, indexed by lowercased name.
type SourceList struct {
	byName map[string]SourceVenue
}

// LoadSources reads the venue source-of-truth file. A missing file is not an
// error: the run then trusts the database's venue set as-is.
func LoadSources(path string) (*SourceList, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read venue sources: %w", err)
	}

	var parsed sourceFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse venue sources: %w", err)
	}

	list := &SourceList{byName: make(map[string]SourceVenue, len(parsed.Venues))}
	for _, v := range parsed.Venues {
		if v.Name == "" {
			continue
		}
		list.byName[strings.ToLower(v.Name)] = v
	}

	slog.Info("Venue sources loaded", "path", path, "venues", len(list.byName))
	return list, nil
}

func (l *SourceList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byName)
}

// Filter keeps only venues confirmed by the source-of-truth file, enriching
// each with its PokerAtlas URL when the database row is missing one. The
// enrichment is persisted so later runs route directly.
func (l *SourceList) Filter(venues []database.Venue, repo database.VenueRepository) []database.Venue {
	if l.Len() == 0 {
		return venues
	}

	filtered := make([]database.Venue, 0, len(venues))
	for _, v := range venues {
		source, ok := l.byName[strings.ToLower(v.Name)]
		if !ok {
			continue
		}

		if source.PokerAtlasURL != "" && v.PokerAtlasURL == "" {
			v.PokerAtlasURL = source.PokerAtlasURL
			v.ScrapeSource = "pokeratlas"
			if err := repo.UpdateScrapeTarget(v.ID, v.ScrapeSource, v.PokerAtlasURL); err != nil {
				slog.Warn("Failed to persist scrape target", "venue", v.Name, "error", err)
			}
		}

		filtered = append(filtered, v)
	}

	return filtered
}
