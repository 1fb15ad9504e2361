package venue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Smarter-Poker/tournament-scraper/app/database"
)

type recordingVenueRepo struct {
	fakeVenueRepo
	targets map[string]string
}

func (r *recordingVenueRepo) UpdateScrapeTarget(venueID, source, pokerAtlasURL string) error {
	if r.targets == nil {
		r.targets = make(map[string]string)
	}
	r.targets[venueID] = source + "|" + pokerAtlasURL
	return nil
}

func writeSourceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venues.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	return path
}

func TestLoadSources_MissingFileIsNotAnError(t *testing.T) {
	list, err := LoadSources(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if list != nil {
		t.Errorf("Expected nil list for missing file, got %v", list)
	}
	if list.Len() != 0 {
		t.Errorf("Expected Len 0 on nil list, got %d", list.Len())
	}
}

func TestLoadSources_ParsesVenues(t *testing.T) {
	path := writeSourceFile(t, `
venues:
  - name: Lodge Card Club
    city: Round Rock
    state: TX
    pokeratlas_url: https://www.pokeratlas.com/poker-room/lodge-card-club
  - name: Bellagio
    city: Las Vegas
    state: NV
`)

	list, err := LoadSources(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if list.Len() != 2 {
		t.Errorf("Expected 2 venues, got %d", list.Len())
	}
}

func TestLoadSources_InvalidYAML(t *testing.T) {
	path := writeSourceFile(t, "venues: [unclosed")

	if _, err := LoadSources(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSourceList_FilterKeepsConfirmedVenues(t *testing.T) {
	path := writeSourceFile(t, `
venues:
  - name: Lodge Card Club
    state: TX
`)
	list, err := LoadSources(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	repo := &recordingVenueRepo{}
	venues := []database.Venue{
		{ID: "v1", Name: "Lodge Card Club"},
		{ID: "v2", Name: "Random Bar With Poker Night"},
	}

	filtered := list.Filter(venues, repo)

	if len(filtered) != 1 {
		t.Fatalf("Expected 1 venue after filtering, got %d", len(filtered))
	}
	if filtered[0].ID != "v1" {
		t.Errorf("Expected v1 to survive, got %q", filtered[0].ID)
	}
}

func TestSourceList_FilterEnrichesPokerAtlasURL(t *testing.T) {
	path := writeSourceFile(t, `
venues:
  - name: Lodge Card Club
    state: TX
    pokeratlas_url: https://www.pokeratlas.com/poker-room/lodge-card-club
`)
	list, err := LoadSources(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	repo := &recordingVenueRepo{}
	venues := []database.Venue{
		{ID: "v1", Name: "lodge card club", ScrapeSource: "direct_website"},
	}

	filtered := list.Filter(venues, repo)

	if len(filtered) != 1 {
		t.Fatalf("Expected 1 venue, got %d", len(filtered))
	}
	if filtered[0].PokerAtlasURL != "https://www.pokeratlas.com/poker-room/lodge-card-club" {
		t.Errorf("Expected enriched URL, got %q", filtered[0].PokerAtlasURL)
	}
	if filtered[0].ScrapeSource != "pokeratlas" {
		t.Errorf("Expected source switched to pokeratlas, got %q", filtered[0].ScrapeSource)
	}

	// Enrichment is persisted for later runs.
	if got := repo.targets["v1"]; got != "pokeratlas|https://www.pokeratlas.com/poker-room/lodge-card-club" {
		t.Errorf("Expected persisted scrape target, got %q", got)
	}
}

func TestSourceList_FilterDoesNotOverrideExistingURL(t *testing.T) {
	path := writeSourceFile(t, `
venues:
  - name: Lodge Card Club
    state: TX
    pokeratlas_url: https://www.pokeratlas.com/poker-room/other
`)
	list, err := LoadSources(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	repo := &recordingVenueRepo{}
	venues := []database.Venue{
		{ID: "v1", Name: "Lodge Card Club", PokerAtlasURL: "https://www.pokeratlas.com/poker-room/existing"},
	}

	filtered := list.Filter(venues, repo)

	if filtered[0].PokerAtlasURL != "https://www.pokeratlas.com/poker-room/existing" {
		t.Errorf("Expected existing URL to be kept, got %q", filtered[0].PokerAtlasURL)
	}
	if len(repo.targets) != 0 {
		t.Errorf("Expected no persistence when URL already set, got %v", repo.targets)
	}
}
