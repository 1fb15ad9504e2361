package schedule

import (
	"testing"
)

const atlasTableHTML = `
<html><body>
<table>
  <tr><th>Day</th><th>Time</th><th>Buy-In</th><th>Event</th></tr>
  <tr><td>Monday</td><td>7:00 PM</td><td>$150</td><td>Big Stack Bounty $10,000 GTD</td></tr>
  <tr><td>Tuesday</td><td>11:15 AM</td><td>$80</td><td>Morning Turbo</td></tr>
  <tr><td>Wednesday</td><td>7:00 PM</td><td>$200</td><td>PLO Deep Stack</td></tr>
  <tr><td>Wednesday</td><td>7:00 PM</td><td>$200</td><td>PLO Deep Stack</td></tr>
  <tr><td>Thursday</td><td></td><td></td><td>Live music, no poker</td></tr>
</table>
</body></html>`

func TestPokerAtlasParser_Table(t *testing.T) {
	parser := NewPokerAtlasParser()

	entries := parser.Parse(atlasTableHTML, "Lodge Card Club")

	// Header row skipped, duplicate Wednesday slot deduped, row without a
	// buy-in dropped.
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.VenueName != "Lodge Card Club" {
		t.Errorf("Expected venue name to carry through, got %q", first.VenueName)
	}
	if first.DayOfWeek != "Monday" {
		t.Errorf("Expected Monday, got %q", first.DayOfWeek)
	}
	if first.StartTime != "7:00 PM" {
		t.Errorf("Expected 7:00 PM, got %q", first.StartTime)
	}
	if first.BuyIn != 150 {
		t.Errorf("Expected buy-in 150, got %d", first.BuyIn)
	}
	if first.Guaranteed == nil || *first.Guaranteed != 10000 {
		t.Errorf("Expected guarantee 10000, got %v", first.Guaranteed)
	}
	if first.Format != "Bounty" {
		t.Errorf("Expected Bounty format, got %q", first.Format)
	}
	if first.TournamentName != "Big Stack Bounty $10,000 GTD" {
		t.Errorf("Expected name cell, got %q", first.TournamentName)
	}

	second := entries[1]
	if second.DayOfWeek != "Tuesday" || second.StartTime != "11:15 AM" || second.BuyIn != 80 {
		t.Errorf("Unexpected second entry: %+v", second)
	}
	if second.Format != "Turbo" {
		t.Errorf("Expected Turbo format, got %q", second.Format)
	}

	third := entries[2]
	if third.GameType != "PLO" {
		t.Errorf("Expected PLO, got %q", third.GameType)
	}
	if third.Format != "Deep Stack" {
		t.Errorf("Expected Deep Stack format, got %q", third.Format)
	}
}

func TestPokerAtlasParser_DayWithoutTime(t *testing.T) {
	html := `<table>
  <tr><td>Sunday</td><td>$100</td><td>Weekly freezeout</td></tr>
</table>`

	entries := NewPokerAtlasParser().Parse(html, "Test Venue")

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].DayOfWeek != "Sunday" {
		t.Errorf("Expected Sunday, got %q", entries[0].DayOfWeek)
	}
	if entries[0].StartTime != DefaultStartTime {
		t.Errorf("Expected default start time, got %q", entries[0].StartTime)
	}
}

func TestPokerAtlasParser_BuyInWithoutDayOrTime(t *testing.T) {
	// A dollar amount alone is not a schedule entry.
	html := `<table>
  <tr><td>$500</td><td>High hand promotion</td></tr>
</table>`

	entries := NewPokerAtlasParser().Parse(html, "Test Venue")

	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestPokerAtlasParser_CardLayoutFallback(t *testing.T) {
	html := `<div>
  <div class="tournament-item">Friday 6:30 PM $250 NLH $25,000 Guaranteed</div>
  <div class="tournament-item">Saturday 2:00 PM $120 Turbo</div>
</div>`

	entries := NewPokerAtlasParser().Parse(html, "Test Venue")

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries from card layout, got %d", len(entries))
	}
	if entries[0].DayOfWeek != "Friday" || entries[0].BuyIn != 250 {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[0].Guaranteed == nil || *entries[0].Guaranteed != 25000 {
		t.Errorf("Expected guarantee 25000, got %v", entries[0].Guaranteed)
	}
}

func TestPokerAtlasParser_MalformedHTML(t *testing.T) {
	// Parse never fails; malformed markup yields an empty result.
	for _, html := range []string{"", "<<<>>>", "<table><tr><td>$", "not html at all"} {
		entries := NewPokerAtlasParser().Parse(html, "Test Venue")
		if len(entries) != 0 {
			t.Errorf("Expected no entries for %q, got %d", html, len(entries))
		}
	}
}

func TestPickTournamentName(t *testing.T) {
	cells := []string{"Monday", "7:00 PM", "$150", "Big Stack Bounty"}

	if got := pickTournamentName(cells); got != "Big Stack Bounty" {
		t.Errorf("Expected name cell, got %q", got)
	}

	// No cell qualifies.
	if got := pickTournamentName([]string{"Mon", "$50", "9:00"}); got != "" {
		t.Errorf("Expected empty name, got %q", got)
	}
}
