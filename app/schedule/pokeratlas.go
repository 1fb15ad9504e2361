package schedule

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var _ SourceParser = (*PokerAtlasParser)(nil)

// PokerAtlasParser extracts schedule entries from PokerAtlas venue tournament
// pages. The schedule lives in tables; a handful of venues use card-style
// list markup instead, which the fallback pass covers.
type PokerAtlasParser struct{}

func NewPokerAtlasParser() *PokerAtlasParser {
	return &PokerAtlasParser{}
}

func (p *PokerAtlasParser) Source() string {
	return "pokeratlas"
}

func (p *PokerAtlasParser) Parse(html, venueName string) []Entry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var entries []Entry

	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		// Some venues mark up the header row with td instead of th. A real
		// listing row always carries a buy-in amount; weekday names contain
		// "day" too, so the keyword alone is not enough.
		if i == 0 && strings.Contains(strings.ToLower(row.Text()), "day") && !currencyRe.MatchString(row.Text()) {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		var parts []string
		cells.Each(func(_ int, cell *goquery.Selection) {
			parts = append(parts, strings.TrimSpace(spaceRe.ReplaceAllString(cell.Text(), " ")))
		})
		text := strings.Join(parts, " ")

		entry, ok := buildEntry(text, venueName)
		if !ok {
			return
		}
		entry.TournamentName = pickTournamentName(parts)
		entries = append(entries, entry)
	})

	// Card-style layouts carry the same fields in list items.
	if len(entries) == 0 {
		doc.Find(".tournament-item, .event-item, .schedule-item").Each(func(_ int, item *goquery.Selection) {
			text := strings.TrimSpace(spaceRe.ReplaceAllString(item.Text(), " "))
			if entry, ok := buildEntry(text, venueName); ok {
				entries = append(entries, entry)
			}
		})
	}

	return dedupeEntries(entries)
}

// buildEntry applies the candidate rule to a flattened row or block of text:
// an in-bounds buy-in plus at least one of a clock time or a day name.
func buildEntry(text, venueName string) (Entry, bool) {
	buyIn := parseBuyIn(text)
	if buyIn == 0 {
		return Entry{}, false
	}

	timeMatch := timeRe.FindString(text)
	dayMatch := dayRe.FindString(text)
	if timeMatch == "" && dayMatch == "" {
		return Entry{}, false
	}

	startTime := DefaultStartTime
	if timeMatch != "" {
		startTime = NormalizeStartTime(timeMatch)
	}

	day := "Daily"
	if dayMatch != "" {
		day = NormalizeDayOfWeek(dayMatch)
	}

	return Entry{
		VenueName:  venueName,
		DayOfWeek:  day,
		StartTime:  startTime,
		BuyIn:      buyIn,
		Guaranteed: parseGuarantee(text),
		GameType:   ClassifyGameType(text),
		Format:     ClassifyFormat(text),
	}, true
}

// pickTournamentName returns the first cell that reads like a name rather
// than a number, time or day token.
func pickTournamentName(cells []string) string {
	for _, cell := range cells {
		if len(cell) <= 5 {
			continue
		}
		if strings.HasPrefix(cell, "$") || (cell[0] >= '0' && cell[0] <= '9') {
			continue
		}
		if timeRe.MatchString(cell) || dayRe.MatchString(cell) {
			continue
		}
		if len(cell) > 100 {
			cell = cell[:100]
		}
		return cell
	}
	return ""
}
