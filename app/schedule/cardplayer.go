package schedule

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var _ SourceParser = (*CardPlayerParser)(nil)

// CardPlayerParser extracts entries from CardPlayer aggregate listing pages.
// Unlike the venue-page parsers, each row names the venue hosting the event;
// entries carry that name so the persister can resolve it against the venue
// table.
type CardPlayerParser struct{}

func NewCardPlayerParser() *CardPlayerParser {
	return &CardPlayerParser{}
}

func (p *CardPlayerParser) Source() string {
	return "cardplayer"
}

func (p *CardPlayerParser) Parse(html, venueName string) []Entry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var entries []Entry

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		// The first cell names the host venue, as link text when linked.
		host := strings.TrimSpace(cells.First().Find("a").Text())
		if host == "" {
			host = strings.TrimSpace(spaceRe.ReplaceAllString(cells.First().Text(), " "))
		}
		if host == "" {
			return
		}

		var parts []string
		cells.Each(func(_ int, cell *goquery.Selection) {
			parts = append(parts, strings.TrimSpace(spaceRe.ReplaceAllString(cell.Text(), " ")))
		})
		text := strings.Join(parts, " ")

		entry, ok := buildEntry(text, host)
		if !ok {
			return
		}
		entry.TournamentName = pickTournamentName(parts[1:])
		entries = append(entries, entry)
	})

	return dedupeEntries(entries)
}
