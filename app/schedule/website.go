package schedule

import (
	"strings"
)

// Blocks longer than this are page furniture, not a single tournament listing.
const maxBlockLength = 500

var _ SourceParser = (*WebsiteParser)(nil)

// WebsiteParser is a best-effort parser for direct venue websites, which share
// no common markup. It flattens the page to text and scans dollar-anchored
// blocks for schedule fields.
type WebsiteParser struct{}

func NewWebsiteParser() *WebsiteParser {
	return &WebsiteParser{}
}

func (p *WebsiteParser) Source() string {
	return "direct_website"
}

func (p *WebsiteParser) Parse(html, venueName string) []Entry {
	text := stripTags(html)

	var entries []Entry
	for _, block := range splitOnCurrency(text) {
		if len(block) > maxBlockLength {
			continue
		}

		buyIn := parseBuyIn(block)
		if buyIn == 0 {
			continue
		}

		timeMatch := timeRe.FindString(block)
		dayMatch := dayRe.FindString(block)
		if timeMatch == "" && dayMatch == "" {
			continue
		}

		startTime := DefaultStartTime
		if timeMatch != "" {
			startTime = NormalizeStartTime(timeMatch)
		}

		day := "Daily"
		if dayMatch != "" {
			day = NormalizeDayOfWeek(dayMatch)
		}

		entries = append(entries, Entry{
			VenueName:  venueName,
			DayOfWeek:  day,
			StartTime:  startTime,
			BuyIn:      buyIn,
			Guaranteed: parseGuarantee(block),
			GameType:   ClassifyGameType(block),
			Format:     ClassifyFormat(block),
		})
	}

	return dedupeEntries(entries)
}

// splitOnCurrency splits text into blocks each starting at a dollar amount,
// so one block covers at most one listing.
func splitOnCurrency(text string) []string {
	parts := strings.Split(text, "$")
	if len(parts) <= 1 {
		return nil
	}

	blocks := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		blocks = append(blocks, "$"+part)
	}
	return blocks
}
