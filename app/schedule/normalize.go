package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultStartTime is used when a row carries a day but no parseable clock
// time. Venue schedules overwhelmingly start in the evening.
const DefaultStartTime = "7:00 PM"

// Buy-in sanity bounds. Amounts outside the open interval are years, jackpot
// totals or page furniture misparsed as buy-ins.
const (
	MinBuyIn = 0
	MaxBuyIn = 50000
)

var (
	// Comma-grouped form first: with the plain digit run as the leading
	// alternative, "$99999" would match as a truncated "$999".
	currencyRe = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+|\d+)`)
	timeRe     = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)?`)
	dayRe      = regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday|Daily|Mon|Tue|Wed|Thu|Fri|Sat|Sun)\b`)
	gtdRe      = regexp.MustCompile(`(?i)(?:GTD|Guaranteed)[:\s]*\$?([\d,]+)`)
	gtdAfterRe = regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})+|\d+)\s*(?:GTD|Guaranteed)`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	spaceRe    = regexp.MustCompile(`\s+`)
	noLimitRe  = regexp.MustCompile(`(?i)No.?Limit`)
)

var dayNames = map[string]string{
	"mon": "Monday", "tue": "Tuesday", "wed": "Wednesday",
	"thu": "Thursday", "fri": "Friday", "sat": "Saturday", "sun": "Sunday",
	"dai": "Daily",
}

// NormalizeDayOfWeek maps full names, three-letter abbreviations and "Daily"
// (case-insensitive) onto the eight canonical values. Unrecognized input maps
// to "Daily".
func NormalizeDayOfWeek(day string) string {
	trimmed := strings.TrimSpace(day)
	if len(trimmed) < 3 {
		return "Daily"
	}
	if name, ok := dayNames[strings.ToLower(trimmed)[:3]]; ok {
		return name
	}
	return "Daily"
}

// NormalizeStartTime formats a matched clock time as "H:MM AM/PM". Times
// without a meridiem are treated as evening starts.
func NormalizeStartTime(raw string) string {
	m := timeRe.FindStringSubmatch(raw)
	if m == nil {
		return DefaultStartTime
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return DefaultStartTime
	}

	meridiem := strings.ToUpper(m[3])
	if meridiem == "" {
		meridiem = "PM"
	}

	return strconv.Itoa(hour) + ":" + m[2] + " " + meridiem
}

// ClassifyGameType detects the poker variant by keyword presence.
func ClassifyGameType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "plo"), strings.Contains(lower, "pot limit omaha"):
		return "PLO"
	case strings.Contains(lower, "omaha hi-lo"), strings.Contains(lower, "o8"):
		return "Omaha Hi-Lo"
	case strings.Contains(lower, "omaha"):
		return "Omaha"
	case strings.Contains(lower, "stud"):
		return "Stud"
	case strings.Contains(lower, "mixed"):
		return "Mixed"
	case strings.Contains(lower, "limit") && !noLimitRe.MatchString(text):
		return "Limit"
	default:
		return "NLH"
	}
}

// ClassifyFormat detects a tournament format keyword, or returns "".
func ClassifyFormat(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "turbo"):
		return "Turbo"
	case strings.Contains(lower, "deepstack"), strings.Contains(lower, "deep stack"):
		return "Deep Stack"
	case strings.Contains(lower, "bounty"), strings.Contains(lower, "knockout"):
		return "Bounty"
	case strings.Contains(lower, "rebuy"):
		return "Rebuy"
	default:
		return ""
	}
}

// parseBuyIn extracts the first currency amount within the sanity bounds.
// Returns 0 when no usable amount is present.
func parseBuyIn(text string) int {
	m := currencyRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	amount, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	if amount <= MinBuyIn || amount >= MaxBuyIn {
		return 0
	}
	return amount
}

// parseGuarantee extracts a guarantee amount adjacent to a GTD/Guaranteed
// marker, in either order.
func parseGuarantee(text string) *int {
	m := gtdRe.FindStringSubmatch(text)
	if m == nil {
		m = gtdAfterRe.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}
	amount, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || amount <= 0 {
		return nil
	}
	return &amount
}

// stripTags flattens markup to whitespace-normalized text.
func stripTags(html string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(tagRe.ReplaceAllString(html, " "), " "))
}

// dedupeEntries drops entries sharing a (day, time, buy-in) slot within one
// page, keeping the first occurrence.
func dedupeEntries(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	result := entries[:0]
	for _, e := range entries {
		key := e.DayOfWeek + "|" + e.StartTime + "|" + strconv.Itoa(e.BuyIn)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, e)
	}
	return result
}
