package schedule

// Entry is a tournament schedule slot extracted from a source page. It is
// unvalidated beyond the parser's own sanity bounds; venue resolution and
// persistence happen downstream.
type Entry struct {
	VenueName      string
	DayOfWeek      string
	StartTime      string
	BuyIn          int
	Guaranteed     *int
	GameType       string
	Format         string
	TournamentName string
}

// SourceParser extracts schedule entries from one source's markup. Each
// listing site gets its own implementation so a format change on one site
// cannot silently corrupt extraction for the others.
type SourceParser interface {
	// Parse never fails: malformed rows are skipped and an empty result is a
	// valid "no schedule found" outcome, distinct from a fetch failure.
	Parse(html, venueName string) []Entry

	Source() string
}
