package schedule

// ForSource returns the parser for a venue's scrape source. PokerAtlas is the
// primary source and the default.
func ForSource(source string) SourceParser {
	switch source {
	case "direct_website":
		return NewWebsiteParser()
	case "cardplayer":
		return NewCardPlayerParser()
	default:
		return NewPokerAtlasParser()
	}
}
