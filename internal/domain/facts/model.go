package facts

// PlaceholderKey fills a required key column when the source row did not carry
// one. Rows are kept, never dropped, so downstream consumers can audit gaps.
const PlaceholderKey = "unknown"

// BoxScoreRow is one player's stat line in one game.
type BoxScoreRow struct {
	GameUID    string
	TeamUID    string
	PlayerRef  string
	PlayerName string
	Points     *int
	Rebounds   *int
	Assists    *int
	Minutes    *int
	SourceID   string
}

// RosterRow is one player's membership on one team within a competition.
type RosterRow struct {
	CompetitionUID string
	TeamUID        string
	PlayerRef      string
	PlayerName     string
	Number         string
	Position       string
	GradYear       *int
	SourceID       string
}

// EventRow is one in-game or schedule event reported by a source.
type EventRow struct {
	CompetitionUID string
	GameUID        string
	TeamUID        string
	PlayerRef      string
	EventType      string
	Detail         string
	SourceID       string
}

// OrPlaceholder substitutes the null placeholder for a blank key column.
func OrPlaceholder(key string) string {
	if key == "" {
		return PlaceholderKey
	}
	return key
}
