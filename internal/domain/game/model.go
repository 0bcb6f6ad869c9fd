package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/identity"
)

// Game is one canonical game row. Scores are nil when the source published a
// matchup without a result.
type Game struct {
	GameUID        string
	CompetitionUID string
	Season         string
	Date           *time.Time
	Venue          string
	HomeTeamUID    string
	AwayTeamUID    string
	HomeTeamName   string
	AwayTeamName   string
	HomeScore      *int
	AwayScore      *int
	WinnerTeamUID  string
	RoundLabel     string
	SourceID       string
	SourceURL      string
	FetchedAt      time.Time
}

// UID derives the canonical game key. It has no random or wall-clock input, so
// a fixed (source, season, date, home, away, event) tuple is reproducible
// byte-for-byte across runs. Pass eventID "" when the source has none.
func UID(sourceKey, season, date, homeTeam, awayTeam, eventID string) string {
	components := []string{sourceKey, season, date, homeTeam, awayTeam}
	if strings.TrimSpace(eventID) != "" {
		components = append(components, eventID)
	}
	return identity.JoinKey(identity.MaxGameKeyLen, components...)
}

// SeasonForDate maps a game date onto a basketball season label. Dates in
// August or later belong to the season starting that calendar year; earlier
// dates belong to the season started the previous year. The label is
// "{startYear}-{(startYear+1) mod 100}", e.g. "2023-24".
func SeasonForDate(date time.Time) string {
	startYear := date.Year()
	if date.Month() < time.August {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// SeasonEndYear parses a season label and returns the calendar year the season
// ends in. Accepts "2023-24", "2023-2024", and a bare "2024" (already an end
// year).
func SeasonEndYear(season string) (int, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		return 0, fmt.Errorf("season is required")
	}
	if start, _, found := strings.Cut(season, "-"); found {
		startYear, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return 0, fmt.Errorf("parse season %q: %w", season, err)
		}
		return startYear + 1, nil
	}
	year, err := strconv.Atoi(season)
	if err != nil {
		return 0, fmt.Errorf("parse season %q: %w", season, err)
	}
	return year, nil
}

// Winner returns the winning team UID, or "" for a draw or an incomplete
// result.
func (g Game) Winner() string {
	if g.HomeScore == nil || g.AwayScore == nil {
		return ""
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return g.HomeTeamUID
	case *g.AwayScore > *g.HomeScore:
		return g.AwayTeamUID
	default:
		return ""
	}
}
