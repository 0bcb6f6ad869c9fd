// Package dataset holds the unified dimension/fact table set one merge build
// returns. The builder owns these for the duration of a build call; nothing
// here is shared across invocations.
package dataset

import (
	"sort"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/competition"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/facts"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/game"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/source"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/team"
)

// Unified is the canonical table collection for one build.
type Unified struct {
	DimSource      []source.Meta
	DimCompetition []competition.Competition
	DimTeam        []team.Team
	FactGame       []game.Game
	FactBox        []facts.BoxScoreRow
	FactRoster     []facts.RosterRow
	FactEvent      []facts.EventRow
}

// Append concatenates another partial table set onto u without deduplication.
func (u *Unified) Append(other Unified) {
	u.DimSource = append(u.DimSource, other.DimSource...)
	u.DimCompetition = append(u.DimCompetition, other.DimCompetition...)
	u.DimTeam = append(u.DimTeam, other.DimTeam...)
	u.FactGame = append(u.FactGame, other.FactGame...)
	u.FactBox = append(u.FactBox, other.FactBox...)
	u.FactRoster = append(u.FactRoster, other.FactRoster...)
	u.FactEvent = append(u.FactEvent, other.FactEvent...)
}

// Dedupe collapses dimension tables and the game fact table by canonical key.
// Later rows win, matching last-write semantics for repeated keys. Box,
// roster, and event facts are left as-is: several sources may legitimately
// report the same game at different granularity, and collapsing those is a
// downstream decision. Output ordering is sorted by key so two builds over the
// same inputs are byte-identical regardless of source processing order.
func (u *Unified) Dedupe() {
	u.DimSource = dedupeByKey(u.DimSource, func(m source.Meta) string { return m.SourceID })
	u.DimCompetition = dedupeByKey(u.DimCompetition, func(c competition.Competition) string { return c.CompetitionUID })
	u.DimTeam = dedupeByKey(u.DimTeam, func(t team.Team) string { return t.TeamUID })
	u.FactGame = dedupeByKey(u.FactGame, func(g game.Game) string { return g.GameUID })
}

func dedupeByKey[T any](rows []T, keyOf func(T) string) []T {
	byKey := make(map[string]T, len(rows))
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		key := keyOf(row)
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = row
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, key := range keys {
		out = append(out, byKey[key])
	}
	return out
}
