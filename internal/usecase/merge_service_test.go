package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/facts"
)

func metaInput(key, state string) SourceMetaInput {
	return SourceMetaInput{
		SourceKey: key,
		Country:   "US",
		State:     state,
		FetchedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func gameRow(home, away, homeScore, awayScore, date string) RawRow {
	row := RawRow{"home_team": home, "away_team": away}
	if homeScore != "" {
		row["home_score"] = homeScore
	}
	if awayScore != "" {
		row["away_score"] = awayScore
	}
	if date != "" {
		row["date"] = date
	}
	return row
}

func TestBuildSourceMapsGamesAndCompetitions(t *testing.T) {
	t.Parallel()

	svc := NewMergeService(nil)
	tables := SourceTables{
		Meta: metaInput("cif_ss", "CA"),
		Games: []RawRow{
			{
				"home_team":  "Lincoln (1)",
				"away_team":  "Washington",
				"home_score": "73",
				"away_score": "60",
				"date":       "2024-02-10",
				"tournament": "CIF-SS Open Division",
				"round":      "Semifinal",
			},
		},
	}

	partial := svc.BuildSource(context.Background(), tables)

	require.Len(t, partial.FactGame, 1)
	g := partial.FactGame[0]
	require.Equal(t, "2023-24", g.Season, "season derived from a February date")
	require.Equal(t, "Lincoln", g.HomeTeamName, "seed annotation stripped")
	require.NotNil(t, g.HomeScore)
	require.Equal(t, 73, *g.HomeScore)
	require.Equal(t, g.HomeTeamUID, g.WinnerTeamUID)
	require.Equal(t, "cif_ss", g.SourceID)

	require.Len(t, partial.DimCompetition, 1)
	comp := partial.DimCompetition[0]
	require.Equal(t, "CIF-SS Open Division", comp.Name)
	require.Equal(t, "2023-24", comp.Season)
	require.Equal(t, "US", comp.Country)
	require.Equal(t, "CA", comp.State)

	require.Len(t, partial.DimTeam, 2)
}

func TestBuildSourceSeasonRule(t *testing.T) {
	t.Parallel()

	svc := NewMergeService(nil)
	partial := svc.BuildSource(context.Background(), SourceTables{
		Meta: metaInput("ghsa", "GA"),
		Games: []RawRow{
			gameRow("A Team", "B Team", "50", "45", "2023-08-15"),
			gameRow("C Team", "D Team", "50", "45", "2023-07-15"),
		},
	})

	require.Len(t, partial.FactGame, 2)
	require.Equal(t, "2023-24", partial.FactGame[0].Season, "August starts the new season")
	require.Equal(t, "2022-23", partial.FactGame[1].Season, "July belongs to the prior season")
}

func TestBuildSourceEmptyTablesAreSilent(t *testing.T) {
	t.Parallel()

	svc := NewMergeService(nil)
	partial := svc.BuildSource(context.Background(), SourceTables{
		Meta:  metaInput("uil", "TX"),
		Teams: []RawRow{{"team_name": "Duncanville"}},
	})

	require.Len(t, partial.DimSource, 1)
	require.Len(t, partial.DimTeam, 1, "a source with only a teams table still contributes to dim_team")
	require.Empty(t, partial.FactGame)
	require.Empty(t, partial.FactBox)
}

func TestBuildSourceFactPlaceholders(t *testing.T) {
	t.Parallel()

	svc := NewMergeService(nil)
	partial := svc.BuildSource(context.Background(), SourceTables{
		Meta: metaInput("maxpreps", "CA"),
		Box: []RawRow{
			{"points": "22"}, // no game, team, or player keys at all
		},
	})

	require.Len(t, partial.FactBox, 1, "rows with absent keys are kept, not dropped")
	box := partial.FactBox[0]
	require.Equal(t, facts.PlaceholderKey, box.GameUID)
	require.Equal(t, facts.PlaceholderKey, box.TeamUID)
	require.Equal(t, facts.PlaceholderKey, box.PlayerRef)
	require.NotNil(t, box.Points)
	require.Equal(t, 22, *box.Points)
}

func TestBuildUnifiedDeduplicatesByUID(t *testing.T) {
	t.Parallel()

	svc := NewMergeService(nil)
	inputs := map[string]SourceTables{
		"cif_ss": {
			Meta: metaInput("cif_ss", "CA"),
			Games: []RawRow{
				gameRow("Lincoln", "Washington", "73", "60", "2024-02-10"),
				gameRow("Lincoln", "Washington", "73", "60", "2024-02-10"), // exact dup
			},
		},
	}

	unified, err := svc.BuildUnified(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, unified.FactGame, 1, "fact_game deduplicated on game uid")
	require.Len(t, unified.DimTeam, 2)
	require.Len(t, unified.DimCompetition, 1)
}

func TestMergeAssociativity(t *testing.T) {
	t.Parallel()

	svc := NewMergeService(nil)
	ctx := context.Background()

	sourceA := SourceTables{Meta: metaInput("cif_ss", "CA"), Games: []RawRow{gameRow("Lincoln", "Washington", "73", "60", "2024-02-10")}}
	sourceB := SourceTables{Meta: metaInput("ghsa", "GA"), Games: []RawRow{gameRow("Wheeler", "Pace", "66", "61", "2024-02-12")}}
	sourceC := SourceTables{Meta: metaInput("uil", "TX"), Teams: []RawRow{{"team_name": "Duncanville"}}}

	partialA := svc.BuildSource(ctx, sourceA)
	partialB := svc.BuildSource(ctx, sourceB)
	partialC := svc.BuildSource(ctx, sourceC)

	stepwise := svc.MergePartials(svc.MergePartials(partialA, partialB), partialC)
	oneShot := svc.MergePartials(partialA, partialB, partialC)

	require.Equal(t, oneShot.DimTeam, stepwise.DimTeam)
	require.Equal(t, oneShot.FactGame, stepwise.FactGame)
	require.Equal(t, oneShot.DimCompetition, stepwise.DimCompetition)
	require.Equal(t, oneShot.DimSource, stepwise.DimSource)

	// Order of source processing must not affect the final content either.
	reordered := svc.MergePartials(partialC, partialA, partialB)
	require.Equal(t, oneShot.FactGame, reordered.FactGame)
	require.Equal(t, oneShot.DimTeam, reordered.DimTeam)
}

func TestBuildUnifiedIdempotent(t *testing.T) {
	t.Parallel()

	svc := NewMergeService(nil)
	inputs := map[string]SourceTables{
		"cif_ss": {Meta: metaInput("cif_ss", "CA"), Games: []RawRow{gameRow("Lincoln", "Washington", "73", "60", "2024-02-10")}},
		"ghsa":   {Meta: metaInput("ghsa", "GA"), Games: []RawRow{gameRow("Wheeler", "Pace", "66", "61", "2024-02-12")}},
	}

	first, err := NewMergeService(nil).BuildUnified(context.Background(), inputs)
	require.NoError(t, err)
	second, err := svc.BuildUnified(context.Background(), inputs)
	require.NoError(t, err)
	require.Equal(t, first, second, "two runs over identical inputs must be byte-identical")
}

func TestLookupAliasOrder(t *testing.T) {
	t.Parallel()

	row := RawRow{"team": "Fallback", "team_name": "Preferred"}
	value, ok := lookup(row, teamNameAliases...)
	require.True(t, ok)
	require.Equal(t, "Preferred", value, "first alias in the candidate list wins")

	_, ok = lookup(RawRow{"team_name": "   "}, teamNameAliases...)
	require.False(t, ok, "blank values are treated as absent")
}
