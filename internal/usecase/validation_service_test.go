package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/game"
)

func intPtr(v int) *int { return &v }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// bracketGames builds a clean single-elimination bracket: teamCount distinct
// teams, teamCount-1 games, all scores in a plausible range, dated mid-season.
func bracketGames(teamCount int) []game.Game {
	games := make([]game.Game, 0, teamCount-1)
	type slot struct{ uid, name string }
	round := make([]slot, 0, teamCount)
	for i := 0; i < teamCount; i++ {
		round = append(round, slot{uid: fmt.Sprintf("team_%02d", i), name: fmt.Sprintf("Team %02d", i)})
	}
	gameNum := 0
	for len(round) > 1 {
		var winners []slot
		for i := 0; i+1 < len(round); i += 2 {
			home, away := round[i], round[i+1]
			games = append(games, game.Game{
				GameUID:      fmt.Sprintf("game_%03d", gameNum),
				Season:       "2023-24",
				Date:         datePtr(2024, time.February, 1+gameNum%28),
				HomeTeamUID:  home.uid,
				AwayTeamUID:  away.uid,
				HomeTeamName: home.name,
				AwayTeamName: away.name,
				HomeScore:    intPtr(60 + gameNum%40),
				AwayScore:    intPtr(41 + gameNum%19),
			})
			gameNum++
			winners = append(winners, home)
		}
		round = winners
	}
	return games
}

func TestCleanBracketScoresPerfect(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	games := bracketGames(32)
	require.Len(t, games, 31)

	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})

	require.Empty(t, report.Errors)
	require.Empty(t, report.Warnings)
	require.Equal(t, 1.0, report.HealthScore)
	require.Equal(t, 31, report.GameCount)
	require.Equal(t, 32, report.TeamCount)
	require.True(t, report.Healthy(0.70))
}

func TestDuplicateGameReportsOneViolation(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	base := game.Game{
		GameUID:      "g1",
		Season:       "2023-24",
		Date:         datePtr(2024, time.January, 20),
		HomeTeamUID:  "lincoln",
		AwayTeamUID:  "washington",
		HomeTeamName: "Lincoln",
		AwayTeamName: "Washington",
		HomeScore:    intPtr(70),
		AwayScore:    intPtr(65),
	}
	// Same signature with home/away and scores mirrored.
	mirrored := base
	mirrored.GameUID = "g2"
	mirrored.HomeTeamUID, mirrored.AwayTeamUID = base.AwayTeamUID, base.HomeTeamUID
	mirrored.HomeTeamName, mirrored.AwayTeamName = base.AwayTeamName, base.HomeTeamName
	mirrored.HomeScore, mirrored.AwayScore = base.AwayScore, base.HomeScore

	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: []game.Game{base, mirrored}})

	duplicates := violationsFor(report.Errors, CheckNoDuplicates)
	require.Len(t, duplicates, 1, "the duplicate pair yields exactly one violation")
}

func TestMismatchedScore(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	games := []game.Game{{
		GameUID:      "g1",
		Season:       "2023-24",
		HomeTeamUID:  "a",
		AwayTeamUID:  "b",
		HomeTeamName: "A Team",
		AwayTeamName: "B Team",
		HomeScore:    intPtr(55),
	}}

	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})

	scoreViolations := violationsFor(report.Errors, CheckScoreValidity)
	require.Len(t, scoreViolations, 1)
	require.Contains(t, scoreViolations[0].Message, "mismatched_scores")
}

func TestImplausibleScore(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	games := []game.Game{{
		GameUID:      "g1",
		Season:       "2023-24",
		HomeTeamUID:  "a",
		AwayTeamUID:  "b",
		HomeTeamName: "A Team",
		AwayTeamName: "B Team",
		HomeScore:    intPtr(250),
		AwayScore:    intPtr(60),
	}}

	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})
	require.Len(t, violationsFor(report.Errors, CheckScoreValidity), 1)
}

func TestOutOfWindowDate(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	games := []game.Game{{
		GameUID:      "g1",
		Season:       "2023-24",
		Date:         datePtr(2024, time.June, 15),
		HomeTeamUID:  "a",
		AwayTeamUID:  "b",
		HomeTeamName: "A Team",
		AwayTeamName: "B Team",
		HomeScore:    intPtr(60),
		AwayScore:    intPtr(55),
	}}

	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})

	dateViolations := violationsFor(report.Errors, CheckDateValidity)
	require.Len(t, dateViolations, 1)
	require.Contains(t, dateViolations[0].Message, "out_of_season_date")
}

func TestUndatedGamesSkipDateCheck(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	games := []game.Game{{
		GameUID:      "g1",
		Season:       "2023-24",
		HomeTeamUID:  "a",
		AwayTeamUID:  "b",
		HomeTeamName: "A Team",
		AwayTeamName: "B Team",
		HomeScore:    intPtr(60),
		AwayScore:    intPtr(55),
	}}

	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})
	require.Empty(t, violationsFor(report.Errors, CheckDateValidity), "bracket pages often omit dates")
}

func TestTeamConsistency(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	games := []game.Game{
		{GameUID: "g1", Season: "2023-24", HomeTeamUID: "lincoln", AwayTeamUID: "wash", HomeTeamName: "Lincoln", AwayTeamName: "Washington", HomeScore: intPtr(60), AwayScore: intPtr(50)},
		{GameUID: "g2", Season: "2023-24", HomeTeamUID: "lincoln", AwayTeamUID: "jeff", HomeTeamName: "Lincoln HS", AwayTeamName: "", HomeScore: intPtr(62), AwayScore: intPtr(58)},
	}

	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})

	consistency := violationsFor(report.Errors, CheckTeamConsistency)
	require.Len(t, consistency, 2, "one blank name and one uid with two display names")
}

func TestBracketStructureBounds(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)

	// 4 distinct teams but a single game: G < T-1.
	games := []game.Game{
		{GameUID: "g1", Season: "2023-24", HomeTeamUID: "a", AwayTeamUID: "b", HomeTeamName: "A Team", AwayTeamName: "B Team", HomeScore: intPtr(60), AwayScore: intPtr(50)},
		{GameUID: "g2", Season: "2023-24", HomeTeamUID: "c", AwayTeamUID: "d", HomeTeamName: "C Team", AwayTeamName: "D Team", HomeScore: intPtr(61), AwayScore: intPtr(51)},
	}
	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})
	require.Len(t, violationsFor(report.Errors, CheckBracketStructure), 1)
}

func TestHealthScoreMonotonicity(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	previous := 1.1
	for errorCount := 0; errorCount <= 12; errorCount++ {
		score := svc.score(errorCount, 0)
		require.LessOrEqual(t, score, previous, "adding an error can never raise the score")
		require.GreaterOrEqual(t, score, 0.0, "score is floored at zero")
		previous = score
	}
	require.Equal(t, 1.0, svc.score(0, 0))
	require.Equal(t, 0.85, svc.score(1, 1))
	require.Equal(t, 0.0, svc.score(20, 0))
}

func TestReportEnvelope(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(DefaultValidationConfig(), nil)
	games := []game.Game{{
		GameUID:      "g1",
		Season:       "2023-24",
		HomeTeamUID:  "a",
		AwayTeamUID:  "b",
		HomeTeamName: "A Team",
		AwayTeamName: "B Team",
		HomeScore:    intPtr(55),
	}}
	report := svc.Validate(context.Background(), ValidateInput{Scope: "ca", Season: "2023-24", Games: games})

	envelope := report.Envelope(0.70, 10)
	require.Equal(t, 5, envelope.TotalChecks)
	require.Equal(t, envelope.TotalChecks, envelope.PassedChecks+envelope.FailedChecks)
	require.Equal(t, 1, envelope.TotalGames)

	var scoreCheck *CheckSummary
	for i := range envelope.Checks {
		if envelope.Checks[i].Name == CheckScoreValidity {
			scoreCheck = &envelope.Checks[i]
		}
	}
	require.NotNil(t, scoreCheck)
	require.False(t, scoreCheck.Passed)
	require.Equal(t, 1, scoreCheck.ErrorCount)
}

func TestEnvelopeTruncationKeepsExactCounts(t *testing.T) {
	t.Parallel()

	report := ValidationReport{Scope: "ca", Season: "2023-24", GameCount: 30}
	for i := 0; i < 25; i++ {
		report.addError(CheckScoreValidity, fmt.Sprintf("g%d", i), "implausible score")
	}

	envelope := report.Envelope(0.70, 10)
	for _, check := range envelope.Checks {
		if check.Name != CheckScoreValidity {
			continue
		}
		require.Len(t, check.Violations, 10, "listing is capped for display")
		require.Equal(t, 25, check.ErrorCount, "counts stay exact")
	}
}

func violationsFor(violations []Violation, check string) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Check == check {
			out = append(out, v)
		}
	}
	return out
}
