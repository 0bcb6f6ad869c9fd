package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/config"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/game"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/team"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/logging"
)

// Check names, stable across releases; report consumers key on these.
const (
	CheckScoreValidity    = "score_validity"
	CheckNoDuplicates     = "no_duplicates"
	CheckBracketStructure = "bracket_structure"
	CheckTeamConsistency  = "team_consistency"
	CheckDateValidity     = "date_validity"
)

var checkOrder = []string{
	CheckScoreValidity,
	CheckNoDuplicates,
	CheckBracketStructure,
	CheckTeamConsistency,
	CheckDateValidity,
}

// ValidationConfig carries the tunables behind the checks. The bracket slack
// and season window are empirical for high-school basketball; other sports
// override them through configuration rather than code.
type ValidationConfig struct {
	MaxPlausibleScore int
	BracketSlack      int
	WindowStartMonth  time.Month
	WindowStartDay    int
	WindowEndMonth    time.Month
	WindowEndDay      int
	ErrorPenalty      float64
	WarningPenalty    float64
	HealthyThreshold  float64
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxPlausibleScore: 200,
		BracketSlack:      5,
		WindowStartMonth:  time.November,
		WindowStartDay:    1,
		WindowEndMonth:    time.April,
		WindowEndDay:      1,
		ErrorPenalty:      0.10,
		WarningPenalty:    0.05,
		HealthyThreshold:  0.70,
	}
}

func ValidationConfigFrom(cfg config.Config) ValidationConfig {
	return ValidationConfig{
		MaxPlausibleScore: cfg.MaxPlausibleScore,
		BracketSlack:      cfg.BracketSlack,
		WindowStartMonth:  time.Month(cfg.WindowStartMonth),
		WindowStartDay:    cfg.WindowStartDay,
		WindowEndMonth:    time.Month(cfg.WindowEndMonth),
		WindowEndDay:      cfg.WindowEndDay,
		ErrorPenalty:      cfg.ErrorPenalty,
		WarningPenalty:    cfg.WarningPenalty,
		HealthyThreshold:  cfg.HealthyThreshold,
	}
}

// Violation is one recorded check failure. Violations are data, never raised
// as errors; a batch run always completes.
type Violation struct {
	Check   string `json:"check"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.ID == "" {
		return fmt.Sprintf("%s: %s", v.Check, v.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", v.Check, v.ID, v.Message)
}

// ValidationReport summarizes one (scope, season) partition. Counts are always
// exact; any "first N" listing is a presentation concern handled elsewhere.
type ValidationReport struct {
	Scope       string      `json:"scope"`
	Season      string      `json:"season"`
	GameCount   int         `json:"game_count"`
	TeamCount   int         `json:"team_count"`
	Errors      []Violation `json:"errors"`
	Warnings    []Violation `json:"warnings"`
	HealthScore float64     `json:"health_score"`
}

// Healthy reports whether the scope clears the configured threshold.
func (r ValidationReport) Healthy(threshold float64) bool {
	return r.HealthScore >= threshold
}

// ValidateInput is one validation scope: the games (and optionally teams) for
// a single state-or-source plus season partition.
type ValidateInput struct {
	Scope  string
	Season string
	Games  []game.Game
	Teams  []team.Team
}

// ValidationService runs the structural and semantic checks over one scope's
// canonical game set and produces a scored report.
type ValidationService struct {
	cfg    ValidationConfig
	logger *logging.Logger
}

func NewValidationService(cfg ValidationConfig, logger *logging.Logger) *ValidationService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ErrorPenalty == 0 && cfg.WarningPenalty == 0 && cfg.MaxPlausibleScore == 0 {
		cfg = DefaultValidationConfig()
	}
	return &ValidationService{cfg: cfg, logger: logger}
}

func (s *ValidationService) Validate(ctx context.Context, input ValidateInput) ValidationReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidationService.Validate")
	defer span.End()

	report := ValidationReport{
		Scope:     input.Scope,
		Season:    strings.TrimSpace(input.Season),
		GameCount: len(input.Games),
	}

	teamUIDs := distinctTeamUIDs(input.Games)
	report.TeamCount = len(teamUIDs)
	if report.TeamCount == 0 && len(input.Teams) > 0 {
		report.TeamCount = len(input.Teams)
	}

	s.checkScores(&report, input.Games)
	s.checkDuplicates(&report, input.Games)
	s.checkBracketStructure(&report, len(teamUIDs), len(input.Games))
	s.checkTeamConsistency(&report, input.Games)
	s.checkDates(&report, input.Games)

	report.HealthScore = s.score(len(report.Errors), len(report.Warnings))

	s.logger.InfoContext(ctx, "validated scope",
		"scope", report.Scope,
		"season", report.Season,
		"games", report.GameCount,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings),
		"health", report.HealthScore,
	)
	return report
}

// score floors at zero and rounds away float drift so threshold comparisons
// stay exact.
func (s *ValidationService) score(errorCount, warningCount int) float64 {
	score := 1.0 - s.cfg.ErrorPenalty*float64(errorCount) - s.cfg.WarningPenalty*float64(warningCount)
	if score < 0 {
		score = 0
	}
	return math.Round(score*1e4) / 1e4
}

func (s *ValidationService) checkScores(report *ValidationReport, games []game.Game) {
	for _, g := range games {
		switch {
		case g.HomeScore == nil && g.AwayScore == nil:
			// Scheduled or unreported game: fine.
		case g.HomeScore == nil || g.AwayScore == nil:
			report.addError(CheckScoreValidity, g.GameUID, "mismatched_scores: exactly one side has a score")
		default:
			sides := []struct {
				name  string
				score int
			}{{"home", *g.HomeScore}, {"away", *g.AwayScore}}
			for _, side := range sides {
				if side.score < 0 {
					report.addError(CheckScoreValidity, g.GameUID, fmt.Sprintf("negative %s score %d", side.name, side.score))
				} else if side.score > s.cfg.MaxPlausibleScore {
					report.addError(CheckScoreValidity, g.GameUID, fmt.Sprintf("implausible %s score %d (max %d)", side.name, side.score, s.cfg.MaxPlausibleScore))
				}
			}
		}
	}
}

func (s *ValidationService) checkDuplicates(report *ValidationReport, games []game.Game) {
	seen := make(map[string]int, len(games))
	for _, g := range games {
		signature := duplicateSignature(g)
		seen[signature]++
		if seen[signature] > 1 {
			report.addError(CheckNoDuplicates, g.GameUID, "duplicate game signature "+signature)
		}
	}
}

// duplicateSignature is order-insensitive on teams and scores so a mirrored
// home/away listing of the same game still collides.
func duplicateSignature(g game.Game) string {
	teamA, teamB := g.HomeTeamUID, g.AwayTeamUID
	if teamB < teamA {
		teamA, teamB = teamB, teamA
	}
	dateKey := "nodate"
	if g.Date != nil {
		dateKey = g.Date.Format("2006-01-02")
	}
	scoreA, scoreB := scoreKey(g.HomeScore), scoreKey(g.AwayScore)
	if scoreB < scoreA {
		scoreA, scoreB = scoreB, scoreA
	}
	return strings.Join([]string{teamA, teamB, dateKey, scoreA, scoreB}, "|")
}

func scoreKey(score *int) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%03d", *score)
}

func (s *ValidationService) checkBracketStructure(report *ValidationReport, teamCount, gameCount int) {
	if teamCount == 0 {
		return
	}
	if gameCount < teamCount-1 {
		report.addError(CheckBracketStructure, "",
			fmt.Sprintf("too few games for single elimination: %d games for %d teams (expect >= %d)", gameCount, teamCount, teamCount-1))
	}
	if gameCount > teamCount+s.cfg.BracketSlack {
		report.addError(CheckBracketStructure, "",
			fmt.Sprintf("too many games: %d games for %d teams (expect <= %d)", gameCount, teamCount, teamCount+s.cfg.BracketSlack))
	}
}

func (s *ValidationService) checkTeamConsistency(report *ValidationReport, games []game.Game) {
	namesByUID := make(map[string]map[string]struct{})
	record := func(uid, name, gameUID string) {
		if strings.TrimSpace(name) == "" {
			report.addError(CheckTeamConsistency, gameUID, "blank team name")
			return
		}
		if namesByUID[uid] == nil {
			namesByUID[uid] = make(map[string]struct{})
		}
		namesByUID[uid][name] = struct{}{}
	}
	for _, g := range games {
		record(g.HomeTeamUID, g.HomeTeamName, g.GameUID)
		record(g.AwayTeamUID, g.AwayTeamName, g.GameUID)
	}

	uids := make([]string, 0, len(namesByUID))
	for uid := range namesByUID {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	for _, uid := range uids {
		if len(namesByUID[uid]) > 1 {
			names := make([]string, 0, len(namesByUID[uid]))
			for name := range namesByUID[uid] {
				names = append(names, name)
			}
			sort.Strings(names)
			report.addError(CheckTeamConsistency, uid, "one team id maps to multiple names: "+strings.Join(names, " / "))
		}
	}
}

func (s *ValidationService) checkDates(report *ValidationReport, games []game.Game) {
	endYear, err := game.SeasonEndYear(report.Season)
	if err != nil {
		if hasDatedGame(games) {
			report.addWarning(CheckDateValidity, "", "season label unparseable, date window not checked: "+report.Season)
		}
		return
	}
	windowStart := time.Date(endYear-1, s.cfg.WindowStartMonth, s.cfg.WindowStartDay, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(endYear, s.cfg.WindowEndMonth, s.cfg.WindowEndDay, 23, 59, 59, 0, time.UTC)

	for _, g := range games {
		if g.Date == nil {
			// Bracket pages often omit dates; not a violation.
			continue
		}
		if g.Date.Before(windowStart) || g.Date.After(windowEnd) {
			report.addError(CheckDateValidity, g.GameUID,
				fmt.Sprintf("out_of_season_date: %s outside %s..%s",
					g.Date.Format("2006-01-02"), windowStart.Format("2006-01-02"), windowEnd.Format("2006-01-02")))
		}
	}
}

func (r *ValidationReport) addError(check, id, message string) {
	r.Errors = append(r.Errors, Violation{Check: check, ID: id, Message: message})
}

func (r *ValidationReport) addWarning(check, id, message string) {
	r.Warnings = append(r.Warnings, Violation{Check: check, ID: id, Message: message})
}

func distinctTeamUIDs(games []game.Game) map[string]struct{} {
	uids := make(map[string]struct{}, len(games)*2)
	for _, g := range games {
		if g.HomeTeamUID != "" {
			uids[g.HomeTeamUID] = struct{}{}
		}
		if g.AwayTeamUID != "" {
			uids[g.AwayTeamUID] = struct{}{}
		}
	}
	return uids
}

func hasDatedGame(games []game.Game) bool {
	for _, g := range games {
		if g.Date != nil {
			return true
		}
	}
	return false
}
