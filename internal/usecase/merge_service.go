package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/competition"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/dataset"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/facts"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/game"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/source"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/domain/team"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/identity"
	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/logging"
)

// RawRow is one loosely-keyed row handed over by an extraction adapter.
// Publishers disagree on column names, so values are resolved through ordered
// alias lists; past this boundary everything is a tagged struct.
type RawRow map[string]string

// Ordered column aliases per logical field. First present non-blank value wins.
var (
	teamNameAliases   = []string{"team_name", "name", "team", "school", "school_name"}
	homeTeamAliases   = []string{"home_team", "team_a", "home", "winner"}
	awayTeamAliases   = []string{"away_team", "team_b", "away", "loser"}
	homeScoreAliases  = []string{"home_score", "score_a", "score_home"}
	awayScoreAliases  = []string{"away_score", "score_b", "score_away"}
	dateAliases       = []string{"date", "game_date", "played_at", "start_date"}
	seasonAliases     = []string{"season", "season_label", "year"}
	compNameAliases   = []string{"competition", "tournament", "event", "bracket", "league"}
	venueAliases      = []string{"venue", "location", "site"}
	roundAliases      = []string{"round", "round_label", "bracket_round"}
	eventIDAliases    = []string{"event_id", "game_id", "external_id"}
	sourceURLAliases  = []string{"source_url", "url", "page_url"}
	cityAliases       = []string{"city", "town"}
	playerRefAliases  = []string{"player_id", "player_ref", "player"}
	playerNameAliases = []string{"player_name", "player", "name"}
	gameRefAliases    = []string{"game_uid", "game_id", "game"}
	teamRefAliases    = []string{"team_uid", "team_id", "team", "team_name"}
	pointsAliases     = []string{"points", "pts"}
	reboundsAliases   = []string{"rebounds", "reb", "trb"}
	assistsAliases    = []string{"assists", "ast"}
	minutesAliases    = []string{"minutes", "min", "mp"}
	numberAliases     = []string{"number", "jersey", "no"}
	positionAliases   = []string{"position", "pos"}
	gradYearAliases   = []string{"grad_year", "class_of", "graduation"}
	eventTypeAliases  = []string{"event_type", "type", "kind"}
	detailAliases     = []string{"detail", "description", "note"}
	genderAliases     = []string{"gender", "division_gender", "sex"}
	levelAliases      = []string{"level", "classification", "division"}
)

func lookup(row RawRow, aliases ...string) (string, bool) {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok {
			value = strings.TrimSpace(value)
			if value != "" {
				return value, true
			}
		}
	}
	return "", false
}

func lookupOr(row RawRow, fallback string, aliases ...string) string {
	if value, ok := lookup(row, aliases...); ok {
		return value
	}
	return fallback
}

func lookupInt(row RawRow, aliases ...string) *int {
	value, ok := lookup(row, aliases...)
	if !ok {
		return nil
	}
	return parseIntValue(value)
}

// SourceMetaInput is the per-source static configuration supplied by the
// caller; nothing here is inferred from document content.
type SourceMetaInput struct {
	SourceKey  string `validate:"required"`
	SourceType string
	Region     string
	Country    string `validate:"required"`
	State      string
	BaseURL    string `validate:"omitempty,url"`
	FetchedAt  time.Time
	// Organizer separates same-named teams entered in independent events
	// during one season; leave empty for association sources.
	Organizer string
	// Optional per-source overrides for fields the raw documents omit.
	Season string
	Gender string
	Level  string
}

// SourceTables groups every raw extracted table for one source. Any subset
// may be empty; an absent table is a silent no-op, never an error.
type SourceTables struct {
	Meta    SourceMetaInput
	Teams   []RawRow
	Games   []RawRow
	Box     []RawRow
	Rosters []RawRow
	Events  []RawRow
}

// MergeService builds the unified dimension/fact table set from per-source raw
// tables. It owns the canonical tables only for the duration of one build call
// and keeps no cross-call state, so repeated builds over identical inputs are
// byte-identical.
type MergeService struct {
	logger *logging.Logger
}

func NewMergeService(logger *logging.Logger) *MergeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MergeService{logger: logger}
}

// BuildUnified merges every source's tables and deduplicates by canonical key.
// Sources are folded in sorted key order so the result is independent of map
// iteration and of how the caller batched the inputs.
func (s *MergeService) BuildUnified(ctx context.Context, inputs map[string]SourceTables) (dataset.Unified, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MergeService.BuildUnified")
	defer span.End()

	keys := make([]string, 0, len(inputs))
	for key := range inputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var unified dataset.Unified
	for _, key := range keys {
		partial := s.BuildSource(ctx, inputs[key])
		unified.Append(partial)
	}
	unified.Dedupe()
	return unified, nil
}

// MergePartials folds pre-built per-source partials into one deduplicated set.
// The fold is associative: merging {A,B} then {C} equals merging {A,B,C}.
func (s *MergeService) MergePartials(partials ...dataset.Unified) dataset.Unified {
	var unified dataset.Unified
	for _, partial := range partials {
		unified.Append(partial)
	}
	unified.Dedupe()
	return unified
}

// BuildSource maps one source's raw tables into canonical partial tables. It
// never fails: unparseable rows degrade to partial data rather than aborting
// the other tables of the same source.
func (s *MergeService) BuildSource(ctx context.Context, tables SourceTables) dataset.Unified {
	_, span := startUsecaseSpan(ctx, "usecase.MergeService.BuildSource")
	defer span.End()

	meta := source.NewMeta(
		tables.Meta.SourceKey,
		tables.Meta.SourceType,
		tables.Meta.Region,
		tables.Meta.Country,
		tables.Meta.State,
		tables.Meta.BaseURL,
		tables.Meta.FetchedAt,
	)
	partial := dataset.Unified{DimSource: []source.Meta{meta}}

	for _, row := range tables.Teams {
		if mapped, ok := s.mapTeam(tables.Meta, row); ok {
			partial.DimTeam = append(partial.DimTeam, mapped)
		}
	}
	for _, row := range tables.Games {
		mappedGame, mappedComp, homeTeam, awayTeam, ok := s.mapGame(tables.Meta, meta, row)
		if !ok {
			continue
		}
		partial.FactGame = append(partial.FactGame, mappedGame)
		partial.DimCompetition = append(partial.DimCompetition, mappedComp)
		partial.DimTeam = append(partial.DimTeam, homeTeam, awayTeam)
	}
	for _, row := range tables.Box {
		partial.FactBox = append(partial.FactBox, s.mapBoxRow(meta, row))
	}
	for _, row := range tables.Rosters {
		partial.FactRoster = append(partial.FactRoster, s.mapRosterRow(meta, row))
	}
	for _, row := range tables.Events {
		partial.FactEvent = append(partial.FactEvent, s.mapEventRow(meta, row))
	}

	s.logger.InfoContext(ctx, "built source partial",
		"source", meta.SourceKey,
		"teams", len(partial.DimTeam),
		"games", len(partial.FactGame),
	)
	return partial
}

func (s *MergeService) mapTeam(meta SourceMetaInput, row RawRow) (team.Team, bool) {
	rawName, ok := lookup(row, teamNameAliases...)
	if !ok {
		return team.Team{}, false
	}
	name, _ := identity.ExtractSeed(rawName)
	season := lookupOr(row, meta.Season, seasonAliases...)
	return team.Team{
		TeamUID:   team.UID(meta.SourceKey, name, season, meta.Organizer),
		TeamName:  name,
		SchoolUID: lookupOr(row, "", "school_uid", "school_id"),
		OrgType:   team.NormalizeOrgType(lookupOr(row, "", "org_type")),
		Country:   strings.ToUpper(lookupOr(row, meta.Country, "country")),
		State:     strings.ToUpper(lookupOr(row, meta.State, "state")),
		City:      lookupOr(row, "", cityAliases...),
	}, true
}

func (s *MergeService) mapGame(meta SourceMetaInput, sourceMeta source.Meta, row RawRow) (game.Game, competition.Competition, team.Team, team.Team, bool) {
	rawHome, okHome := lookup(row, homeTeamAliases...)
	rawAway, okAway := lookup(row, awayTeamAliases...)
	if !okHome || !okAway {
		return game.Game{}, competition.Competition{}, team.Team{}, team.Team{}, false
	}
	homeName, _ := identity.ExtractSeed(rawHome)
	awayName, _ := identity.ExtractSeed(rawAway)

	date := parseDateValue(lookupOr(row, "", dateAliases...))
	season := lookupOr(row, "", seasonAliases...)
	if season == "" {
		season = meta.Season
	}
	if season == "" && date != nil {
		season = game.SeasonForDate(*date)
	}

	dateKey := ""
	if date != nil {
		dateKey = date.Format("2006-01-02")
	}
	eventID := lookupOr(row, "", eventIDAliases...)
	gameUID := game.UID(meta.SourceKey, season, dateKey, homeName, awayName, eventID)

	compName := lookupOr(row, "", compNameAliases...)
	if compName == "" {
		compName = strings.TrimSpace(meta.SourceKey + " " + season)
	}
	comp := competition.Competition{
		CompetitionUID: competition.UID(meta.SourceKey, compName, season),
		Name:           compName,
		Circuit:        sourceMeta.SourceType,
		Level:          competition.NormalizeLevel(lookupOr(row, meta.Level, levelAliases...)),
		Gender:         competition.NormalizeGender(lookupOr(row, meta.Gender, genderAliases...)),
		AgeGroup:       lookupOr(row, "", "age_group"),
		Season:         season,
		Country:        sourceMeta.Country,
		State:          sourceMeta.State,
	}

	homeTeam := team.Team{
		TeamUID:  team.UID(meta.SourceKey, homeName, season, meta.Organizer),
		TeamName: homeName,
		OrgType:  team.OrgSchool,
		Country:  sourceMeta.Country,
		State:    sourceMeta.State,
	}
	awayTeam := team.Team{
		TeamUID:  team.UID(meta.SourceKey, awayName, season, meta.Organizer),
		TeamName: awayName,
		OrgType:  team.OrgSchool,
		Country:  sourceMeta.Country,
		State:    sourceMeta.State,
	}

	mapped := game.Game{
		GameUID:        gameUID,
		CompetitionUID: comp.CompetitionUID,
		Season:         season,
		Date:           date,
		Venue:          lookupOr(row, "", venueAliases...),
		HomeTeamUID:    homeTeam.TeamUID,
		AwayTeamUID:    awayTeam.TeamUID,
		HomeTeamName:   homeName,
		AwayTeamName:   awayName,
		HomeScore:      lookupInt(row, homeScoreAliases...),
		AwayScore:      lookupInt(row, awayScoreAliases...),
		RoundLabel:     lookupOr(row, "", roundAliases...),
		SourceID:       sourceMeta.SourceID,
		SourceURL:      lookupOr(row, meta.BaseURL, sourceURLAliases...),
		FetchedAt:      sourceMeta.FetchedAt,
	}
	mapped.WinnerTeamUID = mapped.Winner()
	return mapped, comp, homeTeam, awayTeam, true
}

// Fact rows keep every input row; required-but-absent keys are filled with the
// null placeholder instead of dropping the row.
func (s *MergeService) mapBoxRow(meta source.Meta, row RawRow) facts.BoxScoreRow {
	return facts.BoxScoreRow{
		GameUID:    facts.OrPlaceholder(lookupOr(row, "", gameRefAliases...)),
		TeamUID:    facts.OrPlaceholder(lookupOr(row, "", teamRefAliases...)),
		PlayerRef:  facts.OrPlaceholder(lookupOr(row, "", playerRefAliases...)),
		PlayerName: lookupOr(row, "", playerNameAliases...),
		Points:     lookupInt(row, pointsAliases...),
		Rebounds:   lookupInt(row, reboundsAliases...),
		Assists:    lookupInt(row, assistsAliases...),
		Minutes:    lookupInt(row, minutesAliases...),
		SourceID:   meta.SourceID,
	}
}

func (s *MergeService) mapRosterRow(meta source.Meta, row RawRow) facts.RosterRow {
	return facts.RosterRow{
		CompetitionUID: facts.OrPlaceholder(lookupOr(row, "", "competition_uid", "competition_id")),
		TeamUID:        facts.OrPlaceholder(lookupOr(row, "", teamRefAliases...)),
		PlayerRef:      facts.OrPlaceholder(lookupOr(row, "", playerRefAliases...)),
		PlayerName:     lookupOr(row, "", playerNameAliases...),
		Number:         lookupOr(row, "", numberAliases...),
		Position:       lookupOr(row, "", positionAliases...),
		GradYear:       lookupInt(row, gradYearAliases...),
		SourceID:       meta.SourceID,
	}
}

func (s *MergeService) mapEventRow(meta source.Meta, row RawRow) facts.EventRow {
	return facts.EventRow{
		CompetitionUID: facts.OrPlaceholder(lookupOr(row, "", "competition_uid", "competition_id")),
		GameUID:        facts.OrPlaceholder(lookupOr(row, "", gameRefAliases...)),
		TeamUID:        facts.OrPlaceholder(lookupOr(row, "", teamRefAliases...)),
		PlayerRef:      lookupOr(row, "", playerRefAliases...),
		EventType:      facts.OrPlaceholder(lookupOr(row, "", eventTypeAliases...)),
		Detail:         lookupOr(row, "", detailAliases...),
		SourceID:       meta.SourceID,
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

func parseDateValue(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

func parseIntValue(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	negative := false
	if strings.HasPrefix(value, "-") {
		negative = true
		value = value[1:]
	}
	total := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return nil
		}
		total = total*10 + int(r-'0')
	}
	if negative {
		total = -total
	}
	return &total
}
