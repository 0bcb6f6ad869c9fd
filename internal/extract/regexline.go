package extract

import (
	"regexp"
	"strings"
)

// Default single-line result families. Named groups supply every tuple field.
//
//	Semifinal | Lincoln 73, Washington 60
//	Semifinal - Game 2: Lincoln 73 vs Washington 60
var defaultLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?P<round>[^|]+?)\s*\|\s*(?P<team_a>.+?)\s+(?P<score_a>\d{1,3})\s*,\s*(?P<team_b>.+?)\s+(?P<score_b>\d{1,3})$`),
	regexp.MustCompile(`^(?P<round>.+?)\s*-\s*Game\s+\d+:\s*(?P<team_a>.+?)\s+(?P<score_a>\d{1,3})\s+vs\.?\s+(?P<team_b>.+?)\s+(?P<score_b>\d{1,3})$`),
}

// RegexLineStrategy matches one result per line against a family of
// named-group patterns. Non-matching lines are skipped without error.
type RegexLineStrategy struct {
	patterns []*regexp.Regexp
}

// NewRegexLineStrategy builds the strategy; nil patterns select the default
// families.
func NewRegexLineStrategy(patterns []*regexp.Regexp) *RegexLineStrategy {
	if len(patterns) == 0 {
		patterns = defaultLinePatterns
	}
	return &RegexLineStrategy{patterns: patterns}
}

func (s *RegexLineStrategy) Layout() Layout { return LayoutRegexLine }

func (s *RegexLineStrategy) Extract(doc Document) ([]RawMatchup, error) {
	text := doc.Text
	if text == "" {
		text = string(doc.Body)
	}
	var out []RawMatchup
	for _, line := range normalizeLines(text) {
		matchup, ok := s.matchLine(line)
		if !ok {
			continue
		}
		out = append(out, matchup)
	}
	return out, nil
}

func (s *RegexLineStrategy) matchLine(line string) (RawMatchup, bool) {
	for _, pattern := range s.patterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		groups := map[string]string{}
		for i, name := range pattern.SubexpNames() {
			if name != "" && i < len(m) {
				groups[name] = strings.TrimSpace(m[i])
			}
		}
		scoreA, scoreB := parseScore(groups["score_a"]), parseScore(groups["score_b"])
		if groups["team_a"] == "" || groups["team_b"] == "" || scoreA == nil || scoreB == nil {
			// Partial match with an unparseable score: skip, keep scanning.
			continue
		}
		return RawMatchup{
			TeamA:      groups["team_a"],
			TeamB:      groups["team_b"],
			ScoreA:     scoreA,
			ScoreB:     scoreB,
			RoundLabel: groups["round"],
		}, true
	}
	return RawMatchup{}, false
}
