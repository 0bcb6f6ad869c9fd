package extract

import (
	"regexp"
	"strings"
)

var (
	defaultHeaderPattern = regexp.MustCompile(`(?i)^(?:round|quarterfinals?|semifinals?|finals?|championship|consolation|regional|sectional|pool)\b[\s:,\-]*(.*)$`)
	defaultDatePattern   = regexp.MustCompile(`(?i)^(?:\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{2,4}|(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4})$`)
	defaultVenuePattern  = regexp.MustCompile(`(?i)^(?:at|@)\s+\S|(?:gym|gymnasium|arena|center|centre|fieldhouse|pavilion|high school)\b`)
	byeLinePattern       = regexp.MustCompile(`(?i)^(?:bye|.*\bbye\b)$`)
)

// GrammarConfig parameterizes the text-line grammar per source. Zero values
// fall back to defaults that cover the common bracket page vocabulary.
type GrammarConfig struct {
	HeaderPattern *regexp.Regexp
	DatePattern   *regexp.Regexp
	VenuePattern  *regexp.Regexp
}

func (c GrammarConfig) withDefaults() GrammarConfig {
	if c.HeaderPattern == nil {
		c.HeaderPattern = defaultHeaderPattern
	}
	if c.DatePattern == nil {
		c.DatePattern = defaultDatePattern
	}
	if c.VenuePattern == nil {
		c.VenuePattern = defaultVenuePattern
	}
	return c
}

// TextGrammarStrategy scans normalized text lines with a small state machine.
// It serves both rendered-HTML-as-text and PDF-extracted text; the grammar is
// identical for the two.
//
// Recognized line shapes: a round/bracket header (captures a sub-label), an
// optional date line optionally followed by a venue line, and a four-line
// team/score/team/score game block. "Bye" lines are skipped. Candidates whose
// score lines fail strict integer parsing are dropped silently and scanning
// resumes at the next line.
type TextGrammarStrategy struct {
	grammar GrammarConfig
}

func NewTextGrammarStrategy(grammar GrammarConfig) *TextGrammarStrategy {
	return &TextGrammarStrategy{grammar: grammar.withDefaults()}
}

func (s *TextGrammarStrategy) Layout() Layout { return LayoutText }

func (s *TextGrammarStrategy) Extract(doc Document) ([]RawMatchup, error) {
	text := doc.Text
	if text == "" {
		text = string(doc.Body)
	}
	return s.scan(text), nil
}

func (s *TextGrammarStrategy) scan(text string) []RawMatchup {
	lines := normalizeLines(text)

	var out []RawMatchup
	var round, date, venue string

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := s.grammar.HeaderPattern.FindStringSubmatch(line); m != nil {
			round = line
			if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
				round = strings.TrimSpace(m[1])
			}
			continue
		}
		if byeLinePattern.MatchString(line) {
			continue
		}
		if s.grammar.DatePattern.MatchString(line) {
			date = line
			if i+1 < len(lines) && s.grammar.VenuePattern.MatchString(lines[i+1]) && !s.gameBlockAt(lines, i+1) {
				venue = lines[i+1]
				i++
			}
			continue
		}

		matchup, ok := s.gameBlock(lines, i)
		if !ok {
			continue
		}
		matchup.RoundLabel = round
		matchup.Extra = map[string]string{}
		if date != "" {
			matchup.Extra["date"] = date
		}
		if venue != "" {
			matchup.Extra["venue"] = venue
		}
		out = append(out, matchup)
		i += 3
	}
	return out
}

func (s *TextGrammarStrategy) gameBlockAt(lines []string, i int) bool {
	_, ok := s.gameBlock(lines, i)
	return ok
}

// gameBlock tries the four-line shape starting at i: team, score, team, score.
// Both score lines must be pure integers and both team lines must look like
// names, otherwise the candidate is rejected.
func (s *TextGrammarStrategy) gameBlock(lines []string, i int) (RawMatchup, bool) {
	if i+3 >= len(lines) {
		return RawMatchup{}, false
	}
	teamA, teamB := lines[i], lines[i+2]
	if !teamCandidate(teamA) || !teamCandidate(teamB) {
		return RawMatchup{}, false
	}
	if byeLinePattern.MatchString(teamA) || byeLinePattern.MatchString(teamB) {
		return RawMatchup{}, false
	}
	scoreA := parseScore(lines[i+1])
	scoreB := parseScore(lines[i+3])
	if scoreA == nil || scoreB == nil {
		return RawMatchup{}, false
	}
	return RawMatchup{TeamA: teamA, TeamB: teamB, ScoreA: scoreA, ScoreB: scoreB}, true
}

func normalizeLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = collapseSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
