// Package extract turns one pre-fetched raw document into matchup tuples.
// Strategies are pure functions of their input: running one twice on the same
// document yields the same slice, and a document with no recognizable games
// yields an empty slice, not an error.
package extract

import (
	"strconv"
	"strings"
)

// Layout is the caller-declared shape hint for one document.
type Layout string

const (
	LayoutTable     Layout = "table"
	LayoutCard      Layout = "card"
	LayoutText      Layout = "text"
	LayoutRegexLine Layout = "regex_line"
	LayoutPDFText   Layout = "pdf_text"
)

// Document is one raw document already fetched by an external adapter.
type Document struct {
	SourceURL string
	Body      []byte
	// Text holds pre-extracted text when the caller already rendered the
	// document; when empty, text strategies decode Body themselves.
	Text string
}

// RawMatchup is one extracted matchup/result tuple. It is transient: produced
// here, consumed immediately by canonicalization, and carries no identity.
type RawMatchup struct {
	TeamA      string
	TeamB      string
	ScoreA     *int
	ScoreB     *int
	RoundLabel string
	Extra      map[string]string
}

// Strategy extracts matchups from one document layout family.
type Strategy interface {
	Layout() Layout
	Extract(doc Document) ([]RawMatchup, error)
}

// ForLayout returns the strategy for a layout hint. Unknown hints return nil;
// callers treat that as "no extraction configured", not a failure.
func ForLayout(layout Layout, grammar GrammarConfig) Strategy {
	switch layout {
	case LayoutTable:
		return NewTableStrategy()
	case LayoutCard:
		return NewCardStrategy()
	case LayoutText:
		return NewTextGrammarStrategy(grammar)
	case LayoutRegexLine:
		return NewRegexLineStrategy(nil)
	case LayoutPDFText:
		return NewPDFTextStrategy(grammar)
	default:
		return nil
	}
}

// Run applies every hinted strategy to the document and merges results, with
// page-level metadata attached to each matchup. A document may legitimately be
// run through more than one strategy; duplicate collapse happens later at the
// canonical-key level.
func Run(doc Document, layouts []Layout, grammar GrammarConfig) ([]RawMatchup, error) {
	var out []RawMatchup
	meta := PageMetaFor(doc)
	for _, layout := range layouts {
		strategy := ForLayout(layout, grammar)
		if strategy == nil {
			continue
		}
		matchups, err := strategy.Extract(doc)
		if err != nil {
			return nil, err
		}
		for i := range matchups {
			meta.Attach(&matchups[i])
		}
		out = append(out, matchups...)
	}
	return out, nil
}

// parseScore parses a strict non-negative integer token. Anything else,
// including signed or decorated numbers, is not a score.
func parseScore(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" || !isDigits(text) {
		return nil
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &value
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// teamCandidate reports whether a cell token can name a team: longer than two
// characters and not purely numeric.
func teamCandidate(text string) bool {
	return len(text) > 2 && !isDigits(text)
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
