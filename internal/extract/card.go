package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Class keywords marking a bracket/matchup container in div-based widgets.
var cardContainerKeywords = []string{"bracket", "matchup", "game", "round", "playoff", "tournament"}

// CardStrategy reads div/card-shaped bracket widgets: containers classed with
// bracket vocabulary, teams and scores in classed descendants.
type CardStrategy struct{}

func NewCardStrategy() *CardStrategy {
	return &CardStrategy{}
}

func (s *CardStrategy) Layout() Layout { return LayoutCard }

func (s *CardStrategy) Extract(doc Document) ([]RawMatchup, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, markMalformed(err, "html")
	}

	var out []RawMatchup
	page.Find("div, section, li, article").Each(func(_ int, container *goquery.Selection) {
		if !hasCardClass(container) {
			return
		}
		// Only emit from innermost containers; a bracket wrapper around
		// per-game cards would otherwise double-report every game.
		if containsCardContainer(container) {
			return
		}
		matchup, ok := matchupFromCard(container)
		if !ok {
			return
		}
		out = append(out, matchup)
	})
	return out, nil
}

func hasCardClass(node *goquery.Selection) bool {
	class := strings.ToLower(node.AttrOr("class", ""))
	if class == "" {
		return false
	}
	for _, keyword := range cardContainerKeywords {
		if strings.Contains(class, keyword) {
			return true
		}
	}
	return false
}

func containsCardContainer(container *goquery.Selection) bool {
	found := false
	container.Find("div, section, li, article").EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if hasCardClass(child) {
			found = true
			return false
		}
		return true
	})
	return found
}

func matchupFromCard(container *goquery.Selection) (RawMatchup, bool) {
	var teams []string
	var scores []*int

	container.Find("*").Each(func(_ int, node *goquery.Selection) {
		class := strings.ToLower(node.AttrOr("class", ""))
		switch {
		case strings.Contains(class, "team"):
			text := collapseSpace(node.Text())
			if text != "" && len(teams) < 2 {
				teams = append(teams, text)
			}
		case strings.Contains(class, "score"):
			if score := parseScore(collapseSpace(node.Text())); score != nil && len(scores) < 2 {
				scores = append(scores, score)
			}
		}
	})

	if len(teams) < 2 {
		return RawMatchup{}, false
	}
	matchup := RawMatchup{TeamA: teams[0], TeamB: teams[1]}
	if len(scores) > 0 {
		matchup.ScoreA = scores[0]
	}
	if len(scores) > 1 {
		matchup.ScoreB = scores[1]
	}
	return matchup, true
}
