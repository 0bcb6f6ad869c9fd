package extract

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// TableStrategy reads table-shaped markup: one game per data row, teams and
// scores recognized positionally within the row's cells.
type TableStrategy struct{}

func NewTableStrategy() *TableStrategy {
	return &TableStrategy{}
}

func (s *TableStrategy) Layout() Layout { return LayoutTable }

func (s *TableStrategy) Extract(doc Document) ([]RawMatchup, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, markMalformed(err, "html")
	}

	var out []RawMatchup
	page.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
			if rowIdx == 0 {
				// First row is assumed to be a header.
				return
			}
			matchup, ok := matchupFromRow(row)
			if !ok {
				return
			}
			out = append(out, matchup)
		})
	})
	return out, nil
}

func matchupFromRow(row *goquery.Selection) (RawMatchup, bool) {
	var teams []string
	var scores []*int

	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		text := collapseSpace(cell.Text())
		if text == "" {
			return
		}
		if score := parseScore(text); score != nil {
			if len(scores) < 2 {
				scores = append(scores, score)
			}
			return
		}
		if teamCandidate(text) && len(teams) < 2 {
			teams = append(teams, text)
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
