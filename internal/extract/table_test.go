package extract

import "testing"

const tablePage = `
<html><body>
<h2>Quarterfinals</h2>
<table>
  <tr><th>Home</th><th>Score</th><th>Away</th><th>Score</th></tr>
  <tr><td>Lincoln (1)</td><td>73</td><td>Washington</td><td>60</td></tr>
  <tr><td>Jefferson</td><td>55</td><td>Roosevelt (4)</td><td>58</td></tr>
  <tr><td>OnlyOneTeam</td><td>40</td></tr>
  <tr><td>12</td><td>34</td></tr>
</table>
</body></html>`

func TestTableStrategy(t *testing.T) {
	t.Parallel()

	matchups, err := NewTableStrategy().Extract(Document{Body: []byte(tablePage)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 2 {
		t.Fatalf("got %d matchups, want 2", len(matchups))
	}

	first := matchups[0]
	if first.TeamA != "Lincoln (1)" || first.TeamB != "Washington" {
		t.Fatalf("unexpected teams: %q vs %q", first.TeamA, first.TeamB)
	}
	if first.ScoreA == nil || *first.ScoreA != 73 || first.ScoreB == nil || *first.ScoreB != 60 {
		t.Fatalf("unexpected scores: %v %v", first.ScoreA, first.ScoreB)
	}
}

func TestTableStrategyEmptyDocument(t *testing.T) {
	t.Parallel()

	matchups, err := NewTableStrategy().Extract(Document{Body: []byte("<html><body><p>no games here</p></body></html>")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 0 {
		t.Fatalf("got %d matchups from an empty page, want 0", len(matchups))
	}
}

func TestTableStrategyRestartable(t *testing.T) {
	t.Parallel()

	strategy := NewTableStrategy()
	doc := Document{Body: []byte(tablePage)}
	first, _ := strategy.Extract(doc)
	second, _ := strategy.Extract(doc)
	if len(first) != len(second) {
		t.Fatalf("re-running extraction changed results: %d vs %d", len(first), len(second))
	}
}
