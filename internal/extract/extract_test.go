package extract

import "testing"

func TestRunAttachesPageMeta(t *testing.T) {
	t.Parallel()

	doc := Document{
		SourceURL: "https://example.org/brackets/aaa",
		Body:      []byte(tablePage),
	}
	matchups, err := Run(doc, []Layout{LayoutTable}, GrammarConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 2 {
		t.Fatalf("got %d matchups, want 2", len(matchups))
	}
	for _, matchup := range matchups {
		if matchup.Extra["source_url"] != doc.SourceURL {
			t.Fatalf("source_url = %q", matchup.Extra["source_url"])
		}
		if matchup.RoundLabel != "Quarterfinals" {
			t.Fatalf("round label = %q, want page heading", matchup.RoundLabel)
		}
	}
}

func TestRunUnknownLayoutIsSilent(t *testing.T) {
	t.Parallel()

	matchups, err := Run(Document{Body: []byte(tablePage)}, []Layout{"carrier_pigeon"}, GrammarConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 0 {
		t.Fatalf("got %d matchups for an unknown layout, want 0", len(matchups))
	}
}
