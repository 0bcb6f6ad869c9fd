package extract

import "testing"

func TestDecodePDFTextMalformed(t *testing.T) {
	t.Parallel()

	_, err := DecodePDFText([]byte("definitely not a pdf"))
	if err == nil {
		t.Fatal("expected an error for a corrupt byte stream")
	}
	if !IsMalformedInput(err) {
		t.Fatalf("error not marked malformed: %v", err)
	}
}

func TestPDFTextStrategySurfacesDecodeFailure(t *testing.T) {
	t.Parallel()

	_, err := NewPDFTextStrategy(GrammarConfig{}).Extract(Document{Body: []byte{0x00, 0x01}})
	if err == nil {
		t.Fatal("corrupt pdf must not be folded into an empty result")
	}
	if !IsMalformedInput(err) {
		t.Fatalf("error not marked malformed: %v", err)
	}
}

func TestPDFTextStrategyUsesPreExtractedText(t *testing.T) {
	t.Parallel()

	text := "Finals\nCentral\n70\nEastside\n64\n"
	matchups, err := NewPDFTextStrategy(GrammarConfig{}).Extract(Document{Text: text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 1 {
		t.Fatalf("got %d matchups, want 1", len(matchups))
	}
	if matchups[0].TeamA != "Central" || matchups[0].TeamB != "Eastside" {
		t.Fatalf("unexpected teams: %+v", matchups[0])
	}
}
