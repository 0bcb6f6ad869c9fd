package game

import (
	"testing"
	"time"
)

func TestSeasonForDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC), "2023-24"},
		{time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC), "2023-24"},
		{time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), "2023-24"},
		{time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC), "2023-24"},
		{time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(1999, time.November, 5, 0, 0, 0, 0, time.UTC), "1999-00"},
	}
	for _, tc := range cases {
		if got := SeasonForDate(tc.date); got != tc.want {
			t.Errorf("SeasonForDate(%s) = %q, want %q", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestSeasonEndYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		season  string
		want    int
		wantErr bool
	}{
		{"2023-24", 2024, false},
		{"2023-2024", 2024, false},
		{"2024", 2024, false},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := SeasonEndYear(tc.season)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SeasonEndYear(%q) expected error", tc.season)
			}
			continue
		}
		if err != nil {
			t.Errorf("SeasonEndYear(%q) unexpected error: %v", tc.season, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SeasonEndYear(%q) = %d, want %d", tc.season, got, tc.want)
		}
	}
}

func TestUIDDeterminism(t *testing.T) {
	t.Parallel()

	first := UID("cif_ss", "2023-24", "2024-02-10", "Lincoln", "Washington", "")
	second := UID("cif_ss", "2023-24", "2024-02-10", "Lincoln", "Washington", "")
	if first != second {
		t.Fatalf("identical inputs produced different UIDs: %q vs %q", first, second)
	}

	differentAway := UID("cif_ss", "2023-24", "2024-02-10", "Lincoln", "Jefferson", "")
	if first == differentAway {
		t.Fatal("distinct away teams collided to one UID")
	}
	differentDate := UID("cif_ss", "2023-24", "2024-02-11", "Lincoln", "Washington", "")
	if first == differentDate {
		t.Fatal("distinct dates collided to one UID")
	}
	withEvent := UID("cif_ss", "2023-24", "2024-02-10", "Lincoln", "Washington", "g42")
	if first == withEvent {
		t.Fatal("event id did not contribute to the UID")
	}
}

func TestWinner(t *testing.T) {
	t.Parallel()

	home, away := 71, 68
	g := Game{HomeTeamUID: "h", AwayTeamUID: "a", HomeScore: &home, AwayScore: &away}
	if got := g.Winner(); got != "h" {
		t.Fatalf("Winner() = %q, want h", got)
	}

	g.HomeScore = nil
	if got := g.Winner(); got != "" {
		t.Fatalf("Winner() with missing score = %q, want empty", got)
	}

	tie := 60
	g.HomeScore, g.AwayScore = &tie, &tie
	if got := g.Winner(); got != "" {
		t.Fatalf("Winner() on a draw = %q, want empty", got)
	}
}
