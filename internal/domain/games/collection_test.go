package games

import (
	"testing"
)

func TestNewSortsByDate(t *testing.T) {
	season := testSeason()
	// Shuffle the slice so sorting has something to do.
	season[0], season[3] = season[3], season[0]
	season[1], season[5] = season[5], season[1]

	c := New(season, "all games")
	if c.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", c.Len())
	}
	for i := 1; i < c.Len(); i++ {
		if c.Matches[i].Date.Before(c.Matches[i-1].Date) {
			t.Fatalf("matches not date-ordered at index %d", i)
		}
	}
}

func TestFilterDoesNotMutateParent(t *testing.T) {
	c := New(testSeason(), "all games")
	wins := c.Wins()

	if c.Len() != 6 {
		t.Fatalf("parent collection shrank to %d", c.Len())
	}
	if wins.Len() != 4 {
		t.Fatalf("Wins() = %d games, want 4", wins.Len())
	}
	if c.Description != "all games" {
		t.Fatalf("parent description changed: %q", c.Description)
	}
}

func TestDescriptionChains(t *testing.T) {
	c := New(testSeason(), "all games").Wins().HomeGames()
	if c.Description != "all games + Wins + Home games" {
		t.Fatalf("Description = %q", c.Description)
	}
	if c.String() != "all games + Wins + Home games (3 games)" {
		t.Fatalf("String() = %q", c.String())
	}
}

func TestFiltersCompose(t *testing.T) {
	c := New(testSeason(), "all games")

	leagueHomeWins := c.InCompetition("Ligat Ha'Al").HomeGames().Wins()
	if leagueHomeWins.Len() != 2 {
		t.Fatalf("league home wins = %d, want 2", leagueHomeWins.Len())
	}

	// Order of composition must not matter for membership.
	winsHomeLeague := c.Wins().HomeGames().InCompetition("Ligat Ha'Al")
	if winsHomeLeague.Len() != leagueHomeWins.Len() {
		t.Fatalf("composition order changed membership: %d vs %d",
			winsHomeLeague.Len(), leagueHomeWins.Len())
	}
}

func TestCleanSheets(t *testing.T) {
	c := New(testSeason(), "all games")
	if got := c.CleanSheets().Len(); got != 2 {
		t.Fatalf("CleanSheets() = %d, want 2", got)
	}
}

func TestAgainstOpponent(t *testing.T) {
	c := New(testSeason(), "all games")
	haifa := c.AgainstOpponent("hapoel haifa")
	if haifa.Len() != 2 {
		t.Fatalf("AgainstOpponent() = %d, want 2 (case-insensitive)", haifa.Len())
	}
}

func TestForPlayer(t *testing.T) {
	c := New(testSeason(), "all games")
	levi := c.ForPlayer("Eran Levi")
	if levi.Len() != 5 {
		t.Fatalf("ForPlayer() = %d, want 5", levi.Len())
	}
}

func TestPlayedAt(t *testing.T) {
	c := New(testSeason(), "all games")
	day := c.PlayedAt(dayAt("2015-09-19"))
	if day.Len() != 1 {
		t.Fatalf("PlayedAt() = %d, want 1", day.Len())
	}
	if m, _ := day.First(); m.OpponentName() != "Bnei Yehuda" {
		t.Fatalf("wrong match selected: %s", m.OpponentName())
	}
}

func TestScoredExactly(t *testing.T) {
	c := New(testSeason(), "all games")
	if got := c.ScoredExactly(2).Len(); got != 2 {
		t.Fatalf("ScoredExactly(2) = %d, want 2", got)
	}
	if got := c.ScoredAtLeast(3).Len(); got != 2 {
		t.Fatalf("ScoredAtLeast(3) = %d, want 2", got)
	}
}

func TestTotals(t *testing.T) {
	c := New(testSeason(), "all games")
	if got := c.TotalGoalsFor(); got != 12 {
		t.Fatalf("TotalGoalsFor() = %d, want 12", got)
	}
	if got := c.TotalGoalsAgainst(); got != 6 {
		t.Fatalf("TotalGoalsAgainst() = %d, want 6", got)
	}
}

func TestSeasons(t *testing.T) {
	c := New(testSeason(), "all games")
	seasons := c.Seasons()
	if len(seasons) != 1 || seasons[0] != "2015/16" {
		t.Fatalf("Seasons() = %v", seasons)
	}
}

func TestFingerprintTracksContents(t *testing.T) {
	a := New(testSeason(), "all games")
	b := New(testSeason(), "all games")
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("identical collections must share a fingerprint")
	}

	// Same description and length, one score flipped.
	changed := testSeason()
	changed[3] = testMatch("2015-09-19", "Ligat Ha'Al", "Bnei Yehuda", 0, 1, true)
	c := New(changed, "all games")
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("changed score must change the fingerprint")
	}

	// Same scores, different squad events.
	moved := testSeason()
	moved[0] = testMatch("2015-08-22", "Ligat Ha'Al", "Hapoel Haifa", 2, 0, true,
		starter("Eran Levi"), starter("Dor Micha", 31))
	d := New(moved, "all games")
	if a.Fingerprint() == d.Fingerprint() {
		t.Fatalf("reattributed event must change the fingerprint")
	}
}

func TestEmptyCollection(t *testing.T) {
	c := New(nil, "empty")
	if c.Len() != 0 {
		t.Fatalf("Len() = %d", c.Len())
	}
	if _, ok := c.First(); ok {
		t.Fatalf("First() on empty should report not ok")
	}
	if got := c.Wins().Len(); got != 0 {
		t.Fatalf("filtering empty should stay empty, got %d", got)
	}
}
