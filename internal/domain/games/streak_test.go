package games

import (
	"testing"
)

// Result sequence of testSeason is W W L W T W.

func TestLongestRunPicksFirstMaximum(t *testing.T) {
	c := New(testSeason(), "all games")

	wins := c.LongestRun("wins", IsWin)
	if wins.Len() != 2 {
		t.Fatalf("longest win run = %d, want 2", wins.Len())
	}
	first, _ := wins.First()
	if first.OpponentName() != "Hapoel Haifa" {
		t.Fatalf("longest run should start at the season opener, got %s", first.OpponentName())
	}
	if wins.Description != "all games + Longest run: wins" {
		t.Fatalf("Description = %q", wins.Description)
	}
}

func TestLongestRunUnbeaten(t *testing.T) {
	c := New(testSeason(), "all games")
	unbeaten := c.LongestRun("unbeaten", IsUnbeaten)
	if unbeaten.Len() != 3 {
		t.Fatalf("longest unbeaten run = %d, want 3", unbeaten.Len())
	}
	first, _ := unbeaten.First()
	if first.OpponentName() != "Bnei Yehuda" {
		t.Fatalf("unbeaten run should start after the loss, got %s", first.OpponentName())
	}
}

func TestLongestRunNeverExceedsCollection(t *testing.T) {
	c := New(testSeason(), "all games")
	run := c.LongestRun("wins", IsWin)
	if run.Len() > c.Len() {
		t.Fatalf("run (%d) longer than collection (%d)", run.Len(), c.Len())
	}
}

func TestCurrentRun(t *testing.T) {
	c := New(testSeason(), "all games")

	currentWins := c.CurrentRun("wins", IsWin)
	if currentWins.Len() != 1 {
		t.Fatalf("current win run = %d, want 1", currentWins.Len())
	}

	currentUnbeaten := c.CurrentRun("unbeaten", IsUnbeaten)
	if currentUnbeaten.Len() != 3 {
		t.Fatalf("current unbeaten run = %d, want 3", currentUnbeaten.Len())
	}
}

func TestCurrentRunEmptyWhenLastFails(t *testing.T) {
	c := New(testSeason(), "all games")
	if got := c.CurrentRun("losses", IsLoss).Len(); got != 0 {
		t.Fatalf("current loss run = %d, want 0", got)
	}
}

func TestSimilarRuns(t *testing.T) {
	c := New(testSeason(), "all games")

	all := c.SimilarRuns("wins", IsWin, 1)
	if len(all) != 3 {
		t.Fatalf("win runs of >=1 = %d, want 3", len(all))
	}

	long := c.SimilarRuns("wins", IsWin, 2)
	if len(long) != 1 || long[0].Len() != 2 {
		t.Fatalf("win runs of >=2 = %d runs, want the single opening run", len(long))
	}

	if got := c.SimilarRuns("wins", IsWin, 5); len(got) != 0 {
		t.Fatalf("impossible threshold should yield nothing, got %d", len(got))
	}
}

func TestRunsOnEmptyCollection(t *testing.T) {
	c := New(nil, "empty")
	if got := c.LongestRun("wins", IsWin).Len(); got != 0 {
		t.Fatalf("LongestRun on empty = %d", got)
	}
	if got := c.CurrentRun("wins", IsWin).Len(); got != 0 {
		t.Fatalf("CurrentRun on empty = %d", got)
	}
	if got := c.SimilarRuns("wins", IsWin, 1); len(got) != 0 {
		t.Fatalf("SimilarRuns on empty = %d", len(got))
	}
}

func TestPlayerPlayedStreakSeesGaps(t *testing.T) {
	c := New(testSeason(), "all games")

	// Eran Levi missed the fifth game, so the appearance run is capped at 4
	// even though he played in 5 of 6 games.
	run := c.LongestRun("Eran Levi played", PlayerPlayed("Eran Levi"))
	if run.Len() != 4 {
		t.Fatalf("appearance run = %d, want 4", run.Len())
	}
}

func TestPlayerScoredStreak(t *testing.T) {
	c := New(testSeason(), "all games")
	run := c.ForPlayer("Eran Levi").LongestRun("Eran Levi scored", PlayerScored("Eran Levi"))
	if run.Len() != 2 {
		t.Fatalf("scoring run = %d, want 2", run.Len())
	}
}
