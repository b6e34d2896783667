package games

import (
	"testing"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/match"
)

func eventfulMatch(day, opponent string, clubScore, oppScore int, clubGoals, oppGoals []int) match.Match {
	clubStriker := match.Player{Name: "Eran Levi", Events: []event.Event{event.At(event.KindLineUp, 0)}}
	for _, minute := range clubGoals {
		clubStriker.AddEvent(event.Goal(minute, event.GoalTypeNormal))
	}
	oppStriker := match.Player{Name: "Nir Bitton", Events: []event.Event{event.At(event.KindLineUp, 0)}}
	for _, minute := range oppGoals {
		oppStriker.AddEvent(event.Goal(minute, event.GoalTypeNormal))
	}

	m := match.Match{
		Competition: "Ligat Ha'Al",
		Date:        dayAt(day),
		Season:      "2015/16",
		Home:        match.Team{Name: opponent, Score: oppScore, Players: []match.Player{oppStriker}},
		Away:        match.Team{Name: "Maccabi Tel Aviv", Score: clubScore, Players: []match.Player{clubStriker}},
	}
	m.SetClubSide(match.SideAway)
	return m
}

func comebackSeason() []match.Match {
	return []match.Match{
		// Trailed 0-2, won 3-2.
		eventfulMatch("2015-08-29", "Hapoel Beer Sheva", 3, 2, []int{58, 71, 89}, []int{12, 39}),
		// Led throughout, won 2-1.
		eventfulMatch("2015-09-05", "Bnei Yehuda", 2, 1, []int{20, 70}, []int{80}),
		// Trailed 0-2, tied 2-2.
		eventfulMatch("2015-09-12", "Hapoel Tel Aviv", 2, 2, []int{60, 80}, []int{10, 30}),
		// Narrow 1-0 win, never trailed.
		eventfulMatch("2015-09-19", "Beitar Jerusalem", 1, 0, []int{44}, nil),
	}
}

func TestWonAfterTrailingBy(t *testing.T) {
	c := New(comebackSeason(), "all games")

	fromTwo := c.WonAfterTrailingBy(2)
	if fromTwo.Len() != 1 {
		t.Fatalf("wins from 2 down = %d, want 1", fromTwo.Len())
	}
	if m, _ := fromTwo.First(); m.OpponentName() != "Hapoel Beer Sheva" {
		t.Fatalf("wrong comeback selected: %s", m.OpponentName())
	}

	// The 3-2 game bottomed out at exactly -2, so it is not a "from 1 down"
	// comeback; the other wins never trailed.
	if got := c.WonAfterTrailingBy(1).Len(); got != 0 {
		t.Fatalf("wins from exactly 1 down = %d, want 0", got)
	}
}

func TestTiedAfterTrailingBy(t *testing.T) {
	c := New(comebackSeason(), "all games")

	fromTwo := c.TiedAfterTrailingBy(2)
	if fromTwo.Len() != 1 {
		t.Fatalf("ties from 2 down = %d, want 1", fromTwo.Len())
	}
	if m, _ := fromTwo.First(); m.OpponentName() != "Hapoel Tel Aviv" {
		t.Fatalf("wrong tie selected: %s", m.OpponentName())
	}
}

func TestComebackFeasibilityRejectsByArithmetic(t *testing.T) {
	// A 1-0 win carries one total goal; a win from 1 down needs at least 3,
	// so the timeline is never replayed for it.
	c := New([]match.Match{
		eventfulMatch("2015-09-19", "Beitar Jerusalem", 1, 0, []int{44}, nil),
	}, "all games")

	if got := c.WonAfterTrailingBy(1).Len(); got != 0 {
		t.Fatalf("1-0 win cannot be a comeback, got %d", got)
	}
}

func TestComebackRequiresOpponentScoredDeficit(t *testing.T) {
	// 3-0: total goals pass the 2K+1 bar for K=1 but the opponent never
	// scored, so no deficit ever existed.
	c := New([]match.Match{
		eventfulMatch("2015-09-26", "Hapoel Haifa", 3, 0, []int{10, 20, 30}, nil),
	}, "all games")

	if got := c.WonAfterTrailingBy(1).Len(); got != 0 {
		t.Fatalf("3-0 win cannot be a comeback, got %d", got)
	}
}

func TestComebackDescriptions(t *testing.T) {
	c := New(comebackSeason(), "all games")
	if got := c.WonAfterTrailingBy(2).Description; got != "all games + Won after trailing by 2" {
		t.Fatalf("Description = %q", got)
	}
}
