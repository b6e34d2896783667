package match

import (
	"testing"

	"github.com/maccabipedia/clubstats/internal/domain/event"
)

// comebackMatch is an away 3-2 win after trailing 0-2.
func comebackMatch() Match {
	m := Match{
		Home: Team{
			Name:  "Hapoel Beer Sheva",
			Score: 2,
			Players: []Player{
				{Name: "Nir Bitton", Events: []event.Event{
					event.At(event.KindLineUp, 0),
					event.Goal(12, event.GoalTypeNormal),
					event.Goal(39, event.GoalTypeFreeKick),
				}},
			},
		},
		Away: Team{
			Name:  "Maccabi Tel Aviv",
			Score: 3,
			Players: []Player{
				{Name: "Eran Levi", Events: []event.Event{
					event.At(event.KindLineUp, 0),
					event.Goal(58, event.GoalTypePenalty),
					event.Goal(89, event.GoalTypeNormal),
				}},
				{Name: "Dor Micha", Events: []event.Event{
					event.At(event.KindLineUp, 0),
					event.Goal(71, event.GoalTypeNormal),
				}},
			},
		},
	}
	m.SetClubSide(SideAway)
	return m
}

func TestTimelineOrderedByClock(t *testing.T) {
	m := comebackMatch()
	entries := m.Timeline()

	last := -1
	for _, entry := range entries {
		if entry.Event.Minute() < last {
			t.Fatalf("timeline out of order at %s", entry.Event)
		}
		last = entry.Event.Minute()
	}
}

func TestGoalsRunningScore(t *testing.T) {
	m := comebackMatch()
	goals := m.Goals()
	if len(goals) != 5 {
		t.Fatalf("expected 5 goals, got %d", len(goals))
	}

	wantClub := []int{0, 0, 1, 2, 3}
	wantOpp := []int{1, 2, 2, 2, 2}
	for i, g := range goals {
		if g.ClubScore != wantClub[i] || g.OpponentScore != wantOpp[i] {
			t.Fatalf("goal %d: running score %d-%d, want %d-%d",
				i, g.ClubScore, g.OpponentScore, wantClub[i], wantOpp[i])
		}
	}
}

func TestDerivedScoreMatchesRecorded(t *testing.T) {
	m := comebackMatch()
	club, opp := m.DerivedScore()
	if club != m.ClubScore() || opp != m.OpponentScore() {
		t.Fatalf("derived %d-%d, recorded %d-%d", club, opp, m.ClubScore(), m.OpponentScore())
	}
}

func TestMaxOpponentAdvantage(t *testing.T) {
	m := comebackMatch()
	if got := m.MaxOpponentAdvantage(); got != -2 {
		t.Fatalf("MaxOpponentAdvantage() = %d, want -2", got)
	}
}

func TestOwnGoalCreditsOtherSide(t *testing.T) {
	m := Match{
		Home: Team{
			Name:  "Maccabi Tel Aviv",
			Score: 1,
			Players: []Player{
				{Name: "Eran Levi", Events: []event.Event{event.At(event.KindLineUp, 0)}},
			},
		},
		Away: Team{
			Name:  "Bnei Yehuda",
			Score: 0,
			Players: []Player{
				{Name: "Dudu Biton", Events: []event.Event{
					event.At(event.KindLineUp, 0),
					event.Goal(52, event.GoalTypeOwnGoal),
				}},
			},
		},
	}
	m.SetClubSide(SideHome)

	goals := m.Goals()
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	g := goals[0]
	if g.ScoringSide() != SideHome {
		t.Fatalf("own goal by the away side should credit the home side")
	}
	if g.PlayerName != "Dudu Biton" {
		t.Fatalf("attribution should keep the kicking player, got %q", g.PlayerName)
	}
	if g.ClubScore != 1 || g.OpponentScore != 0 {
		t.Fatalf("running score %d-%d, want 1-0", g.ClubScore, g.OpponentScore)
	}

	club, opp := m.DerivedScore()
	if club != 1 || opp != 0 {
		t.Fatalf("derived score %d-%d, want 1-0", club, opp)
	}
}

func TestGoallessMatch(t *testing.T) {
	m := Match{
		Home: Team{Name: "Maccabi Tel Aviv"},
		Away: Team{Name: "Hapoel Haifa"},
	}
	m.SetClubSide(SideHome)

	if goals := m.Goals(); len(goals) != 0 {
		t.Fatalf("expected no goals, got %d", len(goals))
	}
	if club, opp := m.DerivedScore(); club != 0 || opp != 0 {
		t.Fatalf("derived score %d-%d, want 0-0", club, opp)
	}
	if m.MaxOpponentAdvantage() != 0 {
		t.Fatalf("goalless match has no deficit")
	}
}
