package match

import (
	"sort"

	"github.com/maccabipedia/clubstats/internal/domain/event"
)

// TimelineEntry is one event placed on the match clock, tagged with the
// player and side that recorded it.
type TimelineEntry struct {
	PlayerName string
	Side       Side
	Event      event.Event
}

// Goal is a goal-kind timeline entry annotated with the score right after it.
// Scores are from the club's perspective and are replayed from the event
// list, never copied from the recorded final score.
type Goal struct {
	TimelineEntry
	ClubScore     int
	OpponentScore int
}

// ScoringSide is the side credited with the goal; an own goal credits the
// other team.
func (g Goal) ScoringSide() Side {
	if g.Event.IsOwnGoal() {
		return g.Side.Other()
	}
	return g.Side
}

// Timeline merges both squads' events into one list ordered by match clock.
// The sort is stable: simultaneous events keep team-then-player-then-event
// insertion order, which is good enough because genuinely simultaneous goals
// do not occur.
func (m *Match) Timeline() []TimelineEntry {
	var entries []TimelineEntry
	for _, side := range []Side{SideHome, SideAway} {
		team := &m.Home
		if side == SideAway {
			team = &m.Away
		}
		for _, p := range team.Players {
			for _, e := range p.Events {
				entries = append(entries, TimelineEntry{PlayerName: p.Name, Side: side, Event: e})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Event.Offset < entries[j].Event.Offset
	})
	return entries
}

// Goals replays the timeline and annotates every goal with the running
// score. Own goals increment the other side's counter.
func (m *Match) Goals() []Goal {
	clubSide := m.clubSide
	if clubSide == "" {
		clubSide = SideHome
	}

	var goals []Goal
	club, opponent := 0, 0
	for _, entry := range m.Timeline() {
		if !entry.Event.IsGoal() {
			continue
		}

		scoring := entry.Side
		if entry.Event.IsOwnGoal() {
			scoring = scoring.Other()
		}
		if scoring == clubSide {
			club++
		} else {
			opponent++
		}

		goals = append(goals, Goal{TimelineEntry: entry, ClubScore: club, OpponentScore: opponent})
	}
	return goals
}

// DerivedScore is the final score implied by the event list. Disagreement
// with the recorded score is a data-quality signal surfaced by the error
// scan, not something to silently fix.
func (m *Match) DerivedScore() (club, opponent int) {
	goals := m.Goals()
	if len(goals) == 0 {
		return 0, 0
	}
	last := goals[len(goals)-1]
	return last.ClubScore, last.OpponentScore
}

// MaxOpponentAdvantage is the largest deficit the club faced at any point,
// as a non-positive number: -2 means the club trailed by two. Computed as
// the minimum of the running goal difference over the replayed timeline.
func (m *Match) MaxOpponentAdvantage() int {
	worst := 0
	for _, g := range m.Goals() {
		if diff := g.ClubScore - g.OpponentScore; diff < worst {
			worst = diff
		}
	}
	return worst
}
