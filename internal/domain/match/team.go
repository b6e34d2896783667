package match

import (
	"strings"

	"github.com/maccabipedia/clubstats/internal/domain/event"
)

// PlaceholderCaptainName marks a squad where no captain event was recorded.
const PlaceholderCaptainName = "[no captain]"

// Team is one side of a single match: final score, coach and the full squad
// with per-player events.
type Team struct {
	Name string
	// CurrentName carries the canonical present-day name for clubs renamed
	// over the decades. Empty when the historical name is still current.
	CurrentName string
	Coach       string
	Score       int
	Players     []Player
}

func (t Team) CanonicalName() string {
	if strings.TrimSpace(t.CurrentName) != "" {
		return t.CurrentName
	}
	return t.Name
}

// PlayerStat is one row of a per-match leaderboard.
type PlayerStat struct {
	Name  string
	Value int
}

// TopPlayersBy ranks the squad by an arbitrary per-player stat, descending.
// Players whose stat is zero are excluded; ties keep squad order. Every
// "who did X most in this match" query goes through here.
func (t Team) TopPlayersBy(stat func(Player) int) []PlayerStat {
	var ranked []PlayerStat
	for _, p := range t.Players {
		value := stat(p)
		if value == 0 {
			continue
		}
		ranked = append(ranked, PlayerStat{Name: p.Name, Value: value})
	}

	// Insertion sort keeps discovery order for equal values.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Value > ranked[j-1].Value; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}

func (t Team) Scorers() []PlayerStat {
	return t.TopPlayersBy(func(p Player) int { return p.CountEvents(event.KindGoal) })
}

func (t Team) Assisters() []PlayerStat {
	return t.TopPlayersBy(func(p Player) int { return p.CountEvents(event.KindAssist) })
}

func (t Team) YellowCarded() []PlayerStat {
	return t.TopPlayersBy(func(p Player) int { return p.CountEvents(event.KindYellowCard) })
}

func (t Team) RedCarded() []PlayerStat {
	return t.TopPlayersBy(func(p Player) int { return p.CountEvents(event.KindRedCard) })
}

// Captain returns the first player with a captain event. Zero or multiple
// captains are tolerated data; with none recorded a placeholder player is
// returned and ok is false.
func (t Team) Captain() (Player, bool) {
	for _, p := range t.Players {
		if p.HasEvent(event.KindCaptain) {
			return p, true
		}
	}
	return Player{Name: PlaceholderCaptainName}, false
}

func (t Team) CaptainCount() int {
	n := 0
	for _, p := range t.Players {
		if p.HasEvent(event.KindCaptain) {
			n++
		}
	}
	return n
}

func (t Team) LineupCount() int {
	n := 0
	for _, p := range t.Players {
		if p.HasEvent(event.KindLineUp) {
			n++
		}
	}
	return n
}

// GoalEventCount counts recorded goal events for this side, own goals
// included. Score attribution of own goals is handled by the timeline, not
// here.
func (t Team) GoalEventCount() int {
	n := 0
	for _, p := range t.Players {
		n += p.CountEvents(event.KindGoal)
	}
	return n
}

// PlayerByName finds the first squad member with the exact full name.
func (t Team) PlayerByName(name string) (*Player, bool) {
	for i := range t.Players {
		if strings.EqualFold(strings.TrimSpace(t.Players[i].Name), strings.TrimSpace(name)) {
			return &t.Players[i], true
		}
	}
	return nil, false
}
