package match

import (
	"fmt"
	"strings"

	"github.com/maccabipedia/clubstats/internal/domain/event"
)

// Player is one player's record within a single match. Identity is
// (name, shirt number), not pointer identity, so two independently parsed
// records for the same player compare equal and aggregate together.
type Player struct {
	Name   string
	Number *int
	Events []event.Event
}

func (p Player) Key() string {
	if p.Number == nil {
		return strings.TrimSpace(p.Name)
	}
	return fmt.Sprintf("%s#%d", strings.TrimSpace(p.Name), *p.Number)
}

func (p Player) SamePlayer(other Player) bool {
	return p.Key() == other.Key()
}

// Played reports whether the player took part: lined up or came on.
func (p Player) Played() bool {
	return p.HasEvent(event.KindLineUp) || p.HasEvent(event.KindSubIn)
}

func (p Player) Scored() bool {
	return p.HasEvent(event.KindGoal)
}

func (p Player) HasEvent(kind event.Kind) bool {
	for _, e := range p.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func (p Player) CountEvents(kind event.Kind) int {
	n := 0
	for _, e := range p.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (p Player) EventsOf(kind event.Kind) []event.Event {
	var out []event.Event
	for _, e := range p.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (p Player) GoalsOfType(goalType event.GoalType) int {
	n := 0
	for _, e := range p.Events {
		if e.Kind == event.KindGoal && e.GoalType == goalType {
			n++
		}
	}
	return n
}

// EventMatching finds the stored event equal to candidate by lookup key.
// Returns nil when nothing matches and ErrAmbiguousEvent when more than one
// stored event shares the key.
func (p Player) EventMatching(candidate event.Event) (*event.Event, error) {
	var found *event.Event
	for i := range p.Events {
		if !p.Events[i].Same(candidate) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s for %s", ErrAmbiguousEvent, candidate, p.Name)
		}
		found = &p.Events[i]
	}
	return found, nil
}

func (p *Player) AddEvent(e event.Event) {
	p.Events = append(p.Events, e)
}

// NameTokens splits the full name into whitespace-delimited tokens.
func (p Player) NameTokens() []string {
	return strings.Fields(p.Name)
}

// LastNameToken is the final token of the full name, or "" for empty names.
func (p Player) LastNameToken() string {
	tokens := p.NameTokens()
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

func (p Player) FirstNameToken() string {
	tokens := p.NameTokens()
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
