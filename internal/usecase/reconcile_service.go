package usecase

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/match"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
)

// ErrUnresolvedOrphan marks an orphan goal no matching heuristic could
// attribute. It is logged and surfaced by the error scan, never returned to
// reconciliation callers.
var ErrUnresolvedOrphan = crerr.New("orphan event matched no player")

// ReconcileService attaches goal events recovered from the secondary source
// to the players the primary source knows about. Matching tries, in order:
// exact full name, single name token, dotted-initial ("A.Surname"). The
// pass is idempotent: a feasibility check against the recorded final score
// stops re-runs from double-attaching.
type ReconcileService struct {
	logger *logging.Logger
}

func NewReconcileService(logger *logging.Logger) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{logger: logger}
}

// ReconcileAll runs the pass over every match; it must complete before any
// analytical query is considered valid.
func (s *ReconcileService) ReconcileAll(ctx context.Context, matches []match.Match) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileAll")
	defer span.End()

	for i := range matches {
		s.Reconcile(ctx, &matches[i])
	}
}

// Reconcile attaches what it can and leaves the rest in HalfParsed.
// Unmatched names are tolerated data, not errors.
func (s *ReconcileService) Reconcile(ctx context.Context, m *match.Match) {
	if len(m.HalfParsed) == 0 {
		return
	}

	recorded := m.Home.GoalEventCount() + m.Away.GoalEventCount()
	finalTotal := m.Home.Score + m.Away.Score

	orphanGoals := len(m.HalfParsed)
	if recorded == finalTotal {
		// A prior pass already reconciled this match; attaching again would
		// double-count.
		s.logger.InfoContext(ctx, "match already consistent, skipping orphan events",
			"match", m.String(), "orphans", orphanGoals)
		return
	}
	if recorded+orphanGoals > finalTotal {
		s.logger.WarnContext(ctx, "orphan events exceed final score, not attaching",
			"match", m.String(), "recorded", recorded, "orphans", orphanGoals, "final", finalTotal)
		return
	}

	var remaining []match.HalfParsedEvent
	for _, orphan := range m.HalfParsed {
		player := s.findPlayer(m, orphan.Name)
		if player == nil {
			s.logger.WarnContext(ctx, "orphan goal event left unreconciled",
				"match", m.String(), "name", orphan.Name, "error", ErrUnresolvedOrphan)
			remaining = append(remaining, orphan)
			continue
		}

		candidate := event.Event{Kind: event.KindGoal, Offset: orphan.Offset, GoalType: orphan.GoalType}
		existing, err := player.EventMatching(candidate)
		if err != nil {
			// Two stored goals share the minute; treat the orphan as already
			// recorded rather than guessing which one it duplicates.
			s.logger.WarnContext(ctx, "ambiguous event match, treating orphan as duplicate",
				"match", m.String(), "player", player.Name, "error", err)
			continue
		}
		if existing != nil {
			s.logger.InfoContext(ctx, "orphan goal already recorded",
				"match", m.String(), "player", player.Name, "minute", candidate.Minute())
			continue
		}

		player.AddEvent(candidate)
		s.logger.InfoContext(ctx, "orphan goal attached",
			"match", m.String(), "player", player.Name, "minute", candidate.Minute())
	}
	m.HalfParsed = remaining
}

// findPlayer searches both squads with the three heuristics, stopping at
// the first that yields exactly one player.
func (s *ReconcileService) findPlayer(m *match.Match, name string) *match.Player {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	if p := findByExactName(m, name); p != nil {
		return p
	}
	if p := findByNameToken(m, name); p != nil {
		return p
	}
	return findByDottedInitial(m, name)
}

func eachSquadPlayer(m *match.Match, visit func(*match.Player)) {
	for i := range m.Home.Players {
		visit(&m.Home.Players[i])
	}
	for i := range m.Away.Players {
		visit(&m.Away.Players[i])
	}
}

func findByExactName(m *match.Match, name string) *match.Player {
	var found *match.Player
	eachSquadPlayer(m, func(p *match.Player) {
		if found == nil && strings.EqualFold(strings.TrimSpace(p.Name), name) {
			found = p
		}
	})
	return found
}

// findByNameToken handles citations by first name only or last name only:
// the orphan name must equal one whitespace token of the player's full name.
func findByNameToken(m *match.Match, name string) *match.Player {
	var found *match.Player
	eachSquadPlayer(m, func(p *match.Player) {
		if found != nil {
			return
		}
		for _, token := range p.NameTokens() {
			if strings.EqualFold(token, name) {
				found = p
				return
			}
		}
	})
	return found
}

// findByDottedInitial resolves "A.Surname" citations: last-name token match,
// then a first-name prefix filter when several players share the surname.
// Anything still ambiguous stays unresolved.
func findByDottedInitial(m *match.Match, name string) *match.Player {
	before, after, ok := strings.Cut(name, ".")
	if !ok {
		return nil
	}
	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)
	if after == "" {
		return nil
	}

	var byLastName []*match.Player
	eachSquadPlayer(m, func(p *match.Player) {
		if strings.EqualFold(p.LastNameToken(), after) {
			byLastName = append(byLastName, p)
		}
	})

	if len(byLastName) == 1 {
		return byLastName[0]
	}
	if len(byLastName) == 0 || before == "" {
		return nil
	}

	var byInitial []*match.Player
	for _, p := range byLastName {
		if strings.HasPrefix(strings.ToLower(p.FirstNameToken()), strings.ToLower(before)) {
			byInitial = append(byInitial, p)
		}
	}
	if len(byInitial) == 1 {
		return byInitial[0]
	}
	return nil
}
