package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/match"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
)

// GoalReattribution moves a goal recorded against the wrong club player.
type GoalReattribution struct {
	FromPlayer string
	ToPlayer   string
	Minute     int
}

// Correction is one entry of the fixed table of known-bad upstream records.
// A correction locates its match by day and opponent, then applies only the
// fields that are set. Every fix checks current state first so the table can
// be re-applied when the pipeline re-runs from scratch.
type Correction struct {
	Date     time.Time
	Opponent string

	NewDate          *time.Time
	NewClubScore     *int
	NewOpponentScore *int
	NewStadium       string
	Reattribute      *GoalReattribution
	Remove           bool
	Reason           string
}

// CorrectionService applies the manual patch table. This is data repair for
// known upstream errors, separate from generic reconciliation.
type CorrectionService struct {
	table  []Correction
	logger *logging.Logger
}

func NewCorrectionService(table []Correction, logger *logging.Logger) *CorrectionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CorrectionService{table: table, logger: logger}
}

// Apply runs every correction and returns the surviving matches. Matches a
// correction cannot find are logged and skipped; the pass is idempotent.
func (s *CorrectionService) Apply(ctx context.Context, matches []match.Match) []match.Match {
	ctx, span := startUsecaseSpan(ctx, "usecase.CorrectionService.Apply")
	defer span.End()

	removed := make(map[int]bool)
	for _, c := range s.table {
		idx := findCorrectionTarget(matches, c)
		if idx < 0 {
			s.logger.WarnContext(ctx, "correction target not found",
				"date", c.Date.Format("2006-01-02"), "opponent", c.Opponent, "reason", c.Reason)
			continue
		}

		if c.Remove {
			if !removed[idx] {
				removed[idx] = true
				s.logger.InfoContext(ctx, "removing known-bad match",
					"match", matches[idx].String(), "reason", c.Reason)
			}
			continue
		}
		s.applyOne(ctx, &matches[idx], c)
	}

	if len(removed) == 0 {
		return matches
	}
	kept := make([]match.Match, 0, len(matches)-len(removed))
	for i := range matches {
		if !removed[i] {
			kept = append(kept, matches[i])
		}
	}
	return kept
}

func (s *CorrectionService) applyOne(ctx context.Context, m *match.Match, c Correction) {
	if c.NewDate != nil && !m.PlayedOn(*c.NewDate) {
		s.logger.InfoContext(ctx, "correcting match date",
			"match", m.String(), "new_date", c.NewDate.Format("2006-01-02"), "reason", c.Reason)
		m.Date = match.Day(*c.NewDate)
	}

	if c.NewClubScore != nil && m.ClubScore() != *c.NewClubScore {
		s.logger.InfoContext(ctx, "correcting club score",
			"match", m.String(), "new_score", *c.NewClubScore, "reason", c.Reason)
		m.ClubTeam().Score = *c.NewClubScore
	}

	if c.NewOpponentScore != nil && m.OpponentScore() != *c.NewOpponentScore {
		s.logger.InfoContext(ctx, "correcting opponent score",
			"match", m.String(), "new_score", *c.NewOpponentScore, "reason", c.Reason)
		m.OpponentTeam().Score = *c.NewOpponentScore
	}

	if c.NewStadium != "" && !strings.EqualFold(m.Stadium, c.NewStadium) {
		m.Stadium = c.NewStadium
	}

	if c.Reattribute != nil {
		s.reattributeGoal(ctx, m, *c.Reattribute, c.Reason)
	}
}

// reattributeGoal moves a goal only while the wrong player still holds it
// and the right player does not, so a second run is a no-op.
func (s *CorrectionService) reattributeGoal(ctx context.Context, m *match.Match, r GoalReattribution, reason string) {
	from, ok := m.ClubPlayer(r.FromPlayer)
	if !ok {
		return
	}
	to, ok := m.ClubPlayer(r.ToPlayer)
	if !ok {
		return
	}

	candidate := event.Goal(r.Minute, event.GoalTypeUnknown)
	held, err := from.EventMatching(candidate)
	if err != nil || held == nil {
		return
	}
	if already, err := to.EventMatching(candidate); err != nil || already != nil {
		return
	}

	moved := *held
	kept := from.Events[:0]
	for _, e := range from.Events {
		if e.Same(candidate) && e == moved {
			continue
		}
		kept = append(kept, e)
	}
	from.Events = kept
	to.AddEvent(moved)

	s.logger.InfoContext(ctx, "goal reattributed",
		"match", m.String(), "from", r.FromPlayer, "to", r.ToPlayer, "minute", r.Minute, "reason", reason)
}

func findCorrectionTarget(matches []match.Match, c Correction) int {
	for i := range matches {
		if matches[i].PlayedOn(c.Date) && strings.EqualFold(matches[i].OpponentName(), c.Opponent) {
			return i
		}
	}
	return -1
}
