package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/domain/match"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
)

// FindingKind classifies a data-consistency warning.
type FindingKind string

const (
	FindingScoreMismatch     FindingKind = "SCORE_MISMATCH"
	FindingLineupSize        FindingKind = "LINEUP_SIZE"
	FindingNoEntryMarker     FindingKind = "NO_ENTRY_MARKER"
	FindingLineupAndSubIn    FindingKind = "LINEUP_AND_SUB_IN"
	FindingCaptainCount      FindingKind = "CAPTAIN_COUNT"
	FindingDuplicateDay      FindingKind = "DUPLICATE_DAY"
	FindingUnresolvedOrphans FindingKind = "UNRESOLVED_ORPHANS"
)

// Finding is one logged data-quality warning. Queries stay available over
// imperfect data; this scan is the explicit, opt-in pass that surfaces the
// imperfections.
type Finding struct {
	Kind   FindingKind
	Match  string
	Detail string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Kind, f.Match, f.Detail)
}

type ErrorScanService struct {
	workers int
	logger  *logging.Logger
}

func NewErrorScanService(workers int, logger *logging.Logger) *ErrorScanService {
	if workers < 1 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ErrorScanService{workers: workers, logger: logger}
}

// Scan inspects every match concurrently and returns the collected
// findings. Nothing is raised; findings are warnings, not failures.
func (s *ErrorScanService) Scan(ctx context.Context, c games.Collection) []Finding {
	ctx, span := startUsecaseSpan(ctx, "usecase.ErrorScanService.Scan")
	defer span.End()

	p := pool.NewWithResults[[]Finding]().WithMaxGoroutines(s.workers)
	for i := range c.Matches {
		m := c.Matches[i]
		p.Go(func() []Finding {
			return scanMatch(&m)
		})
	}

	var findings []Finding
	for _, batch := range p.Wait() {
		findings = append(findings, batch...)
	}
	findings = append(findings, scanDuplicateDays(c)...)

	for _, f := range findings {
		s.logger.WarnContext(ctx, "data consistency warning",
			"kind", string(f.Kind), "match", f.Match, "detail", f.Detail)
	}
	return findings
}

func scanMatch(m *match.Match) []Finding {
	var findings []Finding
	name := m.String()

	// Technical results never satisfy goal-count invariants.
	if !m.TechnicalResult {
		derivedClub, derivedOpp := m.DerivedScore()
		if derivedClub != m.ClubScore() || derivedOpp != m.OpponentScore() {
			findings = append(findings, Finding{
				Kind:  FindingScoreMismatch,
				Match: name,
				Detail: fmt.Sprintf("recorded %d-%d but events derive %d-%d",
					m.ClubScore(), m.OpponentScore(), derivedClub, derivedOpp),
			})
		}
	}

	for _, team := range []*match.Team{&m.Home, &m.Away} {
		if n := team.LineupCount(); n != 11 && len(team.Players) > 0 {
			findings = append(findings, Finding{
				Kind:   FindingLineupSize,
				Match:  name,
				Detail: fmt.Sprintf("%s lined up %d players", team.Name, n),
			})
		}
		if n := team.CaptainCount(); n != 1 && len(team.Players) > 0 {
			findings = append(findings, Finding{
				Kind:   FindingCaptainCount,
				Match:  name,
				Detail: fmt.Sprintf("%s has %d captains", team.Name, n),
			})
		}

		for _, p := range team.Players {
			if len(p.Events) > 0 && !p.Played() && !p.HasEvent(event.KindBenched) {
				findings = append(findings, Finding{
					Kind:   FindingNoEntryMarker,
					Match:  name,
					Detail: fmt.Sprintf("%s (%s) has events but no lineup, sub-in or bench marker", p.Name, team.Name),
				})
			}
			if p.HasEvent(event.KindLineUp) && p.HasEvent(event.KindSubIn) {
				findings = append(findings, Finding{
					Kind:   FindingLineupAndSubIn,
					Match:  name,
					Detail: fmt.Sprintf("%s (%s) both lined up and substituted in", p.Name, team.Name),
				})
			}
		}
	}

	if n := len(m.HalfParsed); n > 0 {
		findings = append(findings, Finding{
			Kind:   FindingUnresolvedOrphans,
			Match:  name,
			Detail: fmt.Sprintf("%d orphan goal events left unreconciled", n),
		})
	}
	return findings
}

func scanDuplicateDays(c games.Collection) []Finding {
	var findings []Finding
	byDay := make(map[string]int)
	for _, m := range c.Matches {
		byDay[match.Day(m.Date).Format("2006-01-02")]++
	}
	for day, n := range byDay {
		if n > 1 {
			findings = append(findings, Finding{
				Kind:   FindingDuplicateDay,
				Match:  day,
				Detail: fmt.Sprintf("%d matches recorded on the same day", n),
			})
		}
	}
	return findings
}
