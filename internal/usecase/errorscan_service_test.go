package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/domain/match"
)

func findingsOfKind(findings []Finding, kind FindingKind) int {
	n := 0
	for _, f := range findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

func scanOne(t *testing.T, m match.Match) []Finding {
	t.Helper()
	svc := NewErrorScanService(2, nil)
	return svc.Scan(context.Background(), games.New([]match.Match{m}, "all games"))
}

func TestScanCleanDataYieldsNothing(t *testing.T) {
	findings := scanOne(t, clubMatch("2015-08-22", "Hapoel Haifa", 0, 0, true))
	if len(findings) != 0 {
		t.Fatalf("clean match produced findings: %v", findings)
	}
}

func TestScanFlagsScoreMismatch(t *testing.T) {
	// Recorded 2-0 but only one goal event exists.
	m := clubMatch("2015-08-22", "Hapoel Haifa", 2, 0, true, appearing("Eran Levi", 31))
	findings := scanOne(t, m)
	if findingsOfKind(findings, FindingScoreMismatch) != 1 {
		t.Fatalf("expected a score mismatch finding, got %v", findings)
	}
}

func TestScanSkipsScoreCheckOnTechnicalResults(t *testing.T) {
	m := clubMatch("2015-08-22", "Hapoel Haifa", 2, 0, true, appearing("Eran Levi", 31))
	m.TechnicalResult = true
	findings := scanOne(t, m)
	if findingsOfKind(findings, FindingScoreMismatch) != 0 {
		t.Fatalf("technical result should skip the score check, got %v", findings)
	}
}

func TestScanFlagsLineupAndCaptainProblems(t *testing.T) {
	// One lined-up player and no captain.
	m := clubMatch("2015-08-22", "Hapoel Haifa", 0, 0, true, appearing("Eran Levi"))
	findings := scanOne(t, m)
	if findingsOfKind(findings, FindingLineupSize) != 1 {
		t.Fatalf("expected a lineup-size finding, got %v", findings)
	}
	if findingsOfKind(findings, FindingCaptainCount) != 1 {
		t.Fatalf("expected a captain-count finding, got %v", findings)
	}
}

func TestScanFlagsPlayersWithoutEntryMarker(t *testing.T) {
	ghost := match.Player{Name: "Dor Micha", Events: []event.Event{
		event.Goal(50, event.GoalTypeNormal),
	}}
	m := clubMatch("2015-08-22", "Hapoel Haifa", 1, 0, true, ghost)
	findings := scanOne(t, m)
	if findingsOfKind(findings, FindingNoEntryMarker) != 1 {
		t.Fatalf("expected a no-entry-marker finding, got %v", findings)
	}
}

func TestScanFlagsLineupAndSubInConflict(t *testing.T) {
	confused := match.Player{Name: "Dor Micha", Events: []event.Event{
		event.At(event.KindLineUp, 0),
		event.At(event.KindSubIn, 60),
	}}
	m := clubMatch("2015-08-22", "Hapoel Haifa", 0, 0, true, confused)
	findings := scanOne(t, m)
	if findingsOfKind(findings, FindingLineupAndSubIn) != 1 {
		t.Fatalf("expected a lineup-and-sub-in finding, got %v", findings)
	}
}

func TestScanFlagsUnresolvedOrphans(t *testing.T) {
	m := clubMatch("2015-08-22", "Hapoel Haifa", 1, 0, true)
	m.HalfParsed = []match.HalfParsedEvent{
		{Name: "Zvi Rosen", Offset: 40 * time.Minute, GoalType: event.GoalTypeNormal},
	}
	findings := scanOne(t, m)
	if findingsOfKind(findings, FindingUnresolvedOrphans) != 1 {
		t.Fatalf("expected an unresolved-orphans finding, got %v", findings)
	}
}

func TestScanFlagsDuplicateDays(t *testing.T) {
	svc := NewErrorScanService(2, nil)
	c := games.New([]match.Match{
		clubMatch("2015-08-22", "Hapoel Haifa", 0, 0, true),
		clubMatch("2015-08-22", "Bnei Yehuda", 0, 0, false),
		clubMatch("2015-08-29", "Beitar Jerusalem", 0, 0, true),
	}, "all games")

	findings := svc.Scan(context.Background(), c)
	if findingsOfKind(findings, FindingDuplicateDay) != 1 {
		t.Fatalf("expected one duplicate-day finding, got %v", findings)
	}
}
