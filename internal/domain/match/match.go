package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/event"
)

// Side marks which team block a player or event belongs to.
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
)

func (s Side) Other() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Result is the match outcome from the club's perspective.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultTie  Result = "TIE"
	ResultLoss Result = "LOSS"
)

// NameVariants holds every name the club has played under. Orientation of a
// match is resolved against this list; it is passed in explicitly, never read
// from a global.
type NameVariants []string

func (v NameVariants) Match(name string) bool {
	name = strings.TrimSpace(name)
	for _, variant := range v {
		if strings.EqualFold(name, strings.TrimSpace(variant)) {
			return true
		}
	}
	return false
}

// HalfParsedEvent is a goal recovered from the secondary source that could
// not be attributed to a squad player by the parser. The reconciler either
// attaches it or leaves it here.
type HalfParsedEvent struct {
	Name     string
	Offset   time.Duration
	GoalType event.GoalType
}

// Match is one played game. Constructed once by ingestion, mutated only by
// the reconciliation and correction passes, then treated as frozen by every
// analytical query.
type Match struct {
	Competition     string
	Fixture         string
	Date            time.Time
	Stadium         string
	Attendance      int
	Referee         string
	Home            Team
	Away            Team
	Season          string
	HalfParsed      []HalfParsedEvent
	TechnicalResult bool

	clubSide Side
}

// ResolveClubSide fixes which team block is the club by matching its known
// name variants. Both or neither side matching is a structural failure; the
// offending match is rejected at ingestion, not patched up later.
func (m *Match) ResolveClubSide(variants NameVariants) error {
	homeIsClub := variants.Match(m.Home.Name) || variants.Match(m.Home.CanonicalName())
	awayIsClub := variants.Match(m.Away.Name) || variants.Match(m.Away.CanonicalName())

	switch {
	case homeIsClub && awayIsClub:
		return fmt.Errorf("%w: both %q and %q match", ErrUnknownClubSide, m.Home.Name, m.Away.Name)
	case homeIsClub:
		m.clubSide = SideHome
	case awayIsClub:
		m.clubSide = SideAway
	default:
		return fmt.Errorf("%w: %q vs %q", ErrUnknownClubSide, m.Home.Name, m.Away.Name)
	}
	return nil
}

// SetClubSide is for tests and corrections that build matches directly.
func (m *Match) SetClubSide(side Side) {
	m.clubSide = side
}

func (m *Match) ClubSide() Side {
	return m.clubSide
}

func (m *Match) ClubTeam() *Team {
	if m.clubSide == SideAway {
		return &m.Away
	}
	return &m.Home
}

func (m *Match) OpponentTeam() *Team {
	if m.clubSide == SideAway {
		return &m.Home
	}
	return &m.Away
}

func (m Match) HomeGame() bool {
	return m.clubSide != SideAway
}

func (m Match) ClubScore() int {
	if m.clubSide == SideAway {
		return m.Away.Score
	}
	return m.Home.Score
}

func (m Match) OpponentScore() int {
	if m.clubSide == SideAway {
		return m.Home.Score
	}
	return m.Away.Score
}

func (m Match) OpponentName() string {
	if m.clubSide == SideAway {
		return m.Home.CanonicalName()
	}
	return m.Away.CanonicalName()
}

func (m Match) Result() Result {
	switch {
	case m.ClubScore() > m.OpponentScore():
		return ResultWin
	case m.ClubScore() < m.OpponentScore():
		return ResultLoss
	default:
		return ResultTie
	}
}

func (m Match) GoalDifference() int {
	return m.ClubScore() - m.OpponentScore()
}

// Day truncates a timestamp to day resolution; hour and minute are parsing
// detail, not part of the comparison key.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (m Match) PlayedOn(t time.Time) bool {
	return Day(m.Date).Equal(Day(t))
}

// ClubPlayer finds a player on the club side by exact full name.
func (m *Match) ClubPlayer(name string) (*Player, bool) {
	return m.ClubTeam().PlayerByName(name)
}

func (m Match) String() string {
	return fmt.Sprintf("%s %s vs %s %d-%d (%s)",
		m.Date.Format("2006-01-02"), m.Home.Name, m.Away.Name, m.Home.Score, m.Away.Score, m.Competition)
}
