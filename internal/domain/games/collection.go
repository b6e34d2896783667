package games

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/match"
)

// Predicate selects matches.
type Predicate func(match.Match) bool

// Collection is a date-ordered set of matches plus a human-readable
// provenance trail. Every filter returns a new Collection and chains its
// label onto the parent's description; nothing mutates the receiver.
type Collection struct {
	Matches     []match.Match
	Description string
}

// New copies and date-sorts the given matches.
func New(matches []match.Match, description string) Collection {
	out := make([]match.Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return Collection{Matches: out, Description: description}
}

func (c Collection) Len() int {
	return len(c.Matches)
}

func (c Collection) First() (match.Match, bool) {
	if len(c.Matches) == 0 {
		return match.Match{}, false
	}
	return c.Matches[0], true
}

func (c Collection) Last() (match.Match, bool) {
	if len(c.Matches) == 0 {
		return match.Match{}, false
	}
	return c.Matches[len(c.Matches)-1], true
}

func (c Collection) String() string {
	return fmt.Sprintf("%s (%d games)", c.Description, len(c.Matches))
}

func (c Collection) chain(label string) string {
	if strings.TrimSpace(c.Description) == "" {
		return label
	}
	return c.Description + " + " + label
}

// Filter is the primitive every selector is built on.
func (c Collection) Filter(label string, keep Predicate) Collection {
	var kept []match.Match
	for _, m := range c.Matches {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	return Collection{Matches: kept, Description: c.chain(label)}
}

func (c Collection) HomeGames() Collection {
	return c.Filter("Home games", func(m match.Match) bool { return m.HomeGame() })
}

func (c Collection) AwayGames() Collection {
	return c.Filter("Away games", func(m match.Match) bool { return !m.HomeGame() })
}

func (c Collection) Wins() Collection {
	return c.Filter("Wins", func(m match.Match) bool { return m.Result() == match.ResultWin })
}

func (c Collection) Ties() Collection {
	return c.Filter("Ties", func(m match.Match) bool { return m.Result() == match.ResultTie })
}

func (c Collection) Losses() Collection {
	return c.Filter("Losses", func(m match.Match) bool { return m.Result() == match.ResultLoss })
}

func (c Collection) Before(t time.Time) Collection {
	label := fmt.Sprintf("Before %s", t.Format("2006-01-02"))
	return c.Filter(label, func(m match.Match) bool { return m.Date.Before(t) })
}

func (c Collection) After(t time.Time) Collection {
	label := fmt.Sprintf("After %s", t.Format("2006-01-02"))
	return c.Filter(label, func(m match.Match) bool { return m.Date.After(t) })
}

func (c Collection) AgainstOpponent(name string) Collection {
	return c.Filter("Against team: "+name, func(m match.Match) bool {
		return strings.EqualFold(m.OpponentName(), strings.TrimSpace(name))
	})
}

func (c Collection) InCompetition(name string) Collection {
	return c.Filter("Competition: "+name, func(m match.Match) bool {
		return strings.EqualFold(m.Competition, strings.TrimSpace(name))
	})
}

func (c Collection) InSeason(season string) Collection {
	return c.Filter("Season "+season, func(m match.Match) bool {
		return strings.EqualFold(m.Season, strings.TrimSpace(season))
	})
}

func (c Collection) AtStadium(name string) Collection {
	return c.Filter("Stadium: "+name, func(m match.Match) bool {
		return strings.EqualFold(m.Stadium, strings.TrimSpace(name))
	})
}

func (c Collection) RefereedBy(name string) Collection {
	return c.Filter("Referee: "+name, func(m match.Match) bool {
		return strings.EqualFold(m.Referee, strings.TrimSpace(name))
	})
}

func (c Collection) CoachedBy(name string) Collection {
	return c.Filter("Coach: "+name, func(m match.Match) bool {
		return strings.EqualFold(m.ClubTeam().Coach, strings.TrimSpace(name))
	})
}

// ForPlayer keeps matches the named club player took part in.
func (c Collection) ForPlayer(name string) Collection {
	return c.Filter("Player: "+name, func(m match.Match) bool {
		p, ok := m.ClubPlayer(name)
		return ok && p.Played()
	})
}

func (c Collection) ExcludingTechnicalResults() Collection {
	return c.Filter("Without technical results", func(m match.Match) bool {
		return !m.TechnicalResult
	})
}

func (c Collection) CleanSheets() Collection {
	return c.Filter("Clean sheets", func(m match.Match) bool { return m.OpponentScore() == 0 })
}

func (c Collection) ScoredAtLeast(goals int) Collection {
	label := fmt.Sprintf("Scored at least %d", goals)
	return c.Filter(label, func(m match.Match) bool { return m.ClubScore() >= goals })
}

func (c Collection) ScoredExactly(goals int) Collection {
	label := fmt.Sprintf("Scored exactly %d", goals)
	return c.Filter(label, func(m match.Match) bool { return m.ClubScore() == goals })
}

// PlayedAt returns every match on the given calendar day. More than one
// match on the same day points at a data error that the error scan surfaces;
// the filter itself tolerates it.
func (c Collection) PlayedAt(day time.Time) Collection {
	label := fmt.Sprintf("Played at %s", day.Format("2006-01-02"))
	return c.Filter(label, func(m match.Match) bool { return m.PlayedOn(day) })
}

// TotalGoalsFor sums club goals over the collection, from recorded scores.
func (c Collection) TotalGoalsFor() int {
	total := 0
	for _, m := range c.Matches {
		total += m.ClubScore()
	}
	return total
}

// TotalGoalsAgainst sums opponent goals over the collection.
func (c Collection) TotalGoalsAgainst() int {
	total := 0
	for _, m := range c.Matches {
		total += m.OpponentScore()
	}
	return total
}

// Fingerprint digests the collection's contents for memo keys. It covers the
// fields the analytical queries read: dates, scores, and per-player event
// counts, so a reloaded or corrected dataset changes the fingerprint even
// when the match count stays the same.
func (c Collection) Fingerprint() string {
	h := fnv.New64a()
	for i := range c.Matches {
		m := &c.Matches[i]
		fmt.Fprintf(h, "%s|%s|%t;", m.Date.Format("2006-01-02"), m.Competition, m.TechnicalResult)
		for _, t := range []match.Team{m.Home, m.Away} {
			fmt.Fprintf(h, "%s|%d|", t.Name, t.Score)
			for _, p := range t.Players {
				fmt.Fprintf(h, "%s:%d,", p.Name, len(p.Events))
			}
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Seasons lists the distinct season labels present, in first-seen order.
func (c Collection) Seasons() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range c.Matches {
		if _, ok := seen[m.Season]; ok {
			continue
		}
		seen[m.Season] = struct{}{}
		out = append(out, m.Season)
	}
	return out
}

// IsWin and friends are the stock predicates the streak engine is fed with.
func IsWin(m match.Match) bool  { return m.Result() == match.ResultWin }
func IsTie(m match.Match) bool  { return m.Result() == match.ResultTie }
func IsLoss(m match.Match) bool { return m.Result() == match.ResultLoss }

func IsUnbeaten(m match.Match) bool { return m.Result() != match.ResultLoss }

func IsCleanSheet(m match.Match) bool { return m.OpponentScore() == 0 }

func ScoredAtLeast(goals int) Predicate {
	return func(m match.Match) bool { return m.ClubScore() >= goals }
}

func ScoredExactly(goals int) Predicate {
	return func(m match.Match) bool { return m.ClubScore() == goals }
}

func GoalDifferenceAtLeast(diff int) Predicate {
	return func(m match.Match) bool { return m.GoalDifference() >= diff }
}

// PlayerPlayed evaluates over any match, including ones the player missed,
// which is what consecutive-appearance streaks need.
func PlayerPlayed(name string) Predicate {
	return func(m match.Match) bool {
		p, ok := m.ClubPlayer(name)
		return ok && p.Played()
	}
}

func PlayerScored(name string) Predicate {
	return func(m match.Match) bool {
		p, ok := m.ClubPlayer(name)
		return ok && p.Scored()
	}
}
