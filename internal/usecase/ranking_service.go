package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/domain/match"
	"github.com/maccabipedia/clubstats/internal/domain/profile"
)

// Rank is one row of a ranked leaderboard.
type Rank struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// RankingService aggregates per-entity counters over a collection. All
// rankings are descending by value; ties keep discovery order.
type RankingService struct{}

func NewRankingService() *RankingService {
	return &RankingService{}
}

// rankBy feeds every match through contribute, which credits names with
// increments, then sorts the accumulated counters.
func rankBy(c games.Collection, contribute func(m *match.Match, credit func(name string, delta int))) []Rank {
	totals := make(map[string]int)
	var order []string

	credit := func(name string, delta int) {
		if name == "" || delta == 0 {
			return
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += delta
	}

	for i := range c.Matches {
		contribute(&c.Matches[i], credit)
	}

	ranks := make([]Rank, 0, len(order))
	for _, name := range order {
		ranks = append(ranks, Rank{Name: name, Value: totals[name]})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Value > ranks[j].Value })
	return ranks
}

// TopScorers counts club players' goals, own goals excluded.
func (s *RankingService) TopScorers(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.TopScorers")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		for _, p := range m.ClubTeam().Players {
			goals := p.CountEvents(event.KindGoal) - p.GoalsOfType(event.GoalTypeOwnGoal)
			credit(p.Name, goals)
		}
	})
}

func (s *RankingService) TopAssisters(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.TopAssisters")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		for _, p := range m.ClubTeam().Players {
			credit(p.Name, p.CountEvents(event.KindAssist))
		}
	})
}

func (s *RankingService) MostAppearances(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.MostAppearances")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		for _, p := range m.ClubTeam().Players {
			if p.Played() {
				credit(p.Name, 1)
			}
		}
	})
}

func (s *RankingService) MostCarded(ctx context.Context, c games.Collection, kind event.Kind) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.MostCarded")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		for _, p := range m.ClubTeam().Players {
			credit(p.Name, p.CountEvents(kind))
		}
	})
}

func (s *RankingService) CoachesByWins(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.CoachesByWins")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		if m.Result() == match.ResultWin {
			credit(m.ClubTeam().Coach, 1)
		}
	})
}

func (s *RankingService) CoachesByMatches(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.CoachesByMatches")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		credit(m.ClubTeam().Coach, 1)
	})
}

func (s *RankingService) RefereesByMatches(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.RefereesByMatches")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		credit(m.Referee, 1)
	})
}

func (s *RankingService) OpponentsByClubWins(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.OpponentsByClubWins")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		if m.Result() == match.ResultWin {
			credit(m.OpponentName(), 1)
		}
	})
}

// WinningGoalScorers credits, in every won match, the club goal that the
// opponent never answered: the (opponent score + 1)-th club goal of the
// replayed timeline.
func (s *RankingService) WinningGoalScorers(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.WinningGoalScorers")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		if m.Result() != match.ResultWin {
			return
		}
		decisive := m.OpponentScore() + 1
		for _, g := range m.Goals() {
			if g.ScoringSide() == m.ClubSide() && g.ClubScore == decisive {
				if !g.Event.IsOwnGoal() {
					credit(g.PlayerName, 1)
				}
				return
			}
		}
	})
}

// EqualizingGoalScorers credits club goals that leveled the score.
func (s *RankingService) EqualizingGoalScorers(ctx context.Context, c games.Collection) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.EqualizingGoalScorers")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		for _, g := range m.Goals() {
			if g.ScoringSide() == m.ClubSide() && g.ClubScore == g.OpponentScore && !g.Event.IsOwnGoal() {
				credit(g.PlayerName, 1)
			}
		}
	})
}

// LateGoalScorers credits club goals scored at or after the given minute.
func (s *RankingService) LateGoalScorers(ctx context.Context, c games.Collection, fromMinute int) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.LateGoalScorers")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		for _, g := range m.Goals() {
			if g.ScoringSide() == m.ClubSide() && !g.Event.IsOwnGoal() && g.Event.Minute() >= fromMinute {
				credit(g.PlayerName, 1)
			}
		}
	})
}

// ScorersRightAfterComingOn credits club goals scored within window of the
// player's substitution in. Goals at minute zero are a known parsing
// artifact for substitutes and never count here.
func (s *RankingService) ScorersRightAfterComingOn(ctx context.Context, c games.Collection, window time.Duration) []Rank {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.ScorersRightAfterComingOn")
	defer span.End()

	return rankBy(c, func(m *match.Match, credit func(string, int)) {
		for _, p := range m.ClubTeam().Players {
			subIns := p.EventsOf(event.KindSubIn)
			if len(subIns) == 0 {
				continue
			}
			cameOn := subIns[0].Offset
			for _, g := range p.EventsOf(event.KindGoal) {
				if g.Offset == 0 {
					continue
				}
				if g.GoalType != event.GoalTypeOwnGoal && g.Offset >= cameOn && g.Offset-cameOn <= window {
					credit(p.Name, 1)
				}
			}
		}
	})
}

// GamesOnPlayerBirthday selects matches the player appeared in on their
// birthday, using an explicitly supplied birthdate table.
func (s *RankingService) GamesOnPlayerBirthday(ctx context.Context, c games.Collection, name string, birthdates profile.BirthdateTable) games.Collection {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.GamesOnPlayerBirthday")
	defer span.End()

	return c.ForPlayer(name).Filter("On birthday of "+name, func(m match.Match) bool {
		return birthdates.IsBirthday(name, m.Date)
	})
}

// GamesPlayedAtAge selects matches the player appeared in while the given
// age, in full years. Players missing from the table match nothing.
func (s *RankingService) GamesPlayedAtAge(ctx context.Context, c games.Collection, name string, age int, birthdates profile.BirthdateTable) games.Collection {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.GamesPlayedAtAge")
	defer span.End()

	label := fmt.Sprintf("%s at age %d", name, age)
	return c.ForPlayer(name).Filter(label, func(m match.Match) bool {
		return birthdates.AgeAt(name, m.Date) == age
	})
}
