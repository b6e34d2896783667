package usecase

import (
	"context"
	"fmt"

	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/platform/cache"
)

// StreakService names the streak categories the reports ask for. Every
// category is the same three collection primitives fed a different
// predicate; no category carries its own run-finding loop.
type StreakService struct {
	memo *cache.Store
}

// NewStreakService builds the service; memo may be nil to disable
// memoization. Cached values are keyed by the collection's provenance
// description, its content fingerprint, and the query, so they only ever
// repeat a pure computation over the identical input.
func NewStreakService(memo *cache.Store) *StreakService {
	return &StreakService{memo: memo}
}

func (s *StreakService) LongestWinStreak(ctx context.Context, c games.Collection) games.Collection {
	return s.memoized(ctx, c, "longest-wins", func() games.Collection {
		return c.LongestRun("wins", games.IsWin)
	})
}

func (s *StreakService) LongestUnbeatenStreak(ctx context.Context, c games.Collection) games.Collection {
	return s.memoized(ctx, c, "longest-unbeaten", func() games.Collection {
		return c.LongestRun("unbeaten", games.IsUnbeaten)
	})
}

func (s *StreakService) LongestLossStreak(ctx context.Context, c games.Collection) games.Collection {
	return s.memoized(ctx, c, "longest-losses", func() games.Collection {
		return c.LongestRun("losses", games.IsLoss)
	})
}

func (s *StreakService) LongestTieStreak(ctx context.Context, c games.Collection) games.Collection {
	return s.memoized(ctx, c, "longest-ties", func() games.Collection {
		return c.LongestRun("ties", games.IsTie)
	})
}

func (s *StreakService) LongestCleanSheetStreak(ctx context.Context, c games.Collection) games.Collection {
	return s.memoized(ctx, c, "longest-clean-sheets", func() games.Collection {
		return c.LongestRun("clean sheets", games.IsCleanSheet)
	})
}

func (s *StreakService) LongestScoringStreak(ctx context.Context, c games.Collection, minGoals int) games.Collection {
	key := fmt.Sprintf("longest-scored-at-least-%d", minGoals)
	return s.memoized(ctx, c, key, func() games.Collection {
		label := fmt.Sprintf("scored at least %d", minGoals)
		return c.LongestRun(label, games.ScoredAtLeast(minGoals))
	})
}

func (s *StreakService) LongestExactScoringStreak(ctx context.Context, c games.Collection, goals int) games.Collection {
	key := fmt.Sprintf("longest-scored-exactly-%d", goals)
	return s.memoized(ctx, c, key, func() games.Collection {
		label := fmt.Sprintf("scored exactly %d", goals)
		return c.LongestRun(label, games.ScoredExactly(goals))
	})
}

func (s *StreakService) LongestGoalDifferenceStreak(ctx context.Context, c games.Collection, minDiff int) games.Collection {
	key := fmt.Sprintf("longest-goal-diff-%d", minDiff)
	return s.memoized(ctx, c, key, func() games.Collection {
		label := fmt.Sprintf("goal difference at least %d", minDiff)
		return c.LongestRun(label, games.GoalDifferenceAtLeast(minDiff))
	})
}

func (s *StreakService) CurrentWinStreak(_ context.Context, c games.Collection) games.Collection {
	return c.CurrentRun("wins", games.IsWin)
}

func (s *StreakService) CurrentUnbeatenStreak(_ context.Context, c games.Collection) games.Collection {
	return c.CurrentRun("unbeaten", games.IsUnbeaten)
}

func (s *StreakService) WinStreaksOfAtLeast(_ context.Context, c games.Collection, minLength int) []games.Collection {
	return c.SimilarRuns("wins", games.IsWin, minLength)
}

func (s *StreakService) UnbeatenStreaksOfAtLeast(_ context.Context, c games.Collection, minLength int) []games.Collection {
	return c.SimilarRuns("unbeaten", games.IsUnbeaten, minLength)
}

// PlayerLongestScoringStreak measures consecutive scoring within the
// matches the player appeared in.
func (s *StreakService) PlayerLongestScoringStreak(ctx context.Context, c games.Collection, name string) games.Collection {
	return s.memoized(ctx, c, "player-scoring-"+name, func() games.Collection {
		return c.ForPlayer(name).LongestRun(name+" scored", games.PlayerScored(name))
	})
}

// PlayerLongestPlayedStreak measures consecutive appearances, so the
// predicate runs over ALL club matches, including ones the player missed;
// filtering first would hide the gaps the streak is about.
func (s *StreakService) PlayerLongestPlayedStreak(ctx context.Context, c games.Collection, name string) games.Collection {
	return s.memoized(ctx, c, "player-played-"+name, func() games.Collection {
		return c.LongestRun(name+" played", games.PlayerPlayed(name))
	})
}

func (s *StreakService) OpponentLongestWinStreak(ctx context.Context, c games.Collection, opponent string) games.Collection {
	return s.memoized(ctx, c, "opponent-wins-"+opponent, func() games.Collection {
		return c.AgainstOpponent(opponent).LongestRun("wins vs "+opponent, games.IsWin)
	})
}

func (s *StreakService) memoized(ctx context.Context, c games.Collection, query string, compute func() games.Collection) games.Collection {
	ctx, span := startUsecaseSpan(ctx, "usecase.StreakService."+query)
	defer span.End()

	if s.memo == nil {
		return compute()
	}

	// The description alone is not enough: a reloaded dataset rebuilds a
	// collection with the identical provenance, so the key carries a content
	// fingerprint and only ever repeats for the exact same input.
	key := fmt.Sprintf("streak|%s|%s|%s", c.Description, c.Fingerprint(), query)
	value, err := s.memo.GetOrCompute(ctx, key, func() (any, error) {
		return compute(), nil
	})
	if err != nil {
		return compute()
	}
	result, ok := value.(games.Collection)
	if !ok {
		return compute()
	}
	return result
}
