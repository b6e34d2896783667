package usecase

import (
	"context"

	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/domain/match"
)

// ComebackService classifies matches by the biggest deficit the club faced.
type ComebackService struct{}

func NewComebackService() *ComebackService {
	return &ComebackService{}
}

// MaxOpponentAdvantage is the deepest the club trailed in the given match,
// as a non-positive number.
func (s *ComebackService) MaxOpponentAdvantage(m *match.Match) int {
	return m.MaxOpponentAdvantage()
}

// WonFromExactly selects wins after trailing by exactly deficit goals.
func (s *ComebackService) WonFromExactly(ctx context.Context, c games.Collection, deficit int) games.Collection {
	_, span := startUsecaseSpan(ctx, "usecase.ComebackService.WonFromExactly")
	defer span.End()

	return c.WonAfterTrailingBy(deficit)
}

// TiedFromExactly selects ties after trailing by exactly deficit goals.
func (s *ComebackService) TiedFromExactly(ctx context.Context, c games.Collection, deficit int) games.Collection {
	_, span := startUsecaseSpan(ctx, "usecase.ComebackService.TiedFromExactly")
	defer span.End()

	return c.TiedAfterTrailingBy(deficit)
}

// BiggestComebacks walks deficits from the deepest seen upward and returns
// the first non-empty won-from bucket.
func (s *ComebackService) BiggestComebacks(ctx context.Context, c games.Collection) games.Collection {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComebackService.BiggestComebacks")
	defer span.End()

	deepest := 0
	for i := range c.Matches {
		if adv := c.Matches[i].MaxOpponentAdvantage(); adv < deepest {
			deepest = adv
		}
	}
	for deficit := -deepest; deficit > 0; deficit-- {
		if wins := s.WonFromExactly(ctx, c, deficit); wins.Len() > 0 {
			return wins
		}
	}
	return games.Collection{Description: c.Description + " + Won after trailing"}
}
