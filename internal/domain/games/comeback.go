package games

import (
	"fmt"

	"github.com/maccabipedia/clubstats/internal/domain/match"
)

// comebackFeasible rejects matches whose arithmetic cannot represent "came
// back from deficit down": the club must have scored at least deficit +
// whatever the final margin needs, and the opponent must have scored at
// least deficit. Necessary conditions only; the running extremum does the
// real classification.
func comebackFeasible(m match.Match, deficit, minTotalGoals int) bool {
	total := m.ClubScore() + m.OpponentScore()
	return total >= minTotalGoals && m.OpponentScore() >= deficit
}

// WonAfterTrailingBy selects wins where the club was at some point down by
// exactly deficit goals. A win from K down needs at least 2K+1 total goals.
func (c Collection) WonAfterTrailingBy(deficit int) Collection {
	label := fmt.Sprintf("Won after trailing by %d", deficit)
	return c.Filter(label, func(m match.Match) bool {
		if m.Result() != match.ResultWin {
			return false
		}
		if !comebackFeasible(m, deficit, 2*deficit+1) {
			return false
		}
		return m.MaxOpponentAdvantage() == -deficit
	})
}

// TiedAfterTrailingBy selects ties where the club was at some point down by
// exactly deficit goals. A tie from K down needs at least 2K total goals.
func (c Collection) TiedAfterTrailingBy(deficit int) Collection {
	label := fmt.Sprintf("Tied after trailing by %d", deficit)
	return c.Filter(label, func(m match.Match) bool {
		if m.Result() != match.ResultTie {
			return false
		}
		if !comebackFeasible(m, deficit, 2*deficit) {
			return false
		}
		return m.MaxOpponentAdvantage() == -deficit
	})
}
