package memory

import (
	"context"
	"sync"

	"github.com/maccabipedia/clubstats/internal/domain/match"
)

// MatchRepository holds the loaded, reconciled match set. Reads copy the
// backing slice so callers can filter and sort without holding the lock.
type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	out := make([]match.Match, len(matches))
	copy(out, matches)
	return &MatchRepository{matches: out}
}

func (r *MatchRepository) ListAll(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, len(r.matches))
	copy(out, r.matches)
	return out, nil
}

// Replace swaps the full dataset, for reloads after a fresh crawl.
func (r *MatchRepository) Replace(matches []match.Match) {
	out := make([]match.Match, len(matches))
	copy(out, matches)

	r.mu.Lock()
	r.matches = out
	r.mu.Unlock()
}
