package games

import (
	"fmt"

	"github.com/maccabipedia/clubstats/internal/domain/match"
)

// runs partitions the chronological match sequence into maximal runs of
// consecutive matches all satisfying keep.
func (c Collection) runs(keep Predicate) [][]match.Match {
	var out [][]match.Match
	var current []match.Match
	for _, m := range c.Matches {
		if keep(m) {
			current = append(current, m)
			continue
		}
		if len(current) > 0 {
			out = append(out, current)
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// LongestRun returns the first maximal run achieving the maximum length, as
// a sub-collection. An empty collection, or a predicate no match satisfies,
// yields an empty result, never an error.
func (c Collection) LongestRun(label string, keep Predicate) Collection {
	var best []match.Match
	for _, run := range c.runs(keep) {
		if len(run) > len(best) {
			best = run
		}
	}
	return Collection{Matches: best, Description: c.chain("Longest run: " + label)}
}

// CurrentRun is the trailing run ending at the most recent match. Empty when
// the predicate fails on the very last match.
func (c Collection) CurrentRun(label string, keep Predicate) Collection {
	end := len(c.Matches)
	start := end
	for start > 0 && keep(c.Matches[start-1]) {
		start--
	}
	return Collection{
		Matches:     c.Matches[start:end],
		Description: c.chain("Current run: " + label),
	}
}

// SimilarRuns returns every maximal run of length >= minLength, in
// chronological order.
func (c Collection) SimilarRuns(label string, keep Predicate, minLength int) []Collection {
	var out []Collection
	for _, run := range c.runs(keep) {
		if len(run) < minLength {
			continue
		}
		out = append(out, Collection{
			Matches:     run,
			Description: c.chain(fmt.Sprintf("Run of %d+: %s", minLength, label)),
		})
	}
	return out
}
