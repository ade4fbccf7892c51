// Package match implements approximate title matching for the sync planner
// and the target resolver.
//
// Scores are normalized Levenshtein distances in [0,1] where 0 means
// identical. A candidate is accepted only when its score is strictly below
// the caller's threshold (lower threshold = stricter matching).
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the accept boundary used when the caller does not
// supply one. Scores at or above the threshold are rejected.
const DefaultThreshold = 0.4

// Scored pairs a candidate with its distance from the query.
type Scored[T any] struct {
	Value T
	Score float64
}

// Distance returns the normalized edit distance between a and b after
// case-folding and whitespace collapsing. Two empty strings are identical.
func Distance(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == nb {
		return 0
	}

	longest := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}

	return float64(levenshtein.ComputeDistance(na, nb)) / float64(longest)
}

// Best returns the candidate with the lowest distance from query, provided
// that distance is strictly below threshold. Ties keep the earlier candidate
// so results are deterministic for a fixed candidate order.
func Best[T any](query string, candidates []T, title func(T) string, threshold float64) (T, bool) {
	var best T
	bestScore := threshold
	found := false

	for _, c := range candidates {
		score := Distance(query, title(c))
		if score < bestScore {
			best = c
			bestScore = score
			found = true
		}
	}

	return best, found
}

// Rank returns every candidate scoring strictly below threshold, ordered by
// ascending distance. The sort is stable: equal scores keep candidate order.
func Rank[T any](query string, candidates []T, title func(T) string, threshold float64) []Scored[T] {
	var ranked []Scored[T]
	for _, c := range candidates {
		score := Distance(query, title(c))
		if score < threshold {
			ranked = append(ranked, Scored[T]{Value: c, Score: score})
		}
	}

	// Insertion sort keeps equal-score candidates in input order.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Score < ranked[j-1].Score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	return ranked
}

// normalize lowercases and collapses runs of whitespace to single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
