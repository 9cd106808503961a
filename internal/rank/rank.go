// Package rank total-orders scored sections by relevance.
package rank

import (
	"sort"

	"github.com/docsift/docsift/internal/document"
)

// Rank orders sections by score descending. Ties preserve the original
// discovery order, so identical inputs always produce identical output.
// Sections whose raw body is shorter than minBodyChars are excluded even
// though they were scored. Ranks are dense, 1-based.
func Rank(scored []document.ScoredSection, minBodyChars int) []document.RankedSection {
	eligible := make([]document.ScoredSection, 0, len(scored))
	for _, s := range scored {
		if len(s.Body) >= minBodyChars {
			eligible = append(eligible, s)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score > eligible[j].Score
	})
	ranked := make([]document.RankedSection, len(eligible))
	for i, s := range eligible {
		ranked[i] = document.RankedSection{ScoredSection: s, Rank: i + 1}
	}
	return ranked
}
