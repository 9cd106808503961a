// Package score computes per-section relevance against the persona+job query.
package score

import (
	"context"
	"math"

	"github.com/docsift/docsift/internal/document"
)

// Strategy scores every section against the query. Implementations never
// fail the batch: a section that cannot be scored gets 0.0 and the
// degradation is logged.
type Strategy interface {
	Name() string
	Score(ctx context.Context, sections []document.Section, q document.Query) []float64
}

// cosine returns the cosine similarity of two vectors, 0 when either has
// zero magnitude or the lengths differ.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
