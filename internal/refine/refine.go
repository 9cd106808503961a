// Package refine produces bounded-length display excerpts from the
// top-ranked sections.
package refine

import (
	"context"
	"sort"
	"strings"

	"github.com/docsift/docsift/internal/document"
	"github.com/docsift/docsift/internal/score"
	"github.com/docsift/docsift/internal/textnorm"
)

// Mode selects how sentences are chosen for the excerpt.
type Mode string

const (
	// ModeGreedy accumulates leading sentences up to the caps.
	ModeGreedy Mode = "greedy"
	// ModeQuery keeps the sentences scoring highest against the query.
	ModeQuery Mode = "query"
)

// Config controls excerpt construction.
type Config struct {
	Mode             Mode
	MinSentenceChars int // Sentences shorter than this are skipped.
	MaxSentences     int // Sentence count cap for the greedy mode.
	MaxWords         int // Word count cap for the greedy mode.
	MinChars         int // Floor below which further sentences are appended.
	MaxChars         int // Hard character cap on the final excerpt.
	TopSentences     int // Sentences kept by the query mode.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeGreedy,
		MinSentenceChars: 20,
		MaxSentences:     4,
		MaxWords:         150,
		MinChars:         100,
		MaxChars:         500,
		TopSentences:     3,
	}
}

// Refiner derives subsections from ranked sections.
type Refiner struct {
	cfg      Config
	strategy score.Strategy // Only used by ModeQuery.
	norm     *textnorm.Config
}

// New creates a Refiner. strategy and norm may be nil for ModeGreedy.
func New(cfg Config, strategy score.Strategy, norm *textnorm.Config) *Refiner {
	if cfg.Mode == "" {
		cfg.Mode = ModeGreedy
	}
	if cfg.MaxSentences <= 0 {
		cfg.MaxSentences = 4
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 150
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 500
	}
	if cfg.TopSentences <= 0 {
		cfg.TopSentences = 3
	}
	return &Refiner{cfg: cfg, strategy: strategy, norm: norm}
}

// Refine produces one subsection per ranked section.
func (r *Refiner) Refine(ctx context.Context, ranked []document.RankedSection, q document.Query) []document.Subsection {
	subs := make([]document.Subsection, 0, len(ranked))
	for _, rs := range ranked {
		var text string
		switch r.cfg.Mode {
		case ModeQuery:
			text = r.queryExcerpt(ctx, rs.Section, q)
		default:
			text = r.greedyExcerpt(rs.Body)
		}
		if text == "" {
			continue
		}
		subs = append(subs, document.Subsection{
			Document:    rs.Document,
			PageNumber:  rs.PageNumber,
			Title:       rs.Title,
			RefinedText: text,
			Score:       rs.Score,
		})
	}
	return subs
}

// greedyExcerpt accumulates leading sentences, skipping very short ones,
// until the sentence or word cap is hit. When too few sentences meet the
// per-sentence minimum, the skipped ones are restored in their original
// positions, so short leading sentences still make the excerpt. If the
// result is under the character floor it appends further sentences, then
// hard-truncates.
func (r *Refiner) greedyExcerpt(body string) string {
	sentences := SplitSentences(body)
	if len(sentences) == 0 {
		return truncate(strings.TrimSpace(body), r.cfg.MaxChars)
	}

	picked := make([]int, 0, r.cfg.MaxSentences)
	var skipped []int
	words := 0
	next := 0
	for i, s := range sentences {
		next = i + 1
		if len(s) < r.cfg.MinSentenceChars {
			skipped = append(skipped, i)
			continue
		}
		picked = append(picked, i)
		words += len(strings.Fields(s))
		if len(picked) >= r.cfg.MaxSentences || words >= r.cfg.MaxWords {
			break
		}
	}
	for _, i := range skipped {
		if len(picked) >= r.cfg.MaxSentences {
			break
		}
		picked = append(picked, i)
	}
	if len(picked) == 0 {
		return truncate(strings.TrimSpace(body), r.cfg.MaxChars)
	}
	sort.Ints(picked)

	parts := make([]string, len(picked))
	for i, j := range picked {
		parts[i] = sentences[j]
	}
	excerpt := strings.Join(parts, " ")
	for next < len(sentences) && len(excerpt) < r.cfg.MinChars {
		excerpt = strings.TrimSpace(excerpt + " " + sentences[next])
		next++
	}
	return truncate(excerpt, r.cfg.MaxChars)
}

// queryExcerpt scores each sentence against the query and keeps the
// top-scoring ones in their original order.
func (r *Refiner) queryExcerpt(ctx context.Context, sec document.Section, q document.Query) string {
	sentences := SplitSentences(sec.Body)
	if len(sentences) == 0 {
		return truncate(strings.TrimSpace(sec.Body), r.cfg.MaxChars)
	}
	if r.strategy == nil || r.norm == nil {
		return r.greedyExcerpt(sec.Body)
	}

	candidates := make([]document.Section, len(sentences))
	for i, s := range sentences {
		candidates[i] = document.Section{
			Document:   sec.Document,
			PageNumber: sec.PageNumber,
			Title:      sec.Title,
			Body:       s,
			Normalized: r.norm.Normalize(s),
		}
	}
	scores := r.strategy.Score(ctx, candidates, q)

	idx := make([]int, len(sentences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	keep := idx
	if len(keep) > r.cfg.TopSentences {
		keep = keep[:r.cfg.TopSentences]
	}
	sort.Ints(keep)

	parts := make([]string, len(keep))
	for i, j := range keep {
		parts[i] = sentences[j]
	}
	return truncate(strings.Join(parts, " "), r.cfg.MaxChars)
}

// SplitSentences does basic sentence splitting on terminal punctuation.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
