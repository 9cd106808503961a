package score

import (
	"context"
	"log/slog"

	"github.com/docsift/docsift/internal/document"
	"github.com/docsift/docsift/internal/textnorm"
)

// Encoder turns a text span into a fixed-length embedding vector.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float64, error)
}

// Semantic scores sections by embedding cosine similarity between the
// section text and the synthesized persona context.
type Semantic struct {
	enc Encoder
	log *slog.Logger
}

// NewSemantic creates the semantic strategy.
func NewSemantic(enc Encoder, log *slog.Logger) *Semantic {
	return &Semantic{enc: enc, log: log}
}

func (s *Semantic) Name() string { return "semantic" }

func (s *Semantic) Score(ctx context.Context, sections []document.Section, q document.Query) []float64 {
	scores := make([]float64, len(sections))
	queryVec, err := s.enc.Encode(ctx, q.Context())
	if err != nil {
		s.log.Warn("query embedding failed, sections unscored", "error", err)
		return scores
	}
	for i, sec := range sections {
		vec, err := s.enc.Encode(ctx, sec.Title+" "+sec.Body)
		if err != nil {
			s.log.Warn("section embedding failed", "document", sec.Document,
				"section", sec.Title, "error", err)
			continue
		}
		scores[i] = cosine(vec, queryVec)
	}
	return scores
}

// BlendWeights are the fixed weights of the blended strategy. Empirically
// tuned; override through configuration, never re-derive per run.
type BlendWeights struct {
	Semantic   float64
	Keyword    float64
	Length     float64
	TitleBonus float64
}

// DefaultBlendWeights returns the tuned constants.
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{
		Semantic:   0.5,
		Keyword:    0.3,
		Length:     0.1,
		TitleBonus: 0.1,
	}
}

// Blended combines the semantic signal with keyword overlap, a length score
// and a title-match bonus as a fixed weighted sum. Blended scores may
// slightly exceed 1.
type Blended struct {
	semantic    *Semantic
	norm        *textnorm.Config
	weights     BlendWeights
	keywords    int
	lengthWords int
	log         *slog.Logger
}

// NewBlended creates the blended strategy. lengthWords is the word count at
// which the length signal saturates.
func NewBlended(enc Encoder, norm *textnorm.Config, weights BlendWeights, log *slog.Logger) *Blended {
	return &Blended{
		semantic:    NewSemantic(enc, log),
		norm:        norm,
		weights:     weights,
		keywords:    10,
		lengthWords: 200,
		log:         log,
	}
}

func (b *Blended) Name() string { return "blended" }

func (b *Blended) Score(ctx context.Context, sections []document.Section, q document.Query) []float64 {
	scores := b.semantic.Score(ctx, sections, q)
	keywords := ExtractKeywords(b.norm, q.Raw(), b.keywords)
	for i, sec := range sections {
		s := b.weights.Semantic * scores[i]
		s += b.weights.Keyword * KeywordFraction(sec, keywords)
		s += b.weights.Length * b.lengthScore(&sec)
		if TitleHasKeyword(sec, keywords) {
			s += b.weights.TitleBonus
		}
		scores[i] = s
	}
	return scores
}

// lengthScore rewards substantial but not excessive content: word count
// normalized against the saturation point, capped at 1.
func (b *Blended) lengthScore(sec *document.Section) float64 {
	s := float64(sec.WordCount()) / float64(b.lengthWords)
	if s > 1 {
		s = 1
	}
	return s
}
