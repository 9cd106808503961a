package score

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/docsift/docsift/internal/document"
	"github.com/docsift/docsift/internal/textnorm"
)

// LexicalConfig holds the vector space parameters. They are tunable but
// fixed for a single run so scores stay comparable.
type LexicalConfig struct {
	MaxFeatures int     // Vocabulary size cap.
	NgramMin    int     // Smallest n-gram length.
	NgramMax    int     // Largest n-gram length.
	MinDocFreq  int     // Terms in fewer documents are dropped.
	MaxDocRatio float64 // Terms in a larger share of documents are dropped.
	Keywords    int     // Query keywords used by the overlap fallback.
}

// DefaultLexicalConfig mirrors the tuned vectorizer parameters.
func DefaultLexicalConfig() LexicalConfig {
	return LexicalConfig{
		MaxFeatures: 1000,
		NgramMin:    1,
		NgramMax:    2,
		MinDocFreq:  1,
		MaxDocRatio: 1.0,
		Keywords:    10,
	}
}

// Lexical scores sections by TF-IDF cosine similarity against the query.
// The query is injected as one extra corpus document so IDF statistics
// include it.
type Lexical struct {
	cfg  LexicalConfig
	norm *textnorm.Config
	log  *slog.Logger
}

// NewLexical creates the lexical strategy.
func NewLexical(cfg LexicalConfig, norm *textnorm.Config, log *slog.Logger) *Lexical {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 1000
	}
	if cfg.NgramMin <= 0 {
		cfg.NgramMin = 1
	}
	if cfg.NgramMax < cfg.NgramMin {
		cfg.NgramMax = cfg.NgramMin
	}
	if cfg.MinDocFreq <= 0 {
		cfg.MinDocFreq = 1
	}
	if cfg.MaxDocRatio <= 0 || cfg.MaxDocRatio > 1 {
		cfg.MaxDocRatio = 1.0
	}
	if cfg.Keywords <= 0 {
		cfg.Keywords = 10
	}
	return &Lexical{cfg: cfg, norm: norm, log: log}
}

func (l *Lexical) Name() string { return "lexical" }

func (l *Lexical) Score(ctx context.Context, sections []document.Section, q document.Query) []float64 {
	scores := make([]float64, len(sections))
	if len(sections) == 0 {
		return scores
	}

	// Corpus: every normalized section text plus the query as the last
	// document.
	corpus := make([][]string, 0, len(sections)+1)
	for _, sec := range sections {
		corpus = append(corpus, l.ngrams(sec.Normalized))
	}
	corpus = append(corpus, l.ngrams(q.Normalized))

	space, ok := l.fit(corpus)
	if !ok {
		// Empty vocabulary; degrade to keyword overlap.
		l.log.Warn("tfidf vocabulary empty, falling back to keyword overlap")
		keywords := ExtractKeywords(l.norm, q.Raw(), l.cfg.Keywords)
		for i, sec := range sections {
			scores[i] = OverlapScore(sec, keywords)
		}
		return scores
	}

	queryVec := space.vector(corpus[len(corpus)-1])
	for i := range sections {
		scores[i] = cosine(space.vector(corpus[i]), queryVec)
	}
	return scores
}

// ngrams expands a normalized token string into the configured n-gram terms.
func (l *Lexical) ngrams(normalized string) []string {
	tokens := strings.Fields(normalized)
	var terms []string
	for n := l.cfg.NgramMin; n <= l.cfg.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// vectorSpace is a fitted TF-IDF model.
type vectorSpace struct {
	vocab map[string]int
	idf   []float64
}

// fit builds the vocabulary and IDF weights over the corpus. Returns false
// when no term survives the frequency cutoffs.
func (l *Lexical) fit(corpus [][]string) (*vectorSpace, bool) {
	df := make(map[string]int)
	tf := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			tf[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := len(corpus)
	maxDF := int(l.cfg.MaxDocRatio * float64(n))
	terms := make([]string, 0, len(df))
	for term, d := range df {
		if d < l.cfg.MinDocFreq || d > maxDF {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil, false
	}

	// Cap the vocabulary at the most frequent terms, alphabetical on ties
	// for determinism.
	sort.Slice(terms, func(i, j int) bool {
		if tf[terms[i]] != tf[terms[j]] {
			return tf[terms[i]] > tf[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > l.cfg.MaxFeatures {
		terms = terms[:l.cfg.MaxFeatures]
	}
	sort.Strings(terms)

	space := &vectorSpace{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		space.vocab[term] = i
		// Smoothed IDF.
		space.idf[i] = math.Log((1+float64(n))/(1+float64(df[term]))) + 1
	}
	return space, true
}

// vector computes the L2-normalized TF-IDF vector of one document.
func (s *vectorSpace) vector(doc []string) []float64 {
	vec := make([]float64, len(s.idf))
	total := 0
	for _, term := range doc {
		if idx, ok := s.vocab[term]; ok {
			vec[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	var norm float64
	for i := range vec {
		vec[i] = vec[i] / float64(total) * s.idf[i]
		norm += vec[i] * vec[i]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
