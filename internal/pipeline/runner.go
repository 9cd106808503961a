// Package pipeline orchestrates a full run: scan input, extract, segment,
// filter, normalize, score, rank, refine, assemble.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/document"
	"github.com/docsift/docsift/internal/embed"
	"github.com/docsift/docsift/internal/rank"
	"github.com/docsift/docsift/internal/refine"
	"github.com/docsift/docsift/internal/request"
	"github.com/docsift/docsift/internal/result"
	"github.com/docsift/docsift/internal/score"
	"github.com/docsift/docsift/internal/segment"
	"github.com/docsift/docsift/internal/source"
	"github.com/docsift/docsift/internal/textnorm"
)

// Runner holds the immutable per-run collaborators.
type Runner struct {
	cfg       config.Config
	log       *slog.Logger
	norm      *textnorm.Config
	strategy  score.Strategy
	segmenter *segment.Segmenter
	refiner   *refine.Refiner
}

// New wires a Runner from configuration.
func New(cfg config.Config, log *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	norm := textnorm.NewConfig()

	var strategy score.Strategy
	switch cfg.Strategy {
	case "lexical":
		strategy = score.NewLexical(score.LexicalConfig{
			MaxFeatures: cfg.Lexical.MaxFeatures,
			NgramMin:    cfg.Lexical.NgramMin,
			NgramMax:    cfg.Lexical.NgramMax,
			MinDocFreq:  cfg.Lexical.MinDocFreq,
			MaxDocRatio: cfg.Lexical.MaxDocRatio,
		}, norm, log)
	case "semantic":
		strategy = score.NewSemantic(newEncoder(cfg.Embedder), log)
	case "blended":
		strategy = score.NewBlended(newEncoder(cfg.Embedder), norm, score.BlendWeights{
			Semantic:   cfg.Blend.Semantic,
			Keyword:    cfg.Blend.Keyword,
			Length:     cfg.Blend.Length,
			TitleBonus: cfg.Blend.TitleBonus,
		}, log)
	default:
		return nil, fmt.Errorf("unknown strategy: %q", cfg.Strategy)
	}

	segmenter := segment.New(segment.Config{
		MinSectionChars: cfg.Segmenter.MinSectionChars,
		MinSections:     cfg.Segmenter.MinSections,
		KeywordMatches:  cfg.Segmenter.KeywordMatches,
	}, nil)

	refiner := refine.New(refine.Config{
		Mode:             refine.Mode(cfg.Refiner.Mode),
		MinSentenceChars: cfg.Refiner.MinSentenceChars,
		MaxSentences:     cfg.Refiner.MaxSentences,
		MaxWords:         cfg.Refiner.MaxWords,
		MinChars:         cfg.Refiner.MinChars,
		MaxChars:         cfg.Refiner.MaxChars,
		TopSentences:     cfg.Refiner.TopSentences,
	}, strategy, norm)

	return &Runner{
		cfg:       cfg,
		log:       log,
		norm:      norm,
		strategy:  strategy,
		segmenter: segmenter,
		refiner:   refiner,
	}, nil
}

func newEncoder(cfg config.EmbedderConfig) score.Encoder {
	return embed.NewClient(embed.Config{
		BaseURL:   cfg.BaseURL,
		APIKeyEnv: cfg.APIKeyEnv,
		Model:     cfg.Model,
		Timeout:   time.Duration(cfg.TimeoutSecs) * time.Second,
	})
}

// Run processes the whole input directory and returns the output record.
func (r *Runner) Run(ctx context.Context, inputDir string) (*result.Record, error) {
	started := time.Now()

	files, err := ScanInput(inputDir, r.cfg.Input, r.log)
	if err != nil {
		return nil, err
	}
	r.log.Info("processing documents", "count", len(files), "strategy", r.strategy.Name())

	req := request.Load(inputDir, r.log)
	query := document.Query{Persona: req.Persona, Job: req.Job}
	query.Normalized = r.norm.Normalize(query.Raw())

	inputDocs := make([]string, 0, len(files))
	var sections []document.Section
	for _, path := range files {
		doc, err := r.extract(path)
		if err != nil {
			// Extraction failures are isolated; the document simply
			// contributes zero sections.
			r.log.Error("extraction failed, skipping document",
				"file", filepath.Base(path), "error", err)
			continue
		}
		inputDocs = append(inputDocs, doc.Filename)
		secs := r.segmenter.Segment(doc)
		r.log.Info("segmented document", "file", doc.Filename,
			"pages", len(doc.Pages), "sections", len(secs))
		sections = append(sections, secs...)
	}

	sections = segment.Filter(sections, segment.FilterConfig{
		MinWords:   r.cfg.Filter.MinWords,
		HashTokens: r.cfg.Filter.HashTokens,
	})
	for i := range sections {
		sections[i].Normalized = r.norm.Normalize(sections[i].Body)
	}

	r.log.Info("scoring sections", "count", len(sections))
	scores := r.strategy.Score(ctx, sections, query)

	scored := make([]document.ScoredSection, len(sections))
	for i, sec := range sections {
		scored[i] = document.ScoredSection{Section: sec, Score: scores[i]}
	}

	ranked := rank.Rank(scored, r.cfg.Ranker.MinBodyChars)

	top := ranked
	if len(top) > r.cfg.TopK {
		top = top[:r.cfg.TopK]
	}
	subs := r.refiner.Refine(ctx, top, query)

	rec := result.Assemble(inputDocs, query.Persona, query.Job, started, ranked, subs, r.cfg.TopK)
	r.log.Info("run complete", "ranked_sections", len(ranked),
		"subsections", len(subs), "elapsed", time.Since(started).Round(time.Millisecond))
	return rec, nil
}

func (r *Runner) extract(path string) (*document.Document, error) {
	name := filepath.Base(path)
	adapter, err := source.ForFile(name)
	if err != nil {
		return nil, err
	}
	if pdf, ok := adapter.(*source.PDFAdapter); ok {
		pdf.FallbackPdftotext = r.cfg.Input.PDFFallbackPdftotext
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return adapter.Extract(f, name)
}
