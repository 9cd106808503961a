package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root run configuration. Values come from an optional YAML
// file; a few knobs can also be overridden through environment variables.
type Config struct {
	// Strategy selects the scoring strategy: lexical, semantic or blended.
	Strategy string `yaml:"strategy"`
	// TopK is the number of ranked sections carried into the output and
	// refined into subsections.
	TopK int `yaml:"top_k"`

	Segmenter SegmenterConfig `yaml:"segmenter"`
	Filter    FilterConfig    `yaml:"filter"`
	Lexical   LexicalConfig   `yaml:"lexical"`
	Blend     BlendConfig     `yaml:"blend"`
	Refiner   RefinerConfig   `yaml:"refiner"`
	Ranker    RankerConfig    `yaml:"ranker"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Input     InputConfig     `yaml:"input"`
}

type SegmenterConfig struct {
	MinSectionChars int `yaml:"min_section_chars"`
	MinSections     int `yaml:"min_sections"`
	KeywordMatches  int `yaml:"keyword_matches"`
}

type FilterConfig struct {
	MinWords   int `yaml:"min_words"`
	HashTokens int `yaml:"hash_tokens"`
}

type LexicalConfig struct {
	MaxFeatures int     `yaml:"max_features"`
	NgramMin    int     `yaml:"ngram_min"`
	NgramMax    int     `yaml:"ngram_max"`
	MinDocFreq  int     `yaml:"min_doc_freq"`
	MaxDocRatio float64 `yaml:"max_doc_ratio"`
}

// BlendConfig carries the tuned blend weights. They are empirically set
// constants, overridable here but never re-derived per run.
type BlendConfig struct {
	Semantic   float64 `yaml:"semantic"`
	Keyword    float64 `yaml:"keyword"`
	Length     float64 `yaml:"length"`
	TitleBonus float64 `yaml:"title_bonus"`
}

type RefinerConfig struct {
	Mode             string `yaml:"mode"` // greedy or query
	MinSentenceChars int    `yaml:"min_sentence_chars"`
	MaxSentences     int    `yaml:"max_sentences"`
	MaxWords         int    `yaml:"max_words"`
	MinChars         int    `yaml:"min_chars"`
	MaxChars         int    `yaml:"max_chars"`
	TopSentences     int    `yaml:"top_sentences"`
}

type RankerConfig struct {
	MinBodyChars int `yaml:"min_body_chars"`
}

type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type InputConfig struct {
	MaxDocuments         int  `yaml:"max_documents"`
	WarnFileMB           int  `yaml:"warn_file_mb"`
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`
}

// Load reads the config from path. A missing file yields defaults.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Strategy: "lexical",
		TopK:     15,
		Segmenter: SegmenterConfig{
			MinSectionChars: 80,
			MinSections:     3,
			KeywordMatches:  2,
		},
		Filter: FilterConfig{
			MinWords:   50,
			HashTokens: 50,
		},
		Lexical: LexicalConfig{
			MaxFeatures: 1000,
			NgramMin:    1,
			NgramMax:    2,
			MinDocFreq:  1,
			MaxDocRatio: 1.0,
		},
		Blend: BlendConfig{
			Semantic:   0.5,
			Keyword:    0.3,
			Length:     0.1,
			TitleBonus: 0.1,
		},
		Refiner: RefinerConfig{
			Mode:             "greedy",
			MinSentenceChars: 20,
			MaxSentences:     4,
			MaxWords:         150,
			MinChars:         100,
			MaxChars:         500,
			TopSentences:     3,
		},
		Ranker: RankerConfig{
			MinBodyChars: 80,
		},
		Embedder: EmbedderConfig{
			BaseURL:     "https://api.openai.com/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "text-embedding-3-small",
			TimeoutSecs: 30,
		},
		Input: InputConfig{
			MaxDocuments:         10,
			WarnFileMB:           50,
			PDFFallbackPdftotext: true,
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	switch c.Strategy {
	case "lexical", "semantic", "blended":
	default:
		return fmt.Errorf("unknown strategy: %q", c.Strategy)
	}
	switch c.Refiner.Mode {
	case "greedy", "query":
	default:
		return fmt.Errorf("unknown refiner mode: %q", c.Refiner.Mode)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Strategy = envOr("DOCSIFT_STRATEGY", c.Strategy)
	c.TopK = envInt("DOCSIFT_TOP_K", c.TopK)
	c.Refiner.Mode = envOr("DOCSIFT_REFINER_MODE", c.Refiner.Mode)
	c.Embedder.BaseURL = envOr("DOCSIFT_EMBED_URL", c.Embedder.BaseURL)
	c.Embedder.Model = envOr("DOCSIFT_EMBED_MODEL", c.Embedder.Model)
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Strategy == "" {
		c.Strategy = def.Strategy
	}
	if c.TopK <= 0 {
		c.TopK = def.TopK
	}
	if c.Refiner.Mode == "" {
		c.Refiner.Mode = def.Refiner.Mode
	}
	if c.Refiner.MaxChars <= 0 {
		c.Refiner.MaxChars = def.Refiner.MaxChars
	}
	if c.Input.MaxDocuments <= 0 {
		c.Input.MaxDocuments = def.Input.MaxDocuments
	}
	if c.Input.WarnFileMB <= 0 {
		c.Input.WarnFileMB = def.Input.WarnFileMB
	}
	if c.Embedder.TimeoutSecs <= 0 {
		c.Embedder.TimeoutSecs = def.Embedder.TimeoutSecs
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
