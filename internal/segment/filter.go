package segment

import (
	"hash/fnv"
	"strings"

	"github.com/docsift/docsift/internal/document"
)

// FilterConfig controls the deduplicating quality filter.
type FilterConfig struct {
	MinWords   int // Sections with fewer words are dropped.
	HashTokens int // Body tokens hashed into the dedup key.
	MaxTracked int // Upper bound on the dedup set size.
}

// DefaultFilterConfig returns sensible defaults.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinWords:   50,
		HashTokens: 50,
		MaxTracked: 10000,
	}
}

// Filter removes under-length and near-duplicate sections. Two sections are
// near-duplicates when they collide on a hash of their first HashTokens
// lower-cased body tokens; the first occurrence wins. Order is preserved,
// and filtering its own output is a no-op.
func Filter(sections []document.Section, cfg FilterConfig) []document.Section {
	if cfg.MinWords <= 0 {
		cfg.MinWords = 50
	}
	if cfg.HashTokens <= 0 {
		cfg.HashTokens = 50
	}
	if cfg.MaxTracked <= 0 {
		cfg.MaxTracked = 10000
	}

	seen := make(map[uint64]struct{}, len(sections))
	out := make([]document.Section, 0, len(sections))
	for _, sec := range sections {
		if sec.WordCount() < cfg.MinWords {
			continue
		}
		key := dedupKey(sec.Body, cfg.HashTokens)
		if _, dup := seen[key]; dup {
			continue
		}
		if len(seen) < cfg.MaxTracked {
			seen[key] = struct{}{}
		}
		out = append(out, sec)
	}
	return out
}

// dedupKey hashes the first n lower-cased body tokens with FNV-64a.
func dedupKey(body string, n int) uint64 {
	tokens := strings.Fields(strings.ToLower(body))
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	h := fnv.New64a()
	for _, tok := range tokens {
		h.Write([]byte(tok))
		h.Write([]byte{' '})
	}
	return h.Sum64()
}
