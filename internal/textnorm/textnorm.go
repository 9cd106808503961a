// Package textnorm turns raw text into the normalized token form used for
// relevance scoring: whitespace collapsed, punctuation stripped, lower-cased,
// stopwords removed, tokens stemmed.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Config holds the fixed normalizer state (stopword set, minimum token
// length). Built once per run and never mutated afterwards.
type Config struct {
	MinTokenLen int
	stopwords   map[string]struct{}
}

// NewConfig builds the default normalizer configuration.
func NewConfig() *Config {
	return &Config{
		MinTokenLen: 3,
		stopwords:   defaultStopwords(),
	}
}

// IsStopword reports whether the lower-cased token is in the stopword set.
func (c *Config) IsStopword(tok string) bool {
	_, ok := c.stopwords[tok]
	return ok
}

// Tokens normalizes text into a stemmed token sequence.
func (c *Config) Tokens(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = stripNonLetters(w)
		if len(w) < c.MinTokenLen {
			continue
		}
		if c.IsStopword(w) {
			continue
		}
		out = append(out, english.Stem(w, false))
	}
	return out
}

// Normalize returns the space-joined normalized token string, suitable for
// use as a similarity-scoring document.
func (c *Config) Normalize(text string) string {
	return strings.Join(c.Tokens(text), " ")
}

// stripNonLetters removes every non-letter rune. A token that contained any
// digits or symbols keeps only its alphabetic part; purely non-alphabetic
// tokens collapse to the empty string and are dropped by the caller.
func stripNonLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that", "these",
		"those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through",
		"during", "before", "after", "above", "below", "out", "off", "own",
		"same", "too", "very", "can", "will", "just", "should", "now",
		"i", "you", "he", "she", "we", "they", "me", "him", "her", "us",
		"them", "my", "your", "his", "its", "our", "their", "what", "which",
		"who", "whom", "when", "where", "why", "how", "all", "any", "both",
		"each", "few", "more", "most", "other", "some", "no", "nor", "not",
		"only", "do", "does", "did", "doing", "have", "has", "had", "having",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
