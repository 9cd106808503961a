package score

import (
	"sort"
	"strings"

	"github.com/docsift/docsift/internal/document"
	"github.com/docsift/docsift/internal/textnorm"
)

// ExtractKeywords returns the top-n most frequent content words of text,
// lower-cased, stopwords and short tokens removed. Ties break
// alphabetically so the result is deterministic.
func ExtractKeywords(norm *textnorm.Config, text string, n int) []string {
	freq := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?()[]\"'")
		if len(w) < norm.MinTokenLen || norm.IsStopword(w) {
			continue
		}
		freq[w]++
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}

// OverlapScore counts how many of the query keywords occur in the section
// body, normalized by section word count. Used as the lexical fallback when
// the vector space cannot be built.
func OverlapScore(sec document.Section, keywords []string) float64 {
	words := sec.WordCount()
	if words == 0 || len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(sec.Title + " " + sec.Body)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return float64(hits) / float64(words)
}

// KeywordFraction is the share of query keywords present in the section
// text, in [0,1]. Used as the keyword signal of the blended strategy.
func KeywordFraction(sec document.Section, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(sec.Title + " " + sec.Body)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// TitleHasKeyword reports whether any query keyword occurs in the title.
func TitleHasKeyword(sec document.Section, keywords []string) bool {
	lower := strings.ToLower(sec.Title)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
