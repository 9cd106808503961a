package segment

import (
	"fmt"
	"strings"

	"github.com/docsift/docsift/internal/document"
)

// Config controls segmentation behavior.
type Config struct {
	MinSectionChars int // Sections with a shorter body are dropped.
	MinSections     int // Below this count the per-page fallback kicks in.
	KeywordMatches  int // Category keyword hits required by the secondary pass.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinSectionChars: 80,
		MinSections:     3,
		KeywordMatches:  2,
	}
}

// Segmenter splits extracted page text into titled candidate sections.
type Segmenter struct {
	cfg        Config
	classifier Classifier
}

// New creates a Segmenter. A nil classifier uses the default rule table.
func New(cfg Config, classifier Classifier) *Segmenter {
	if cfg.MinSectionChars <= 0 {
		cfg.MinSectionChars = 80
	}
	if cfg.MinSections <= 0 {
		cfg.MinSections = 3
	}
	if cfg.KeywordMatches <= 0 {
		cfg.KeywordMatches = 2
	}
	if classifier == nil {
		classifier = NewRuleClassifier()
	}
	return &Segmenter{cfg: cfg, classifier: classifier}
}

// Segment produces the ordered candidate sections of one document.
// It never fails; a document that yields nothing contributes nothing.
func (s *Segmenter) Segment(doc *document.Document) []document.Section {
	sections := s.headingPass(doc)

	// Too few sections means the heading heuristics found little to work
	// with; fall back to one section per page.
	if len(sections) < s.cfg.MinSections {
		sections = s.pagePass(doc)
	}

	// The keyword-category pass runs unconditionally and is merged in.
	// Overlap with the primary pass is resolved by the deduplicator.
	sections = append(sections, s.keywordPass(doc)...)

	return sections
}

// headingPass classifies lines and collects body runs under each heading.
func (s *Segmenter) headingPass(doc *document.Document) []document.Section {
	var sections []document.Section

	for _, page := range doc.Pages {
		var (
			title string
			body  []string
		)
		flush := func() {
			text := strings.TrimSpace(strings.Join(body, "\n"))
			if len(text) < s.cfg.MinSectionChars {
				return
			}
			t := title
			if t == "" {
				t = fmt.Sprintf("Page %d Content", page.Number)
			}
			sections = append(sections, document.Section{
				Document:   doc.Filename,
				PageNumber: page.Number,
				Title:      t,
				Body:       text,
			})
		}

		for _, line := range strings.Split(page.Text, "\n") {
			trimmed := strings.TrimSpace(line)
			if s.isHeadingLine(page, trimmed) {
				flush()
				title = trimmed
				body = body[:0]
				continue
			}
			if trimmed != "" {
				body = append(body, trimmed)
			}
		}
		flush()
	}

	return sections
}

// isHeadingLine decides whether a page line starts a new section. Pages that
// carry structural heading candidates (font size, bold) restrict the lexical
// classifier to lines matching one of them; other pages use the classifier
// alone.
func (s *Segmenter) isHeadingLine(page document.Page, line string) bool {
	if len(page.Headings) == 0 {
		return s.classifier.IsHeading(line)
	}
	key := foldKey(line)
	if key == "" {
		return false
	}
	for _, h := range page.Headings {
		if strings.Contains(key, foldKey(h)) {
			return s.classifier.IsHeading(line)
		}
	}
	return false
}

// foldKey lowercases and strips whitespace so candidate matching survives
// the spacing differences between the two extraction passes.
func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// pagePass emits one section per page, titled from the first heading-like
// line of the page when there is one.
func (s *Segmenter) pagePass(doc *document.Document) []document.Section {
	var sections []document.Section
	for _, page := range doc.Pages {
		text := strings.TrimSpace(page.Text)
		if text == "" {
			continue
		}
		title := fmt.Sprintf("Page %d Content", page.Number)
		for _, line := range strings.Split(page.Text, "\n") {
			trimmed := strings.TrimSpace(line)
			if s.isHeadingLine(page, trimmed) {
				title = trimmed
				break
			}
		}
		sections = append(sections, document.Section{
			Document:   doc.Filename,
			PageNumber: page.Number,
			Title:      title,
			Body:       text,
		})
	}
	return sections
}

// keywordPass scans paragraph-sized chunks for category keyword clusters
// and emits an extra candidate section per matching chunk.
func (s *Segmenter) keywordPass(doc *document.Document) []document.Section {
	var sections []document.Section
	for _, page := range doc.Pages {
		for _, chunk := range splitParagraphs(page.Text) {
			cat, ok := matchCategory(chunk, s.cfg.KeywordMatches)
			if !ok {
				continue
			}
			if len(chunk) < s.cfg.MinSectionChars {
				continue
			}
			sections = append(sections, document.Section{
				Document:   doc.Filename,
				PageNumber: page.Number,
				Title:      cat,
				Body:       chunk,
			})
		}
	}
	return sections
}

// splitParagraphs breaks page text into blank-line separated chunks.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// categoryKeywords maps a display title to the words whose co-occurrence
// marks a chunk as belonging to that category.
var categoryKeywords = []struct {
	Title    string
	Keywords []string
}{
	{"Dining", []string{"restaurants", "dining", "food", "cuisine", "eating"}},
	{"Activities", []string{"activities", "attractions", "tours", "adventure", "entertainment"}},
	{"Accommodation", []string{"hotels", "accommodation", "lodging", "resorts", "stay"}},
	{"Tips", []string{"tips", "tricks", "advice", "recommendations", "guide"}},
	{"Culture", []string{"culture", "traditions", "history", "heritage", "festivals"}},
	{"Cities", []string{"cities", "towns", "villages", "destinations", "places"}},
}

// matchCategory returns the first category with at least minMatches distinct
// keyword hits in the chunk.
func matchCategory(chunk string, minMatches int) (string, bool) {
	lower := strings.ToLower(chunk)
	for _, cat := range categoryKeywords {
		hits := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits >= minMatches {
			return cat.Title, true
		}
	}
	return "", false
}
