package document

import "strings"

// Document is one input file after text extraction.
type Document struct {
	Filename string // Base name of the source file.
	Pages    []Page // Ordered, 1-based page numbers.
}

// Page is the raw extracted text of one page. Headings carries heading
// candidates surfaced by the source adapter from document structure (font
// size, bold runs); empty when the source has no such signal.
type Page struct {
	Number   int // 1-based.
	Text     string
	Headings []string
}

// Section is a contiguous span of document text with an inferred title.
// It is the atomic unit that gets scored and ranked.
type Section struct {
	Document   string // Source filename.
	PageNumber int
	Title      string
	Body       string
	Normalized string // Set by the pipeline after normalization.
}

// WordCount returns the number of whitespace-separated words in the body.
func (s *Section) WordCount() int {
	return len(strings.Fields(s.Body))
}

// Query combines the persona and job-to-be-done into the matching target.
// Constructed once per run; immutable.
type Query struct {
	Persona    string
	Job        string
	Normalized string // Normalized persona+job token string.
}

// Raw returns the raw combined query text.
func (q Query) Raw() string {
	return q.Persona + " " + q.Job
}

// Context returns the synthesized context string used by semantic scoring.
func (q Query) Context() string {
	return q.Persona + " needs to " + q.Job
}

// ScoredSection is a Section plus its relevance score.
type ScoredSection struct {
	Section
	Score float64
}

// RankedSection is a ScoredSection plus its 1-based importance rank.
type RankedSection struct {
	ScoredSection
	Rank int
}

// Subsection is a bounded-length excerpt derived from a top-ranked Section.
type Subsection struct {
	Document    string
	PageNumber  int
	Title       string
	RefinedText string
	Score       float64
}
