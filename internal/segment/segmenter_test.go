package segment

import (
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/document"
)

func prose(n int) string {
	// Sentences ending in a period never classify as headings.
	return strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy dog near the river bank. ", n))
}

func TestSegment_HeadingBecomesSectionTitle(t *testing.T) {
	doc := &document.Document{
		Filename: "guide.pdf",
		Pages: []document.Page{
			{Number: 1, Text: "Restaurants in Provence\n" + prose(3)},
		},
	}
	seg := New(Config{MinSectionChars: 40, MinSections: 1, KeywordMatches: 2}, nil)

	sections := seg.Segment(doc)
	if len(sections) == 0 {
		t.Fatal("expected at least one section")
	}
	found := false
	for _, s := range sections {
		if s.Title == "Restaurants in Provence" {
			found = true
			if s.Document != "guide.pdf" {
				t.Errorf("expected document guide.pdf, got %q", s.Document)
			}
			if s.PageNumber != 1 {
				t.Errorf("expected page 1, got %d", s.PageNumber)
			}
		}
	}
	if !found {
		t.Errorf("no section titled with the heading line, got %+v", sections)
	}
}

func TestSegment_FallbackOneSectionPerPage(t *testing.T) {
	doc := &document.Document{
		Filename: "plain.pdf",
		Pages: []document.Page{
			{Number: 1, Text: prose(4)},
			{Number: 2, Text: prose(4)},
		},
	}
	seg := New(DefaultConfig(), nil)

	sections := seg.Segment(doc)
	if len(sections) != 2 {
		t.Fatalf("expected 2 fallback sections, got %d", len(sections))
	}
	for i, s := range sections {
		if s.Title != "Page 1 Content" && s.Title != "Page 2 Content" {
			t.Errorf("unexpected fallback title %q", s.Title)
		}
		if s.Body == "" {
			t.Errorf("section %d has empty body", i)
		}
		if s.PageNumber != i+1 {
			t.Errorf("expected page %d, got %d", i+1, s.PageNumber)
		}
	}
}

func TestSegment_EmptyDocumentContributesNothing(t *testing.T) {
	doc := &document.Document{Filename: "empty.pdf"}
	seg := New(DefaultConfig(), nil)
	if got := seg.Segment(doc); len(got) != 0 {
		t.Errorf("expected no sections, got %d", len(got))
	}
}

func TestSegment_ShortSectionDropped(t *testing.T) {
	doc := &document.Document{
		Filename: "short.pdf",
		Pages: []document.Page{
			{Number: 1, Text: "Restaurants in Provence\ntiny."},
			{Number: 2, Text: "Historic Monuments\n" + prose(3)},
		},
	}
	seg := New(Config{MinSectionChars: 80, MinSections: 1, KeywordMatches: 2}, nil)
	for _, s := range seg.Segment(doc) {
		if s.Title == "Restaurants in Provence" {
			t.Errorf("sub-threshold section should have been dropped, got body %q", s.Body)
		}
	}
}

func TestSegment_StructuralHeadingsRestrictClassifier(t *testing.T) {
	// Both lines classify lexically, but only one is flagged by the
	// source's font-based channel.
	doc := &document.Document{
		Filename: "styled.pdf",
		Pages: []document.Page{
			{
				Number:   1,
				Text:     "Restaurants in Provence\n" + prose(3) + "\nHistoric Monuments\n" + prose(3),
				Headings: []string{"Restaurants in Provence"},
			},
		},
	}
	seg := New(Config{MinSectionChars: 40, MinSections: 1, KeywordMatches: 2}, nil)

	var titles []string
	for _, s := range seg.Segment(doc) {
		titles = append(titles, s.Title)
	}
	wantOne, wantNone := false, false
	for _, title := range titles {
		if title == "Restaurants in Provence" {
			wantOne = true
		}
		if title == "Historic Monuments" {
			wantNone = true
		}
	}
	if !wantOne {
		t.Errorf("flagged heading not used as a title, got %v", titles)
	}
	if wantNone {
		t.Errorf("unflagged line used as a title, got %v", titles)
	}
}

func TestSegment_StructuralHeadingMatchesDespiteSpacing(t *testing.T) {
	// The font channel reconstructs text from raw fragments, so spacing
	// can differ from the plain-text pass.
	doc := &document.Document{
		Filename: "styled.pdf",
		Pages: []document.Page{
			{
				Number:   1,
				Text:     "Restaurants in Provence\n" + prose(3),
				Headings: []string{"Restaurantsin Provence"},
			},
		},
	}
	seg := New(Config{MinSectionChars: 40, MinSections: 1, KeywordMatches: 2}, nil)

	found := false
	for _, s := range seg.Segment(doc) {
		if s.Title == "Restaurants in Provence" {
			found = true
		}
	}
	if !found {
		t.Error("expected the heading to match despite fragment spacing")
	}
}

func TestSegment_KeywordPassEmitsCategorySection(t *testing.T) {
	chunk := "Local restaurants serve fine cuisine and the food is remarkable by any measure here."
	doc := &document.Document{
		Filename: "food.pdf",
		Pages: []document.Page{
			{Number: 1, Text: chunk},
		},
	}
	seg := New(Config{MinSectionChars: 40, MinSections: 1, KeywordMatches: 2}, nil)

	found := false
	for _, s := range seg.Segment(doc) {
		if s.Title == "Dining" {
			found = true
		}
	}
	if !found {
		t.Error("expected a Dining category section from the keyword pass")
	}
}

func TestRuleClassifier(t *testing.T) {
	c := NewRuleClassifier()
	cases := []struct {
		line string
		want bool
	}{
		{"Introduction", true},
		{"Chapter 3", true},
		{"Section 12", true},
		{"3. Methods", true},
		{"IV. Results", true},
		{"Restaurants and Hotels", true},
		{"This sentence ends with a period.", false},
		{"42", false},
		{"", false},
		{strings.Repeat("Long ", 30), false},
	}
	for _, tc := range cases {
		if got := c.IsHeading(tc.line); got != tc.want {
			t.Errorf("IsHeading(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
