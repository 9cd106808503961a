package score

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/document"
	"github.com/docsift/docsift/internal/textnorm"
)

// stubEncoder embeds any text mentioning "museum" along one axis and
// everything else along the other.
type stubEncoder struct {
	fail bool
}

func (e *stubEncoder) Encode(_ context.Context, text string) ([]float64, error) {
	if e.fail {
		return nil, errors.New("encoder unavailable")
	}
	if strings.Contains(strings.ToLower(text), "museum") {
		return []float64{1, 0}, nil
	}
	return []float64{0, 1}, nil
}

func TestSemantic_SimilarSectionScoresHigher(t *testing.T) {
	sections := []document.Section{
		{Title: "Museums", Body: "The city museum holds a famous collection."},
		{Title: "Hiking", Body: "Mountain trails wind through the hills."},
	}
	q := document.Query{Persona: "Art Lover", Job: "visit the museum district"}

	scores := NewSemantic(&stubEncoder{}, discardLogger()).
		Score(context.Background(), sections, q)

	if scores[0] <= scores[1] {
		t.Errorf("expected museum section to outscore hiking, got %v vs %v", scores[0], scores[1])
	}
}

func TestSemantic_EncoderFailureScoresZero(t *testing.T) {
	sections := []document.Section{
		{Title: "Museums", Body: "The city museum holds a famous collection."},
	}
	q := document.Query{Persona: "Art Lover", Job: "visit the museum district"}

	scores := NewSemantic(&stubEncoder{fail: true}, discardLogger()).
		Score(context.Background(), sections, q)

	if scores[0] != 0 {
		t.Errorf("expected 0.0 on encoder failure, got %v", scores[0])
	}
}

func TestBlended_TitleKeywordEarnsBonus(t *testing.T) {
	norm := textnorm.NewConfig()
	body := strings.TrimSpace(strings.Repeat("Plain filler sentence without signal words here. ", 10))
	withTitle := document.Section{Title: "Museum Visits", Body: body}
	without := document.Section{Title: "Other", Body: body}
	sections := []document.Section{withTitle, without}

	q := document.Query{Persona: "Art Lover", Job: "museum museum museum tour"}

	// A failing encoder zeroes the semantic part so the heuristic signals
	// can be observed alone.
	scores := NewBlended(&stubEncoder{fail: true}, norm, DefaultBlendWeights(), discardLogger()).
		Score(context.Background(), sections, q)

	diff := scores[0] - scores[1]
	if diff <= 0 {
		t.Fatalf("expected title match to add a bonus, got %v vs %v", scores[0], scores[1])
	}
}

func TestBlended_RewardsSubstantialContent(t *testing.T) {
	norm := textnorm.NewConfig()
	long := document.Section{Title: "A", Body: strings.TrimSpace(strings.Repeat("word ", 300))}
	short := document.Section{Title: "B", Body: "word"}
	sections := []document.Section{long, short}

	q := document.Query{Persona: "Reader", Job: "find substantial sections"}

	scores := NewBlended(&stubEncoder{fail: true}, norm, DefaultBlendWeights(), discardLogger()).
		Score(context.Background(), sections, q)

	if scores[0] <= scores[1] {
		t.Errorf("expected length signal to favor the longer section, got %v vs %v", scores[0], scores[1])
	}
}
