package rank

import (
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/document"
)

func scored(title string, score float64) document.ScoredSection {
	return document.ScoredSection{
		Section: document.Section{
			Document: "doc.pdf",
			Title:    title,
			Body:     strings.TrimSpace(strings.Repeat("body text goes here. ", 10)),
		},
		Score: score,
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	in := []document.ScoredSection{
		scored("low", 0.2),
		scored("high", 0.9),
		scored("mid", 0.5),
	}
	out := Rank(in, 0)
	if len(out) != 3 {
		t.Fatalf("expected 3 ranked sections, got %d", len(out))
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i].Score < out[i+1].Score {
			t.Errorf("order violated at %d: %v < %v", i, out[i].Score, out[i+1].Score)
		}
	}
	if out[0].Title != "high" || out[2].Title != "low" {
		t.Errorf("unexpected order: %q %q %q", out[0].Title, out[1].Title, out[2].Title)
	}
}

func TestRank_TiesPreserveDiscoveryOrder(t *testing.T) {
	in := []document.ScoredSection{
		scored("first", 0.7),
		scored("second", 0.7),
		scored("third", 0.7),
	}
	out := Rank(in, 0)
	for i, want := range []string{"first", "second", "third"} {
		if out[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, out[i].Title)
		}
	}
}

func TestRank_RanksAreDense(t *testing.T) {
	in := []document.ScoredSection{
		scored("a", 0.9),
		scored("b", 0.9),
		scored("c", 0.1),
		scored("d", 0.4),
	}
	out := Rank(in, 0)
	for i, rs := range out {
		if rs.Rank != i+1 {
			t.Errorf("expected rank %d at position %d, got %d", i+1, i, rs.Rank)
		}
	}
}

func TestRank_ExcludesShortBodies(t *testing.T) {
	short := document.ScoredSection{
		Section: document.Section{Title: "short", Body: "tiny"},
		Score:   0.99,
	}
	in := []document.ScoredSection{short, scored("normal", 0.5)}
	out := Rank(in, 50)
	if len(out) != 1 {
		t.Fatalf("expected short body excluded, got %d sections", len(out))
	}
	if out[0].Title != "normal" || out[0].Rank != 1 {
		t.Errorf("expected normal section ranked 1, got %q rank %d", out[0].Title, out[0].Rank)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	if out := Rank(nil, 0); len(out) != 0 {
		t.Errorf("expected no output for empty input, got %d", len(out))
	}
}
