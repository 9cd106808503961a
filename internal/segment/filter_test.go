package segment

import (
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/document"
)

func sectionWithBody(title, body string) document.Section {
	return document.Section{Document: "doc.pdf", PageNumber: 1, Title: title, Body: body}
}

func wordRun(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func TestFilter_DropsUnderLengthSections(t *testing.T) {
	sections := []document.Section{
		sectionWithBody("short", wordRun("alpha", 10)),
		sectionWithBody("long", wordRun("beta", 60)),
	}
	out := Filter(sections, DefaultFilterConfig())
	if len(out) != 1 {
		t.Fatalf("expected 1 section, got %d", len(out))
	}
	if out[0].Title != "long" {
		t.Errorf("expected the long section to survive, got %q", out[0].Title)
	}
}

func TestFilter_FirstOccurrenceWins(t *testing.T) {
	body := wordRun("gamma", 60)
	sections := []document.Section{
		sectionWithBody("first", body),
		sectionWithBody("second", body),
	}
	out := Filter(sections, DefaultFilterConfig())
	if len(out) != 1 {
		t.Fatalf("expected duplicates merged to 1 section, got %d", len(out))
	}
	if out[0].Title != "first" {
		t.Errorf("expected first occurrence kept, got %q", out[0].Title)
	}
}

func TestFilter_DedupKeyIgnoresCase(t *testing.T) {
	sections := []document.Section{
		sectionWithBody("lower", wordRun("delta", 60)),
		sectionWithBody("upper", wordRun("DELTA", 60)),
	}
	out := Filter(sections, DefaultFilterConfig())
	if len(out) != 1 {
		t.Errorf("expected case-insensitive dedup, got %d sections", len(out))
	}
}

func TestFilter_Idempotent(t *testing.T) {
	sections := []document.Section{
		sectionWithBody("a", wordRun("one", 60)),
		sectionWithBody("b", wordRun("two", 60)),
		sectionWithBody("a-dup", wordRun("one", 60)),
		sectionWithBody("tiny", wordRun("three", 5)),
	}
	once := Filter(sections, DefaultFilterConfig())
	twice := Filter(once, DefaultFilterConfig())
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d then %d sections", len(once), len(twice))
	}
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Errorf("order changed on second pass at %d: %q vs %q", i, once[i].Title, twice[i].Title)
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	sections := []document.Section{
		sectionWithBody("a", wordRun("one", 60)),
		sectionWithBody("b", wordRun("two", 60)),
		sectionWithBody("c", wordRun("three", 60)),
	}
	out := Filter(sections, DefaultFilterConfig())
	if len(out) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(out))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, out[i].Title)
		}
	}
}
