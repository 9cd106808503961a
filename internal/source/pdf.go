package source

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/docsift/docsift/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFAdapter extracts per-page text from PDF files. It tries the Go
// library first, then falls back to pdftotext if available.
type PDFAdapter struct {
	FallbackPdftotext bool
}

func (a *PDFAdapter) Extract(r io.Reader, filename string) (*document.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docsift-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := extractPDFPages(tmpPath)
	if err != nil && a.FallbackPdftotext {
		pages, err = extractPdftotextPages(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := &document.Document{Filename: filename}
	for i, page := range pages {
		text := strings.TrimSpace(page.text)
		if text == "" {
			continue
		}
		doc.Pages = append(doc.Pages, document.Page{
			Number:   i + 1,
			Text:     text,
			Headings: page.headings,
		})
	}
	return doc, nil
}

// pdfPage is one page of extracted text plus its structural heading
// candidates (lines set in a larger or bold font).
type pdfPage struct {
	text     string
	headings []string
}

func extractPDFPages(path string) ([]pdfPage, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]pdfPage, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, pdfPage{})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, pdfPage{})
			continue
		}
		pages = append(pages, pdfPage{
			text:     text,
			headings: headingCandidates(page.Content().Text),
		})
	}
	return pages, nil
}

// headingFontSize is the body-text size above which a line counts as a
// structural heading candidate.
const headingFontSize = 12

// headingCandidates groups text fragments into visual lines by baseline and
// keeps the ones set in a heading-sized or bold font.
func headingCandidates(texts []pdflib.Text) []string {
	if len(texts) == 0 {
		return nil
	}
	frags := make([]pdflib.Text, len(texts))
	copy(frags, texts)
	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y > frags[j].Y
		}
		return frags[i].X < frags[j].X
	})

	var (
		headings []string
		line     strings.Builder
		size     float64
		bold     bool
	)
	y := frags[0].Y
	flush := func() {
		t := strings.TrimSpace(line.String())
		if len(t) >= 3 && (size > headingFontSize || bold) {
			headings = append(headings, t)
		}
		line.Reset()
		size = 0
		bold = false
	}
	for _, frag := range frags {
		// Fragments on the same baseline form one line.
		if math.Abs(frag.Y-y) > 2 {
			flush()
			y = frag.Y
		}
		line.WriteString(frag.S)
		if frag.FontSize > size {
			size = frag.FontSize
		}
		if strings.Contains(strings.ToLower(frag.Font), "bold") {
			bold = true
		}
	}
	flush()
	return headings
}

func extractPdftotextPages(path string) ([]pdfPage, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	// pdftotext separates pages with form feeds.
	parts := strings.Split(string(out), "\f")
	pages := make([]pdfPage, len(parts))
	for i, p := range parts {
		pages[i] = pdfPage{text: p}
	}
	return pages, nil
}
