package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/docsift/docsift/internal/document"
)

// TextAdapter handles plain text files. Form feeds act as page breaks;
// a file without them becomes a single page.
type TextAdapter struct{}

func (a *TextAdapter) Extract(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var buf strings.Builder
	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := &document.Document{Filename: filename}
	pageNum := 0
	for _, page := range strings.Split(buf.String(), "\f") {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		pageNum++
		doc.Pages = append(doc.Pages, document.Page{Number: pageNum, Text: page})
	}
	return doc, nil
}
