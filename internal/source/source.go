package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docsift/docsift/internal/document"
)

// Adapter converts raw document bytes into page-indexed text.
type Adapter interface {
	Extract(r io.Reader, filename string) (*document.Document, error)
}

// SupportedExtensions lists file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".docx": true,
}

// ForFile returns the appropriate adapter for a filename.
func ForFile(filename string) (Adapter, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFAdapter{}, nil
	case ".txt":
		return &TextAdapter{}, nil
	case ".md", ".markdown":
		return &MarkdownAdapter{}, nil
	case ".html", ".htm":
		return &HTMLAdapter{}, nil
	case ".docx":
		return &DOCXAdapter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// singlePage wraps whole-document text as a one-page document.
func singlePage(filename, text string) *document.Document {
	doc := &document.Document{Filename: filename}
	text = strings.TrimSpace(text)
	if text != "" {
		doc.Pages = []document.Page{{Number: 1, Text: text}}
	}
	return doc
}
