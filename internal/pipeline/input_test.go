package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/docsift/docsift/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScanInput_EmptyDirectoryIsInputError(t *testing.T) {
	dir := t.TempDir()
	_, err := ScanInput(dir, config.Default().Input, discardLogger())
	if err == nil {
		t.Fatal("expected an error for an empty directory")
	}
	if !IsInputError(err) {
		t.Errorf("expected InputError, got %T: %v", err, err)
	}
}

func TestScanInput_UnsupportedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "notes.xyz", "irrelevant")
	_, err := ScanInput(dir, config.Default().Input, discardLogger())
	if !IsInputError(err) {
		t.Errorf("expected InputError when only unsupported files exist, got %v", err)
	}
}

func TestScanInput_TooManyDocuments(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 11; i++ {
		writeInput(t, dir, fmt.Sprintf("doc%02d.txt", i), "content")
	}
	_, err := ScanInput(dir, config.Default().Input, discardLogger())
	if !IsInputError(err) {
		t.Fatalf("expected InputError for 11 documents, got %v", err)
	}
}

func TestScanInput_ReturnsSortedSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "b.txt", "second")
	writeInput(t, dir, "a.txt", "first")
	writeInput(t, dir, "persona.xyz", "skip me")

	files, err := ScanInput(dir, config.Default().Input, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if filepath.Base(files[0]) != "a.txt" || filepath.Base(files[1]) != "b.txt" {
		t.Errorf("expected sorted order, got %v", files)
	}
}

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
