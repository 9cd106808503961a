package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/source"
)

// reservedNames are request files, never treated as input documents.
var reservedNames = map[string]bool{
	"persona.txt": true,
	"job.txt":     true,
}

// ScanInput lists the supported document files of the input directory, in
// stable name order. Zero documents or more than the configured maximum is
// an InputError; an oversized file is only a warning.
func ScanInput(dir string, cfg config.InputConfig, log *slog.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &InputError{Reason: fmt.Sprintf("read input directory %s: %v", dir, err)}
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !source.IsSupportedExtension(entry.Name()) {
			continue
		}
		// The persona/job sources share the directory with the documents.
		if reservedNames[entry.Name()] {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, &InputError{Reason: fmt.Sprintf("no supported documents found in %s", dir)}
	}
	if len(files) > cfg.MaxDocuments {
		return nil, &InputError{Reason: fmt.Sprintf("too many documents (%d), maximum is %d", len(files), cfg.MaxDocuments)}
	}

	warnBytes := int64(cfg.WarnFileMB) * 1024 * 1024
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.Size() > warnBytes {
			log.Warn("large input file", "file", filepath.Base(f),
				"size_mb", info.Size()/(1024*1024))
		}
	}
	return files, nil
}
