package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/oklog/ulid/v2"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/pipeline"
)

func main() {
	inputDir := flag.String("input", "input", "Directory containing the documents and persona/job request")
	outputPath := flag.String("output", "output/challenge1b_output.json", "Path of the result JSON file")
	configPath := flag.String("config", "config.yaml", "Path of the optional config YAML")
	flag.Parse()

	// Optional .env for embedder credentials and overrides.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).
		With("run_id", ulid.Make().String())

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	runner, err := pipeline.New(cfg, log)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	rec, err := runner.Run(context.Background(), *inputDir)
	if err != nil {
		log.Error("run failed", "error", err, "fatal_input", pipeline.IsInputError(err))
		os.Exit(1)
	}

	if dir := filepath.Dir(*outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("create output directory", "error", err)
			os.Exit(1)
		}
	}
	if err := rec.Write(*outputPath); err != nil {
		log.Error("write output", "error", err)
		os.Exit(1)
	}
	log.Info("output saved", "path", *outputPath,
		"seconds", rec.Metadata.ProcessingTimeSeconds)
}
