// Package request loads the persona and job-to-be-done that drive a run.
package request

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Default persona and job, used when no request source is present.
const (
	DefaultPersona = "Research Analyst"
	DefaultJob     = "Analyze and summarize key findings from the provided documents"
)

// RequestFile is the name of the structured request file looked up in the
// input directory.
const RequestFile = "challenge1b_input.json"

// Request is the persona/job pair for one run.
type Request struct {
	Persona string
	Job     string
}

// structured mirrors the request file layout.
type structured struct {
	Persona struct {
		Role string `json:"role" validate:"required,min=1"`
	} `json:"persona" validate:"required"`
	JobToBeDone struct {
		Task string `json:"task" validate:"required,min=1"`
	} `json:"job_to_be_done" validate:"required"`
	Documents []struct {
		Filename string `json:"filename"`
		Title    string `json:"title"`
	} `json:"documents"`
}

// Load resolves the request for an input directory. Lookup order: the
// structured JSON file, then persona.txt/job.txt, then documented defaults.
// A missing source is recovered, never fatal.
func Load(inputDir string, log *slog.Logger) Request {
	if req, err := loadStructured(filepath.Join(inputDir, RequestFile)); err == nil {
		return req
	} else if !os.IsNotExist(err) {
		log.Warn("request file unusable, trying plain-text sources", "error", err)
	}

	req := Request{Persona: DefaultPersona, Job: DefaultJob}
	if persona, err := readTrimmed(filepath.Join(inputDir, "persona.txt")); err == nil {
		req.Persona = persona
	} else {
		log.Info("persona source absent, using default", "persona", DefaultPersona)
	}
	if job, err := readTrimmed(filepath.Join(inputDir, "job.txt")); err == nil {
		req.Job = job
	} else {
		log.Info("job source absent, using default", "job", DefaultJob)
	}
	return req
}

func loadStructured(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, err
	}
	var s structured
	if err := json.Unmarshal(data, &s); err != nil {
		return Request{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := validator.New().Struct(&s); err != nil {
		return Request{}, fmt.Errorf("validate %s: %w", filepath.Base(path), err)
	}
	return Request{Persona: s.Persona.Role, Job: s.JobToBeDone.Task}, nil
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%s is empty", filepath.Base(path))
	}
	return text, nil
}
