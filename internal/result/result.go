// Package result assembles and serializes the output record.
//
// Schema choice (documented): the subsection list is keyed
// "subsection_analysis", section and subsection lists are capped at the
// configured top-K (default 15), and relevance scores are rounded to four
// decimal places.
package result

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/docsift/docsift/internal/document"
)

// Metadata describes the run that produced the record.
type Metadata struct {
	InputDocuments        []string `json:"input_documents"`
	Persona               string   `json:"persona"`
	JobToBeDone           string   `json:"job_to_be_done"`
	ProcessingTimestamp   string   `json:"processing_timestamp"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
}

// ExtractedSection is one ranked section in the output.
type ExtractedSection struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SubsectionAnalysis is one refined excerpt in the output.
type SubsectionAnalysis struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	SectionTitle   string  `json:"section_title"`
	RefinedText    string  `json:"refined_text"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Record is the full output document.
type Record struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// Assemble packages ranked sections and subsections into the output record.
func Assemble(inputDocs []string, persona, job string, started time.Time,
	ranked []document.RankedSection, subs []document.Subsection, topK int) *Record {

	rec := &Record{
		Metadata: Metadata{
			InputDocuments:        inputDocs,
			Persona:               persona,
			JobToBeDone:           job,
			ProcessingTimestamp:   time.Now().Format(time.RFC3339),
			ProcessingTimeSeconds: round2(time.Since(started).Seconds()),
		},
		ExtractedSections:  []ExtractedSection{},
		SubsectionAnalysis: []SubsectionAnalysis{},
	}

	for _, rs := range ranked {
		if rs.Rank > topK {
			break
		}
		rec.ExtractedSections = append(rec.ExtractedSections, ExtractedSection{
			Document:       rs.Document,
			PageNumber:     rs.PageNumber,
			SectionTitle:   rs.Title,
			ImportanceRank: rs.Rank,
			RelevanceScore: round4(rs.Score),
		})
	}

	for _, sub := range subs {
		rec.SubsectionAnalysis = append(rec.SubsectionAnalysis, SubsectionAnalysis{
			Document:       sub.Document,
			PageNumber:     sub.PageNumber,
			SectionTitle:   sub.Title,
			RefinedText:    sub.RefinedText,
			RelevanceScore: round4(sub.Score),
		})
	}

	return rec
}

// Write serializes the record to path with two-space indentation.
func (r *Record) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
