package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// ResultsDocument is the results.json payload.
type ResultsDocument struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Threshold float64   `json:"threshold"`
	Summary   Summary   `json:"summary"`
	Raw       []Result  `json:"raw"`
}

// parquetResult is the flat per-query schema for columnar output. Top-3
// diagnostics are carried as a JSON string.
type parquetResult struct {
	RunID            string  `parquet:"run_id"`
	QueryID          string  `parquet:"query_id"`
	QueryCategory    string  `parquet:"query_category"`
	Query            string  `parquet:"query"`
	ExpectedID       string  `parquet:"expected_id"`
	ExpectedCategory string  `parquet:"expected_category"`
	ResultID         string  `parquet:"result_id"`
	ResultCategory   string  `parquet:"result_category"`
	Confidence       float64 `parquet:"confidence"`
	LatencyMS        float64 `parquet:"latency_ms"`
	Correct          bool    `parquet:"correct"`
	Label            string  `parquet:"label"`
	CategoryCorrect  bool    `parquet:"category_correct"`
	Top3             string  `parquet:"top_3"`
}

// WriteResults saves a run to dir as results.json plus a per-query
// results.parquet, tagged with a fresh run id. Returns the run id.
func WriteResults(dir string, threshold float64, summary Summary, results []Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create results directory %s: %w", dir, err)
	}
	runID := uuid.New().String()

	doc := ResultsDocument{
		RunID:     runID,
		Timestamp: time.Now().UTC(),
		Threshold: threshold,
		Summary:   summary,
		Raw:       results,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "results.json"), data, 0644); err != nil {
		return "", fmt.Errorf("write results.json: %w", err)
	}

	rows := make([]parquetResult, 0, len(results))
	for _, r := range results {
		row := parquetResult{
			RunID:           runID,
			QueryID:         r.QueryID,
			QueryCategory:   r.QueryCategory,
			Query:           r.Query,
			Confidence:      r.Confidence,
			LatencyMS:       r.LatencyMS,
			Correct:         r.Correct,
			Label:           r.Label,
			CategoryCorrect: r.CategoryCorrect,
		}
		if r.ExpectedID != nil {
			row.ExpectedID = *r.ExpectedID
		}
		if r.ExpectedCategory != nil {
			row.ExpectedCategory = *r.ExpectedCategory
		}
		if r.ResultID != nil {
			row.ResultID = *r.ResultID
		}
		if r.ResultCategory != nil {
			row.ResultCategory = string(*r.ResultCategory)
		}
		if top3, err := json.Marshal(r.Top3); err == nil {
			row.Top3 = string(top3)
		}
		rows = append(rows, row)
	}
	if err := parquet.WriteFile(filepath.Join(dir, "results.parquet"), rows); err != nil {
		return "", fmt.Errorf("write results.parquet: %w", err)
	}

	return runID, nil
}
