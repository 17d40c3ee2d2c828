// Package benchmark drives the matcher over labeled query sets and
// aggregates accuracy and latency metrics.
//
// Query sets group queries into four difficulty categories: clear
// (unambiguous single-category questions), near_collision (questions
// overlapping multiple categories), adversarial (informal phrasing and
// unusual wording) and open_set (out-of-scope questions the matcher
// should abstain on).
package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
)

// Query is one labeled benchmark query. A nil ExpectedID marks an open-set
// query whose correct outcome is an abstain.
type Query struct {
	ID               string  `json:"id"`
	Category         string  `json:"category"`
	Query            string  `json:"query"`
	ExpectedID       *string `json:"expected_id"`
	ExpectedCategory *string `json:"expected_category"`
}

// QuerySet is the on-disk benchmark query document.
type QuerySet struct {
	Queries []Query `json:"queries"`
}

// LoadQueries reads a benchmark query set from a JSON file.
func LoadQueries(path string) (*QuerySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query set %s: %w", path, err)
	}
	var set QuerySet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse query set %s: %w", path, err)
	}
	if len(set.Queries) == 0 {
		return nil, fmt.Errorf("query set %s has no queries", path)
	}
	return &set, nil
}
