// Package corpus loads the FAQ corpus from newline-delimited JSON and
// encodes it into an immutable in-memory snapshot.
//
// The corpus is read once at startup; the resulting Snapshot is read-only
// shared state for the rest of the process. Reloading means building a
// whole new Snapshot and swapping the reference, never mutating in place.
package corpus

import (
	"encoding/json"
	"fmt"

	"github.com/soundprediction/faqmatch/pkg/normalize"
)

// Keywords accepts the corpus source's two keyword shapes: a JSON list of
// strings or a single string.
type Keywords []string

// UnmarshalJSON implements json.Unmarshaler.
func (k *Keywords) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*k = nil
		} else {
			*k = []string{single}
		}
		return nil
	}
	return fmt.Errorf("keywords must be a string or a list of strings, got %s", data)
}

// Entry is one corpus line. Only question and answer are required;
// question_id and category are derived when absent.
type Entry struct {
	QuestionID string   `json:"question_id"`
	Category   string   `json:"category"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Keywords   Keywords `json:"keywords"`
}

// Raw converts the entry to the normalizer's input shape.
func (e Entry) Raw() normalize.RawEntry {
	return normalize.RawEntry{
		QuestionID: e.QuestionID,
		Category:   e.Category,
		Question:   e.Question,
		Answer:     e.Answer,
		Keywords:   e.Keywords,
	}
}
