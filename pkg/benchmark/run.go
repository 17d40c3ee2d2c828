package benchmark

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/soundprediction/faqmatch"
	"github.com/soundprediction/faqmatch/pkg/types"
)

// Outcome labels for one benchmark query.
const (
	LabelCorrect        = "correct"
	LabelWrongMatch     = "wrong_match"
	LabelFalseAbstain   = "false_abstain"
	LabelCorrectAbstain = "correct_abstain"
	LabelFalsePositive  = "false_positive"
)

// Result is the scored outcome of one benchmark query.
type Result struct {
	QueryID          string           `json:"query_id"`
	QueryCategory    string           `json:"query_category"`
	Query            string           `json:"query"`
	ExpectedID       *string          `json:"expected_id"`
	ExpectedCategory *string          `json:"expected_category"`
	ResultID         *string          `json:"result_id"`
	ResultCategory   *types.Category  `json:"result_category"`
	Confidence       float64          `json:"confidence"`
	LatencyMS        float64          `json:"latency_ms"`
	Top3             []types.TopScore `json:"top_3"`
	Correct          bool             `json:"correct"`
	Label            string           `json:"label"`
	CategoryCorrect  bool             `json:"category_correct"`
}

// Runner drives a matcher over a query set.
type Runner struct {
	matcher  faqmatch.QueryMatcher
	progress io.Writer
}

// NewRunner creates a Runner. A nil progress writer disables the progress
// bar.
func NewRunner(matcher faqmatch.QueryMatcher, progress io.Writer) *Runner {
	return &Runner{matcher: matcher, progress: progress}
}

// Run matches every query at the given threshold and scores the outcomes.
// Per-query match errors abort the run; they indicate setup bugs, not
// data conditions.
func (r *Runner) Run(ctx context.Context, queries []Query, threshold float64) ([]Result, error) {
	results := make([]Result, 0, len(queries))
	for i, q := range queries {
		r.printProgress(i+1, len(queries))

		match, err := r.matcher.MatchWithThreshold(ctx, q.Query, threshold)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", q.ID, err)
		}
		results = append(results, scoreResult(q, match))
	}
	if r.progress != nil {
		fmt.Fprintln(r.progress)
	}
	return results, nil
}

// scoreResult labels one match outcome against its expectation. Open-set
// queries (nil expected id) count an abstain as correct; in-scope queries
// require the exact expected entry.
func scoreResult(q Query, match *types.MatchResult) Result {
	result := Result{
		QueryID:          q.ID,
		QueryCategory:    q.Category,
		Query:            q.Query,
		ExpectedID:       q.ExpectedID,
		ExpectedCategory: q.ExpectedCategory,
		ResultID:         match.QuestionID,
		ResultCategory:   match.Category,
		Confidence:       match.Confidence,
		LatencyMS:        match.LatencyMS,
		Top3:             match.Top3,
	}

	switch {
	case q.ExpectedID == nil:
		if match.QuestionID == nil {
			result.Correct = true
			result.Label = LabelCorrectAbstain
		} else {
			result.Label = LabelFalsePositive
		}
	case match.QuestionID == nil:
		result.Label = LabelFalseAbstain
	case *match.QuestionID == *q.ExpectedID:
		result.Correct = true
		result.Label = LabelCorrect
	default:
		result.Label = LabelWrongMatch
	}

	if q.ExpectedCategory != nil {
		result.CategoryCorrect = match.Category != nil && string(*match.Category) == *q.ExpectedCategory
	} else {
		result.CategoryCorrect = match.Category == nil
	}
	return result
}

// printProgress renders a single-line progress bar.
func (r *Runner) printProgress(current, total int) {
	if r.progress == nil || total == 0 {
		return
	}
	const width = 30
	filled := width * current / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fmt.Fprintf(r.progress, "\r  [%s] %d/%d", bar, current, total)
}
