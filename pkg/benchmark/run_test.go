package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundprediction/faqmatch/pkg/types"
)

func strptr(s string) *string { return &s }

func matchedResult(id string, category types.Category, confidence float64) *types.MatchResult {
	answer := "some answer"
	return &types.MatchResult{
		QuestionID: &id,
		Category:   &category,
		Answer:     &answer,
		Confidence: confidence,
		Top3:       []types.TopScore{{QuestionID: id, Score: confidence}},
	}
}

func abstainedResult(confidence float64) *types.MatchResult {
	return &types.MatchResult{
		Confidence: confidence,
		Top3:       []types.TopScore{{QuestionID: "faq_near_miss", Score: confidence}},
	}
}

func TestScoreResultLabels(t *testing.T) {
	inScope := Query{
		ID:               "q1",
		Category:         "clear",
		Query:            "how do i reset my password",
		ExpectedID:       strptr("faq_reset_password"),
		ExpectedCategory: strptr("account"),
	}
	openSet := Query{
		ID:       "q2",
		Category: "open_set",
		Query:    "what is the meaning of life",
	}

	tests := []struct {
		name        string
		query       Query
		match       *types.MatchResult
		wantLabel   string
		wantCorrect bool
	}{
		{"correct match", inScope, matchedResult("faq_reset_password", types.CategoryAccount, 0.8), LabelCorrect, true},
		{"wrong match", inScope, matchedResult("faq_change_email", types.CategoryAccount, 0.6), LabelWrongMatch, false},
		{"false abstain", inScope, abstainedResult(0.3), LabelFalseAbstain, false},
		{"correct abstain", openSet, abstainedResult(0.2), LabelCorrectAbstain, true},
		{"false positive", openSet, matchedResult("faq_reset_password", types.CategoryAccount, 0.5), LabelFalsePositive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scoreResult(tt.query, tt.match)
			assert.Equal(t, tt.wantLabel, result.Label)
			assert.Equal(t, tt.wantCorrect, result.Correct)
		})
	}
}

func TestScoreResultCategoryCorrect(t *testing.T) {
	q := Query{
		ID:               "q1",
		ExpectedID:       strptr("faq_a"),
		ExpectedCategory: strptr("billing"),
	}

	// Right category on a wrong entry still counts as category-correct.
	result := scoreResult(q, matchedResult("faq_b", types.CategoryBilling, 0.6))
	assert.True(t, result.CategoryCorrect)
	assert.Equal(t, LabelWrongMatch, result.Label)

	result = scoreResult(q, matchedResult("faq_b", types.CategoryReturns, 0.6))
	assert.False(t, result.CategoryCorrect)

	// Open-set queries are category-correct only when no category comes back.
	open := Query{ID: "q2"}
	assert.True(t, scoreResult(open, abstainedResult(0.1)).CategoryCorrect)
	assert.False(t, scoreResult(open, matchedResult("faq_a", types.CategoryBilling, 0.5)).CategoryCorrect)
}

func TestAggregate(t *testing.T) {
	results := []Result{
		{QueryCategory: "clear", ExpectedID: strptr("a"), Correct: true, CategoryCorrect: true, Label: LabelCorrect, LatencyMS: 10},
		{QueryCategory: "clear", ExpectedID: strptr("b"), Correct: false, CategoryCorrect: true, Label: LabelWrongMatch, LatencyMS: 20},
		{QueryCategory: "adversarial", ExpectedID: strptr("c"), Correct: false, CategoryCorrect: false, Label: LabelFalseAbstain, LatencyMS: 30},
		{QueryCategory: "open_set", Correct: true, CategoryCorrect: true, Label: LabelCorrectAbstain, LatencyMS: 40},
	}

	summary := Aggregate(results)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Correct)
	assert.InDelta(t, 0.5, summary.Accuracy, 1e-9)
	assert.InDelta(t, 0.75, summary.CategoryAccuracy, 1e-9)

	assert.Equal(t, 3, summary.InScopeTotal)
	assert.Equal(t, 1, summary.InScopeCorrect)
	assert.InDelta(t, 1.0/3.0, summary.InScopeAccuracy, 1e-9)

	assert.Equal(t, 1, summary.OpenSetTotal)
	assert.Equal(t, 1, summary.OpenSetCorrect)
	assert.InDelta(t, 1.0, summary.OpenSetAccuracy, 1e-9)

	assert.InDelta(t, 25.0, summary.LatencyMeanMS, 1e-9)

	clear := summary.Categories["clear"]
	assert.Equal(t, 2, clear.Total)
	assert.Equal(t, 1, clear.Correct)
	assert.InDelta(t, 0.5, clear.Accuracy, 1e-9)
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Accuracy)
	// Nothing open-set to miss counts as perfect abstention.
	assert.InDelta(t, 1.0, summary.OpenSetAccuracy, 1e-9)
}

func TestAggregateLatencyP95(t *testing.T) {
	results := make([]Result, 100)
	for i := range results {
		results[i] = Result{
			ExpectedID: strptr("a"),
			LatencyMS:  float64(i + 1),
		}
	}

	summary := Aggregate(results)
	assert.InDelta(t, 96.0, summary.LatencyP95MS, 1e-9)
	assert.InDelta(t, 50.5, summary.LatencyMeanMS, 1e-9)
}
