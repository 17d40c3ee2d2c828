package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/faqmatch/pkg/types"
)

func roleBundle(role string, vec []float32) map[string][]float32 {
	return map[string][]float32{role: vec}
}

func TestScoreIdenticalBundles(t *testing.T) {
	bundle := map[string][]float32{
		"question": {1, 2, 3},
		"keywords": {0, 1, 0},
		"category": {1, 0, 0},
		"answer":   {1, 1, 1},
	}

	score, err := Score(bundle, bundle, DefaultRoleWeights())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreWeightsRoles(t *testing.T) {
	// Question matches exactly, answer is orthogonal. Expected:
	// (1*1.0 + 0*0.4) / (1.0 + 0.4).
	query := map[string][]float32{
		"question": {1, 0},
		"answer":   {1, 0},
	}
	candidate := map[string][]float32{
		"question": {1, 0},
		"answer":   {0, 1},
	}

	score, err := Score(query, candidate, DefaultRoleWeights())
	require.NoError(t, err)
	assert.InDelta(t, 1.0/1.4, score, 1e-9)
}

func TestScoreSkipsUnsharedRoles(t *testing.T) {
	// Candidate has no keywords role; its weight must not enter the
	// denominator.
	query := map[string][]float32{
		"question": {1, 0},
		"keywords": {1, 1},
	}
	candidate := roleBundle("question", []float32{1, 0})

	score, err := Score(query, candidate, DefaultRoleWeights())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreNoSharedRoles(t *testing.T) {
	score, err := Score(roleBundle("question", []float32{1}), roleBundle("answer", []float32{1}), DefaultRoleWeights())
	require.NoError(t, err)
	assert.Zero(t, score)

	score, err = Score(nil, nil, DefaultRoleWeights())
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestScoreClampsNegative(t *testing.T) {
	// Opposed vectors cosine to -1; the combined score clamps to 0.
	score, err := Score(roleBundle("question", []float32{1, 0}), roleBundle("question", []float32{-1, 0}), DefaultRoleWeights())
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestScoreBounds(t *testing.T) {
	bundles := []map[string][]float32{
		{"question": {1, 2}, "answer": {3, -1}},
		{"question": {-1, 2}, "keywords": {0, 0}},
		{"category": {5, 5}},
	}
	for _, q := range bundles {
		for _, c := range bundles {
			score, err := Score(q, c, DefaultRoleWeights())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestScoreDimensionMismatch(t *testing.T) {
	_, err := Score(roleBundle("question", []float32{1, 0}), roleBundle("question", []float32{1, 0, 0}), DefaultRoleWeights())
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestScoreZeroVector(t *testing.T) {
	// A zero vector contributes cosine 0 but its weight still counts.
	query := map[string][]float32{
		"question": {1, 0},
		"answer":   {0, 0},
	}
	candidate := map[string][]float32{
		"question": {1, 0},
		"answer":   {1, 1},
	}

	score, err := Score(query, candidate, DefaultRoleWeights())
	require.NoError(t, err)
	assert.InDelta(t, 1.0/1.4, score, 1e-9)
}

func TestRankOrdersDescending(t *testing.T) {
	query := roleBundle("question", []float32{1, 0})
	candidates := []Candidate{
		{Roles: roleBundle("question", []float32{0, 1}), Metadata: types.CandidateMetadata{ID: "orthogonal"}},
		{Roles: roleBundle("question", []float32{1, 0}), Metadata: types.CandidateMetadata{ID: "exact"}},
		{Roles: roleBundle("question", []float32{1, 1}), Metadata: types.CandidateMetadata{ID: "partial"}},
	}

	ranked, err := Rank(query, candidates, DefaultRoleWeights())
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "exact", ranked[0].Metadata.ID)
	assert.Equal(t, "partial", ranked[1].Metadata.ID)
	assert.Equal(t, "orthogonal", ranked[2].Metadata.ID)
}

func TestRankTiesKeepCorpusOrder(t *testing.T) {
	query := roleBundle("question", []float32{1, 0})
	candidates := []Candidate{
		{Roles: roleBundle("question", []float32{1, 0}), Metadata: types.CandidateMetadata{ID: "first"}},
		{Roles: roleBundle("question", []float32{2, 0}), Metadata: types.CandidateMetadata{ID: "second"}},
	}

	ranked, err := Rank(query, candidates, DefaultRoleWeights())
	require.NoError(t, err)
	assert.Equal(t, "first", ranked[0].Metadata.ID)
	assert.Equal(t, "second", ranked[1].Metadata.ID)
}

func TestRankEmptyCorpus(t *testing.T) {
	ranked, err := Rank(roleBundle("question", []float32{1}), nil, DefaultRoleWeights())
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestDecideMatch(t *testing.T) {
	ranked := []types.ScoredCandidate{
		{Score: 0.9, Metadata: types.CandidateMetadata{ID: "a", Category: types.CategoryAccount, Answer: "answer a"}},
		{Score: 0.5, Metadata: types.CandidateMetadata{ID: "b"}},
		{Score: 0.3, Metadata: types.CandidateMetadata{ID: "c"}},
		{Score: 0.1, Metadata: types.CandidateMetadata{ID: "d"}},
	}

	result := Decide(ranked, 0.40)
	assert.True(t, result.Matched())
	require.NotNil(t, result.QuestionID)
	assert.Equal(t, "a", *result.QuestionID)
	assert.Equal(t, types.CategoryAccount, *result.Category)
	assert.Equal(t, "answer a", *result.Answer)
	assert.Equal(t, 0.9, result.Confidence)

	require.Len(t, result.Top3, 3)
	assert.Equal(t, "a", result.Top3[0].QuestionID)
	assert.Equal(t, "c", result.Top3[2].QuestionID)
}

func TestDecideAbstainCarriesTopScore(t *testing.T) {
	ranked := []types.ScoredCandidate{
		{Score: 0.35, Metadata: types.CandidateMetadata{ID: "a"}},
	}

	result := Decide(ranked, 0.40)
	assert.False(t, result.Matched())
	assert.Nil(t, result.QuestionID)
	assert.Nil(t, result.Category)
	assert.Nil(t, result.Answer)
	assert.Equal(t, 0.35, result.Confidence)
	require.Len(t, result.Top3, 1)
	assert.Equal(t, "a", result.Top3[0].QuestionID)
}

func TestDecideExactThresholdMatches(t *testing.T) {
	ranked := []types.ScoredCandidate{{Score: 0.40, Metadata: types.CandidateMetadata{ID: "a"}}}
	assert.True(t, Decide(ranked, 0.40).Matched())
}

func TestDecideEmptyCorpus(t *testing.T) {
	result := Decide(nil, 0.40)
	assert.False(t, result.Matched())
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Top3)
}

func TestDecideThresholdMonotonicity(t *testing.T) {
	ranked := []types.ScoredCandidate{{Score: 0.45, Metadata: types.CandidateMetadata{ID: "a"}}}

	matchedLow := Decide(ranked, 0.30).Matched()
	matchedHigh := Decide(ranked, 0.60).Matched()
	assert.True(t, matchedLow)
	assert.False(t, matchedHigh)
}
