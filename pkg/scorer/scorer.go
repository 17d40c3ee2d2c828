// Package scorer implements the role-weighted similarity scoring core and
// the match decision policy.
//
// A query and a candidate each arrive as a flat role-to-vector bundle. The
// scorer computes cosine similarity per role, combines the per-role
// similarities through a fixed, ordered weight table, ranks the whole
// corpus with a full linear scan, and applies a confidence threshold to
// the top candidate.
package scorer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/soundprediction/faqmatch/pkg/types"
)

// ErrDimensionMismatch is returned when a role is present in both bundles
// with different vector lengths. Both sides of a role must share one fixed
// dimension; a mismatch is a fatal configuration error, never a runtime
// branch absorbed into a zero score.
var ErrDimensionMismatch = errors.New("scorer: role vector dimension mismatch")

// RoleWeight pairs a role name with its scoring weight.
type RoleWeight struct {
	Role   string  `mapstructure:"role"`
	Weight float64 `mapstructure:"weight"`
}

// RoleWeights is the ordered weight table. Order carries no scoring
// semantics but keeps iteration deterministic.
type RoleWeights []RoleWeight

// DefaultRoleWeights returns the calibrated weight table: question text is
// the dominant signal, keywords a mid-weight secondary text signal, and
// category and answer corroborating or penalizing signals.
func DefaultRoleWeights() RoleWeights {
	return RoleWeights{
		{Role: "question", Weight: 1.0},
		{Role: "keywords", Weight: 0.8},
		{Role: "category", Weight: 0.6},
		{Role: "answer", Weight: 0.4},
	}
}

// Candidate is one encoded corpus entry: its flattened role bundle plus
// the metadata reported on a match.
type Candidate struct {
	Roles    map[string][]float32
	Metadata types.CandidateMetadata
}

// Score combines per-role cosine similarities between a query bundle and a
// candidate bundle into one scalar in [0, 1]. Only roles present in both
// bundles contribute, each weighted by the table; the weighted sum is
// normalized by the participating weight total, then clamped at zero so
// adversarially opposed vectors cannot push the score negative. If no role
// is shared the score is exactly 0, never NaN.
func Score(query, candidate map[string][]float32, weights RoleWeights) (float64, error) {
	var weightedSum, weightTotal float64
	for _, rw := range weights {
		q, qok := query[rw.Role]
		c, cok := candidate[rw.Role]
		if !qok || !cok {
			continue
		}
		if len(q) != len(c) {
			return 0, fmt.Errorf("role %q: query has %d dims, candidate has %d: %w",
				rw.Role, len(q), len(c), ErrDimensionMismatch)
		}
		weightedSum += CosineSimilarity(q, c) * rw.Weight
		weightTotal += rw.Weight
	}
	if weightTotal == 0 {
		return 0, nil
	}
	score := weightedSum / weightTotal
	if score < 0 {
		score = 0
	}
	return score, nil
}

// Rank scores the query against every candidate with a full linear scan,
// no pruning, and returns all candidates ordered by score descending. Ties
// keep the original corpus order, so re-running an identical query against
// an unchanged corpus always yields an identical ranking.
func Rank(query map[string][]float32, candidates []Candidate, weights RoleWeights) ([]types.ScoredCandidate, error) {
	ranked := make([]types.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		score, err := Score(query, candidate.Roles, weights)
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", candidate.Metadata.ID, err)
		}
		ranked = append(ranked, types.ScoredCandidate{Score: score, Metadata: candidate.Metadata})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}
