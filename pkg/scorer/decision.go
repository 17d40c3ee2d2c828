package scorer

import "github.com/soundprediction/faqmatch/pkg/types"

// TopKDiagnostics is how many ranked candidates every result reports,
// match or abstain.
const TopKDiagnostics = 3

// DefaultThreshold is the calibrated confidence threshold. It is a
// configuration input everywhere it is consumed; this constant only seeds
// defaults.
const DefaultThreshold = 0.40

// Decide applies the confidence threshold to a ranked candidate list. The
// top candidate becomes the match when its score clears the threshold;
// otherwise the result abstains with nil match fields but still carries
// the top score as confidence, so callers can see how close an abstained
// query was. An empty ranking (empty corpus) yields the all-nil abstain
// result with confidence 0 and no diagnostics.
func Decide(ranked []types.ScoredCandidate, threshold float64) *types.MatchResult {
	result := &types.MatchResult{Top3: []types.TopScore{}}
	if len(ranked) == 0 {
		return result
	}

	for i := 0; i < len(ranked) && i < TopKDiagnostics; i++ {
		result.Top3 = append(result.Top3, types.TopScore{
			QuestionID: ranked[i].Metadata.ID,
			Score:      ranked[i].Score,
		})
	}

	top := ranked[0]
	result.Confidence = top.Score
	if top.Score >= threshold {
		result.QuestionID = &top.Metadata.ID
		result.Category = &top.Metadata.Category
		result.Answer = &top.Metadata.Answer
	}
	return result
}
