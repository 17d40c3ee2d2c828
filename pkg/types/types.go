package types

// Category is one label from the fixed closed category set.
type Category string

const (
	CategoryAccount   Category = "account"
	CategoryBilling   Category = "billing"
	CategoryProduct   Category = "product"
	CategoryShipping  Category = "shipping"
	CategoryReturns   Category = "returns"
	CategoryTechnical Category = "technical"
	CategoryGeneral   Category = "general"
)

// Categories returns the fixed category set in its canonical enumeration
// order. The classifier resolves signal-count ties by taking the first
// category in this order, so the order is part of the contract.
func Categories() []Category {
	return []Category{
		CategoryAccount,
		CategoryBilling,
		CategoryProduct,
		CategoryShipping,
		CategoryReturns,
		CategoryTechnical,
		CategoryGeneral,
	}
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// CanonicalRecord is the normalized form of either an FAQ entry or a query.
// QuestionText and AnswerText are lowercased with punctuation stripped;
// KeywordsText is a space-joined token string. Query records carry an empty
// ID and AnswerText.
type CanonicalRecord struct {
	ID           string
	Category     Category
	QuestionText string
	AnswerText   string
	KeywordsText string
}

// IsQuery reports whether the record came from a raw query rather than a
// stored FAQ entry.
func (r CanonicalRecord) IsQuery() bool {
	return r.ID == ""
}

// CandidateMetadata is the denormalized view attached to each encoded FAQ
// entry for result reporting. Text fields keep their original casing.
type CandidateMetadata struct {
	ID       string   `json:"question_id"`
	Category Category `json:"category"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
}

// ScoredCandidate pairs a combined similarity score in [0,1] with the
// candidate it was computed against.
type ScoredCandidate struct {
	Score    float64
	Metadata CandidateMetadata
}

// TopScore is an (id, score) pair reported as diagnostic payload on every
// match result, regardless of the match/abstain decision.
type TopScore struct {
	QuestionID string  `json:"question_id"`
	Score      float64 `json:"score"`
}

// MatchResult is the outcome of matching one query against the corpus.
// QuestionID, Category and Answer are nil together iff the matcher
// abstained (top score below threshold) or the corpus is empty. Confidence
// always carries the top score so callers can see how close an abstained
// query was.
type MatchResult struct {
	QuestionID *string    `json:"question_id"`
	Category   *Category  `json:"category"`
	Answer     *string    `json:"answer"`
	Confidence float64    `json:"confidence"`
	LatencyMS  float64    `json:"latency_ms"`
	Top3       []TopScore `json:"top_3"`
}

// Matched reports whether the result carries a confident match.
func (r *MatchResult) Matched() bool {
	return r.QuestionID != nil
}
