// internal/models/results.go
package models

// RankedCandidate is one entry of a recommendation response. Transient;
// exists only for the duration of a match request.
type RankedCandidate struct {
	Card          CreditCard `json:"card"`
	RawSimilarity float64    `json:"rawSimilarity"` // cosine, [-1, 1]
	DisplayScore  float64    `json:"displayScore"`  // rescaled, [0.7, 1.0]
	Tier          UserTier   `json:"tier"`
}

// Confidence buckets for pre-approval results.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// PreapprovalFactors lists the human-readable reasons behind a score.
// These are part of the contract, not incidental logging.
type PreapprovalFactors struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// PreapprovalResult is the outcome of the additive pre-approval model for
// one (profile, card) pair. Probability is always within [10, 95].
type PreapprovalResult struct {
	Probability    int                `json:"probability"`
	Confidence     string             `json:"confidence"`
	Recommendation string             `json:"recommendation"`
	Factors        PreapprovalFactors `json:"factors"`
}
