// internal/matching/rescale.go
package matching

import "math"

// BoostSimilarityScore maps a raw cosine similarity into the [0.7, 1.0]
// display range, given the min/max over the top-N candidate set. Raw
// similarities from short-text embeddings cluster tightly; the power curve
// spreads them out without changing relative order. When max == min the
// normalized value is defined as 0.5. This is a presentation transform
// applied after final ordering, never a ranking input.
func BoostSimilarityScore(rawScore, minScore, maxScore float64) float64 {
	normalized := 0.5
	if r := maxScore - minScore; r > 0 {
		normalized = (rawScore - minScore) / r
	}

	boosted := 0.7 + 0.3*math.Pow(normalized, 0.6)

	return math.Min(1, math.Max(0.7, boosted))
}
