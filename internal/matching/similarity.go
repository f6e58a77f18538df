// internal/matching/similarity.go
package matching

import (
	"math"
	"sort"

	"cardmatch-workers/internal/models"
)

// scoredCard pairs a candidate with its raw cosine similarity.
type scoredCard struct {
	card          models.CreditCard
	rawSimilarity float64
}

// CosineSimilarity computes dot(u,v)/(|u|*|v|). Mismatched lengths and
// zero-magnitude vectors yield 0 rather than an error: a degenerate
// embedding should rank last, not abort the request.
func CosineSimilarity(u, v []float64) float64 {
	if len(u) == 0 || len(u) != len(v) {
		return 0
	}

	var dot, normU, normV float64
	for i := range u {
		dot += u[i] * v[i]
		normU += u[i] * u[i]
		normV += v[i] * v[i]
	}

	if normU == 0 || normV == 0 {
		return 0
	}
	return dot / (math.Sqrt(normU) * math.Sqrt(normV))
}

// rankBySimilarity sorts candidates by descending cosine similarity against
// the profile vector. The sort is stable: ties keep catalog-filtered order.
func rankBySimilarity(profileVec []float64, cards []models.CreditCard, cardVecs [][]float64) []scoredCard {
	scored := make([]scoredCard, len(cards))
	for i := range cards {
		scored[i] = scoredCard{
			card:          cards[i],
			rawSimilarity: CosineSimilarity(profileVec, cardVecs[i]),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].rawSimilarity > scored[j].rawSimilarity
	})

	return scored
}
