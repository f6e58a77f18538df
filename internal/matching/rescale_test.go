// internal/matching/rescale_test.go
package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoostSimilarityScore_Bounds(t *testing.T) {
	assert.InDelta(t, 1.0, BoostSimilarityScore(0.9, 0.3, 0.9), 1e-9)
	assert.InDelta(t, 0.7, BoostSimilarityScore(0.3, 0.3, 0.9), 1e-9)
}

func TestBoostSimilarityScore_AlwaysWithinDisplayRange(t *testing.T) {
	for raw := -1.0; raw <= 1.0; raw += 0.05 {
		score := BoostSimilarityScore(raw, -1, 1)
		assert.GreaterOrEqual(t, score, 0.7)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestBoostSimilarityScore_PreservesOrder(t *testing.T) {
	lower := BoostSimilarityScore(0.5, 0.2, 0.9)
	higher := BoostSimilarityScore(0.6, 0.2, 0.9)

	assert.Greater(t, higher, lower)
}

func TestBoostSimilarityScore_PowerCurveSpreadsMidrange(t *testing.T) {
	mid := BoostSimilarityScore(0.55, 0.2, 0.9)
	linearMid := 0.7 + 0.3*0.5

	// the 0.6 exponent lifts midrange values above a linear mapping
	assert.Greater(t, mid, linearMid)
}

func TestBoostSimilarityScore_DegenerateRange(t *testing.T) {
	// max == min defines normalized as 0.5
	expected := 0.7 + 0.3*math.Pow(0.5, 0.6)
	assert.InDelta(t, expected, BoostSimilarityScore(0.42, 0.42, 0.42), 1e-9)
}
