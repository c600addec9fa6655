package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBad_Extremes(t *testing.T) {
	assert.Equal(t, 100.0, NormalizeBad(0, 50))
	assert.Equal(t, 0.0, NormalizeBad(50, 50))
	assert.Equal(t, 90.0, NormalizeBad(5, 50))
}

func TestNormalizeGood_Extremes(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeGood(0, 100))
	assert.Equal(t, 100.0, NormalizeGood(100, 100))
	assert.Equal(t, 80.0, NormalizeGood(80, 100))
}

func TestNormalize_ZeroCeilingFallsBackToMax(t *testing.T) {
	assert.Equal(t, 100.0, NormalizeBad(42, 0))
	assert.Equal(t, 100.0, NormalizeBad(42, -1))
	assert.Equal(t, 100.0, NormalizeGood(42, 0))
	assert.Equal(t, 100.0, NormalizeGood(42, -1))
}

func TestNormalize_ClampsOutOfRangeInput(t *testing.T) {
	// Values beyond the ceiling saturate instead of over-penalizing.
	assert.Equal(t, 0.0, NormalizeBad(500, 50))
	assert.Equal(t, NormalizeBad(50, 50), NormalizeBad(500, 50))
	assert.Equal(t, 100.0, NormalizeGood(500, 100))
	assert.Equal(t, 100.0, NormalizeBad(-10, 50))
	assert.Equal(t, 0.0, NormalizeGood(-10, 100))
}

func TestNormalize_Complementary(t *testing.T) {
	// normalizeGood(x, C) == 100 - normalizeBad(x, C) for x in [0, C].
	for _, x := range []float64{0, 1, 12.5, 25, 49.99, 50} {
		assert.InDelta(t, 100.0-NormalizeBad(x, 50), NormalizeGood(x, 50), 1e-9, "x=%v", x)
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	prevBad := 101.0
	prevGood := -1.0
	for _, x := range []float64{0, 5, 10, 20, 40, 50, 80} {
		bad := NormalizeBad(x, 50)
		good := NormalizeGood(x, 50)
		assert.LessOrEqual(t, bad, prevBad, "normalizeBad must not increase at x=%v", x)
		assert.GreaterOrEqual(t, good, prevGood, "normalizeGood must not decrease at x=%v", x)
		prevBad = bad
		prevGood = good
	}
}

func TestCompute_ReferenceScenario(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	metrics := Metrics{Gwp: 5.0, Circularity: 80.0, Cost: 10.0}
	weights := Weights{Gwp: 0.5, Circularity: 0.3, Cost: 0.2}

	composite, subscores := calc.Compute(metrics, weights)

	assert.Equal(t, 90.0, subscores.Gwp)
	assert.Equal(t, 80.0, subscores.Circularity)
	assert.Equal(t, 90.0, subscores.Cost)
	// 0.5*90 + 0.3*80 + 0.2*90 = 87.0
	assert.Equal(t, 87.0, composite)
	assert.Equal(t, RatingA, MapRating(composite))
}

func TestCompute_RenormalizesWeights(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	metrics := Metrics{Gwp: 5.0, Circularity: 80.0, Cost: 10.0}

	// Same proportions scaled by 10 must give the same composite.
	composite, _ := calc.Compute(metrics, Weights{Gwp: 5, Circularity: 3, Cost: 2})
	assert.Equal(t, 87.0, composite)
}

func TestCompute_ZeroWeightSum(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	composite, _ := calc.Compute(Metrics{Gwp: 5, Circularity: 80, Cost: 10}, Weights{})
	assert.Equal(t, 0.0, composite, "zero weights contribute nothing, sum falls back to 1.0")
}

func TestCompute_CompositeStaysInRange(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	cases := []Metrics{
		{},
		{Gwp: 1e9, Circularity: 0, Cost: 1e9},
		{Gwp: 0, Circularity: 1e9, Cost: 0},
		{Gwp: 25, Circularity: 50, Cost: 50},
	}
	for _, m := range cases {
		composite, _ := calc.Compute(m, Weights{Gwp: 0.5, Circularity: 0.3, Cost: 0.2})
		assert.GreaterOrEqual(t, composite, 0.0)
		assert.LessOrEqual(t, composite, 100.0)
	}
}

func TestCompute_NegativeWeightsTreatedAsZero(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	// Subscores {100, 0, 0}: a negative gwp weight must not pull the
	// composite below zero.
	composite, _ := calc.Compute(Metrics{Gwp: 0, Circularity: 0, Cost: 100}, Weights{Gwp: -1, Circularity: 2, Cost: 0})
	assert.Equal(t, 0.0, composite)
}

func TestCompute_NegativeExplicitWeightStaysInRange(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	resolved := ResolveWeights(map[string]any{"gwp": -1.0, "circularity": 2.0, "cost": 0.0}, nil, testDefaults)

	composite, _ := calc.Compute(Metrics{Gwp: 0, Circularity: 0, Cost: 100}, resolved)
	assert.GreaterOrEqual(t, composite, 0.0)
	assert.LessOrEqual(t, composite, 100.0)
}

func TestCompute_RoundsToTwoDecimals(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	// Equal weights over subscores 90/80/90 average to 86.666…,
	// rounded to 86.67; the subscores themselves stay unrounded.
	composite, subscores := calc.Compute(Metrics{Gwp: 5, Circularity: 80, Cost: 10}, Weights{Gwp: 1, Circularity: 1, Cost: 1})
	assert.Equal(t, 86.67, composite)
	assert.Equal(t, 90.0, subscores.Gwp)
}

func TestScore_FullPipeline(t *testing.T) {
	calc := NewCalculator(50, 100, 100)
	weights := Weights{Gwp: 0.5, Circularity: 0.3, Cost: 0.2}

	result := calc.Score(Metrics{Gwp: 5.0, Circularity: 80.0, Cost: 10.0}, weights)

	assert.Equal(t, 87.0, result.Score)
	assert.Equal(t, RatingA, result.Rating)
	assert.Equal(t, Subscores{Gwp: 90.0, Circularity: 80.0, Cost: 90.0}, result.Subscores)
	assert.Equal(t, weights, result.Weights)
}

func TestMapRating_Boundaries(t *testing.T) {
	cases := []struct {
		score  float64
		rating string
	}{
		{90.00, "A+"},
		{89.99, "A"},
		{80.00, "A"},
		{79.99, "B"},
		{70.00, "B"},
		{69.99, "C"},
		{60.00, "C"},
		{59.99, "D"},
		{100.0, "A+"},
		{0.0, "D"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.rating, MapRating(tc.score), "score=%v", tc.score)
	}
}
