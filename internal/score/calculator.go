package score

import "math"

// Rating labels ordered from best to worst.
const (
	RatingAPlus = "A+"
	RatingA     = "A"
	RatingB     = "B"
	RatingC     = "C"
	RatingD     = "D"
)

// Calculator computes composite sustainability scores from raw metrics.
// The three ceilings define the worst case (for bad metrics) or best case
// (for the good metric) used during normalization. They are process-wide
// configuration, fixed at startup; the calculator itself is stateless and
// safe for concurrent use.
type Calculator struct {
	gwpMax         float64
	costMax        float64
	circularityMax float64
}

// NewCalculator creates a calculator with the given normalization
// ceilings for gwp, cost and circularity.
func NewCalculator(gwpMax, costMax, circularityMax float64) *Calculator {
	return &Calculator{
		gwpMax:         gwpMax,
		costMax:        costMax,
		circularityMax: circularityMax,
	}
}

// clamp restricts value to the interval [lower, upper].
func clamp(value, lower, upper float64) float64 {
	return math.Max(lower, math.Min(upper, value))
}

// NormalizeBad maps a metric where higher is worse (gwp, cost) onto the
// 0–100 scale: raw 0 scores 100, raw ≥ max scores 0. The raw value is
// clamped to [0, max] first, so the mapping saturates instead of going
// negative. A ceiling ≤ 0 means the metric is unmeasurable and scores the
// maximum 100.
func NormalizeBad(raw, max float64) float64 {
	if max <= 0 {
		return 100.0
	}
	return (1 - clamp(raw, 0, max)/max) * 100.0
}

// NormalizeGood maps a metric where higher is better (circularity) onto
// the 0–100 scale: raw 0 scores 0, raw ≥ max scores 100. Same clamping
// and zero-ceiling fallback as NormalizeBad.
func NormalizeGood(raw, max float64) float64 {
	if max <= 0 {
		return 100.0
	}
	return clamp(raw, 0, max) / max * 100.0
}

// Compute normalizes the three raw metrics and combines them into one
// composite score under the given weights.
//
// The weights are re-normalized here even when they come from
// ResolveWeights: callers are not required to route through the resolver.
// A negative weight is treated as zero and a zero sum falls back to 1.0,
// so the composite stays in [0, 100] regardless of input. The composite
// is rounded to two decimals, half away from zero (math.Round); the
// returned subscores are unrounded.
func (c *Calculator) Compute(m Metrics, w Weights) (float64, Subscores) {
	subscores := Subscores{
		Gwp:         NormalizeBad(m.Gwp, c.gwpMax),
		Circularity: NormalizeGood(m.Circularity, c.circularityMax),
		Cost:        NormalizeBad(m.Cost, c.costMax),
	}

	wGwp := math.Max(w.Gwp, 0)
	wCircularity := math.Max(w.Circularity, 0)
	wCost := math.Max(w.Cost, 0)

	sum := wGwp + wCircularity + wCost
	if sum <= 0 {
		sum = 1.0
	}

	composite := subscores.Gwp*(wGwp/sum) +
		subscores.Circularity*(wCircularity/sum) +
		subscores.Cost*(wCost/sum)

	return math.Round(composite*100) / 100, subscores
}

// Score runs the full pipeline for one request: it computes the
// composite under the given weights and classifies it. The weights are
// echoed back in the result so callers can report the distribution that
// was actually applied.
func (c *Calculator) Score(m Metrics, w Weights) Result {
	composite, subscores := c.Compute(m, w)
	return Result{
		Score:     composite,
		Rating:    MapRating(composite),
		Subscores: subscores,
		Weights:   w,
	}
}

// MapRating converts a composite score into its letter rating. Buckets
// are inclusive on the lower edge and evaluated best-first: ≥90 A+,
// ≥80 A, ≥70 B, ≥60 C, everything below D.
func MapRating(score float64) string {
	switch {
	case score >= 90:
		return RatingAPlus
	case score >= 80:
		return RatingA
	case score >= 70:
		return RatingB
	case score >= 60:
		return RatingC
	default:
		return RatingD
	}
}
