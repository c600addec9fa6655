package score

import (
	"math"

	"github.com/spf13/cast"
)

// Weight override keys accepted in query-style override maps.
const (
	OverrideGwp         = "w_gwp"
	OverrideCircularity = "w_circularity"
	OverrideCost        = "w_cost"
)

// ResolveWeights merges the three weight tiers into a normalized weight
// set. Precedence, lowest to highest:
//
//  1. defaults — process-wide configuration
//  2. explicit — per-request weights from the payload (optional, partial)
//  3. overrides — "w_gwp"/"w_circularity"/"w_cost" string parameters
//
// Values that are absent, not parseable as a number or negative are
// ignored and the previous tier's value is kept; resolution never fails.
// Negative defaults are treated as zero, so the resolved weights are
// always non-negative. The merged set is divided by its sum so the
// result sums to 1.0. A merged sum ≤ 0 is treated as 1.0 to avoid
// dividing by zero.
func ResolveWeights(explicit map[string]any, overrides map[string]string, defaults Weights) Weights {
	resolved := Weights{
		Gwp:         math.Max(defaults.Gwp, 0),
		Circularity: math.Max(defaults.Circularity, 0),
		Cost:        math.Max(defaults.Cost, 0),
	}

	if explicit != nil {
		mergeWeight(&resolved.Gwp, explicit["gwp"])
		mergeWeight(&resolved.Circularity, explicit["circularity"])
		mergeWeight(&resolved.Cost, explicit["cost"])
	}

	if overrides != nil {
		mergeOverride(&resolved.Gwp, overrides, OverrideGwp)
		mergeOverride(&resolved.Circularity, overrides, OverrideCircularity)
		mergeOverride(&resolved.Cost, overrides, OverrideCost)
	}

	sum := resolved.Sum()
	if sum <= 0 {
		sum = 1.0
	}

	return Weights{
		Gwp:         resolved.Gwp / sum,
		Circularity: resolved.Circularity / sum,
		Cost:        resolved.Cost / sum,
	}
}

// mergeWeight replaces *dst with value if it parses as a finite
// non-negative number. A negative weight would let the composite leave
// the 0–100 scale, so it is ignored like an unparseable one.
func mergeWeight(dst *float64, value any) {
	if value == nil {
		return
	}
	parsed, err := cast.ToFloat64E(value)
	if err != nil || parsed < 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return
	}
	*dst = parsed
}

// mergeOverride replaces *dst with the named override parameter if the
// key is present and its value parses as a number.
func mergeOverride(dst *float64, overrides map[string]string, key string) {
	raw, found := overrides[key]
	if !found {
		return
	}
	mergeWeight(dst, raw)
}
