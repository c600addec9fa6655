package score

// Metrics holds the three raw sustainability metrics of a product.
// Gwp and Cost are "bad" metrics (higher is worse), Circularity is a
// "good" metric (higher is better). The engine never rejects values here;
// out-of-range inputs are clamped during normalization.
type Metrics struct {
	Gwp         float64 `json:"gwp"`
	Circularity float64 `json:"circularity"`
	Cost        float64 `json:"cost"`
}

// Weights holds the relative importance of the three metrics.
// A resolved weight set is non-negative and sums to 1.0.
type Weights struct {
	Gwp         float64 `json:"gwp"`
	Circularity float64 `json:"circularity"`
	Cost        float64 `json:"cost"`
}

// Sum returns the total of the three weights.
func (w Weights) Sum() float64 {
	return w.Gwp + w.Circularity + w.Cost
}

// Subscores holds the per-metric normalized scores on the common 0–100
// scale. Subscores are reported unrounded; only the composite is rounded.
type Subscores struct {
	Gwp         float64 `json:"gwp"`
	Circularity float64 `json:"circularity"`
	Cost        float64 `json:"cost"`
}

// Result is the outcome of scoring one product: the rounded composite
// score in [0,100], its letter rating and the unrounded subscores.
type Result struct {
	Score     float64   `json:"sustainability_score"`
	Rating    string    `json:"rating"`
	Subscores Subscores `json:"subscores"`
	Weights   Weights   `json:"weights"`
}
