package product

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Payload is the typed form of one scoring request after the raw JSON
// body has been coerced. Numeric fields default to 0 and materials are
// filtered to scalar values; nothing here rejects input, that is
// Validate's job.
type Payload struct {
	ProductName string         `json:"product_name"`
	Materials   []string       `json:"materials"`
	WeightGrams float64        `json:"weight_grams"`
	Transport   string         `json:"transport"`
	Packaging   string         `json:"packaging"`
	Gwp         float64        `json:"gwp"`
	Cost        float64        `json:"cost"`
	Circularity float64        `json:"circularity"`
	Weights     map[string]any `json:"weights,omitempty"`
}

// FromMap builds a Payload from an arbitrary decoded JSON object.
// Clients send loosely typed data, so every numeric field is coerced with
// a 0 fallback and the materials list keeps only entries representable as
// strings. The optional weights object is passed through untouched; the
// weight resolver does its own tolerant parsing.
func FromMap(raw map[string]any) Payload {
	p := Payload{
		ProductName: strings.TrimSpace(cast.ToString(raw["product_name"])),
		Transport:   cast.ToString(raw["transport"]),
		Packaging:   cast.ToString(raw["packaging"]),
		WeightGrams: toFloatOrZero(raw["weight_grams"]),
		Gwp:         toFloatOrZero(raw["gwp"]),
		Cost:        toFloatOrZero(raw["cost"]),
		Circularity: toFloatOrZero(raw["circularity"]),
	}

	if materials, ok := raw["materials"].([]any); ok {
		p.Materials = make([]string, 0, len(materials))
		for _, m := range materials {
			switch m.(type) {
			case string, int, int64, float64:
				p.Materials = append(p.Materials, cast.ToString(m))
			}
		}
	} else {
		p.Materials = []string{}
	}

	if weights, ok := raw["weights"].(map[string]any); ok {
		p.Weights = weights
	}

	return p
}

func toFloatOrZero(value any) float64 {
	parsed, err := cast.ToFloat64E(value)
	if err != nil {
		return 0
	}
	return parsed
}

// Validate checks the payload fields the engine relies on and returns
// human-readable problems. An empty slice means the payload is valid.
func (p Payload) Validate() []string {
	var errs []string

	if p.ProductName == "" {
		errs = append(errs, "product_name is required.")
	}

	numeric := []struct {
		name  string
		value float64
	}{
		{"gwp", p.Gwp},
		{"cost", p.Cost},
		{"circularity", p.Circularity},
		{"weight_grams", p.WeightGrams},
	}
	for _, field := range numeric {
		if field.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0.", field.name))
		}
	}

	return errs
}
