package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromMap_ValidPayload(t *testing.T) {
	p := FromMap(map[string]any{
		"product_name": "  Reusable Bottle ",
		"materials":    []any{"aluminum", "plastic"},
		"weight_grams": 300.0,
		"transport":    "air",
		"packaging":    "recyclable",
		"gwp":          5.0,
		"cost":         10.0,
		"circularity":  80.0,
	})

	assert.Equal(t, "Reusable Bottle", p.ProductName)
	assert.Equal(t, []string{"aluminum", "plastic"}, p.Materials)
	assert.Equal(t, 300.0, p.WeightGrams)
	assert.Equal(t, "air", p.Transport)
	assert.Equal(t, "recyclable", p.Packaging)
	assert.Empty(t, p.Validate())
}

func TestFromMap_CoercesLooseTypes(t *testing.T) {
	p := FromMap(map[string]any{
		"product_name": "Bottle",
		"weight_grams": "300",
		"gwp":          "5.5",
		"cost":         nil,
		"circularity":  "not-a-number",
		"materials":    []any{"steel", 7, map[string]any{"nested": true}},
	})

	assert.Equal(t, 300.0, p.WeightGrams)
	assert.Equal(t, 5.5, p.Gwp)
	assert.Equal(t, 0.0, p.Cost)
	assert.Equal(t, 0.0, p.Circularity)
	assert.Equal(t, []string{"steel", "7"}, p.Materials, "non-scalar materials are dropped")
}

func TestFromMap_MissingFieldsDefault(t *testing.T) {
	p := FromMap(map[string]any{})

	assert.Equal(t, "", p.ProductName)
	assert.Equal(t, []string{}, p.Materials)
	assert.Nil(t, p.Weights)
	assert.Zero(t, p.Gwp)
}

func TestFromMap_WeightsPassedThroughRaw(t *testing.T) {
	p := FromMap(map[string]any{
		"product_name": "Bottle",
		"weights":      map[string]any{"gwp": "0.5", "circularity": 0.3},
	})

	assert.Equal(t, map[string]any{"gwp": "0.5", "circularity": 0.3}, p.Weights)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	p := FromMap(map[string]any{
		"product_name": "",
		"gwp":          -5.0,
		"cost":         -1.0,
		"weight_grams": -10.0,
	})

	errs := p.Validate()
	assert.Contains(t, errs, "product_name is required.")
	assert.Contains(t, errs, "gwp must be >= 0.")
	assert.Contains(t, errs, "cost must be >= 0.")
	assert.Contains(t, errs, "weight_grams must be >= 0.")
	assert.NotContains(t, errs, "circularity must be >= 0.")
}
