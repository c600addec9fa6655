package suggest

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

// NewProductEnv builds the CEL environment rule conditions are compiled
// against. It declares the fields of a raw scoring payload and enables
// the strings extension (lowerAscii etc.) so conditions can compare
// case-insensitively. Numeric cross-type comparisons are enabled because
// payload numbers may arrive as either int or double.
func NewProductEnv() (*cel.Env, error) {
	return cel.NewEnv(
		ext.Strings(),
		cel.CrossTypeNumericComparisons(true),

		cel.Variable("product_name", cel.StringType),
		cel.Variable("transport", cel.StringType),
		cel.Variable("packaging", cel.StringType),
		cel.Variable("materials", cel.ListType(cel.StringType)),
		cel.Variable("weight_grams", cel.DoubleType),
		cel.Variable("gwp", cel.DoubleType),
		cel.Variable("cost", cel.DoubleType),
		cel.Variable("circularity", cel.DoubleType),
	)
}
