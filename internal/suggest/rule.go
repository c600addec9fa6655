package suggest

import (
	"github.com/google/cel-go/cel"
)

// Rule is one entry of the suggestion table: a CEL condition over the raw
// scoring payload and the suggestion text emitted when it holds. The
// condition is compiled once by Init and never changes afterwards.
type Rule struct {
	// When — CEL expression over the product payload fields.
	// Must evaluate to a boolean.
	When string `yaml:"when"`
	// Suggest — suggestion text returned when the condition holds.
	Suggest string `yaml:"suggest"`
	// program — compiled CEL program for the condition.
	program cel.Program
}

// Init compiles the When expression into an executable CEL program using
// the provided environment. Syntax and type errors are returned; a rule
// that fails Init is a configuration defect, not a runtime condition.
func (r *Rule) Init(env *cel.Env) error {
	ast, iss := env.Parse(r.When)
	if iss.Err() != nil {
		return iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return iss.Err()
	}

	var err error
	r.program, err = env.Program(checked)
	return err
}

// Eval runs the compiled condition against the raw payload map.
//
// Evaluation errors (a missing field, a field of an unexpected shape) are
// returned so the caller can log them, but they mean "does not trigger":
// one malformed rule or payload field must never abort the rest of the
// table.
func (r *Rule) Eval(input map[string]any) (bool, error) {
	result, _, err := r.program.Eval(input)
	if err != nil {
		return false, err
	}
	matched, ok := result.Value().(bool)
	return ok && matched, nil
}
