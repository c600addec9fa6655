package suggest

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRuleTable []byte

// DefaultRules returns the compiled built-in suggestion table.
func DefaultRules() ([]Rule, error) {
	return LoadRules(defaultRuleTable)
}

// LoadRulesFile reads and compiles a suggestion table from a YAML file.
// Used when configuration points at an operator-supplied table instead of
// the built-in one.
func LoadRulesFile(file string) ([]Rule, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return LoadRules(content)
}

// LoadRules parses a YAML rule list and compiles every condition against
// the product environment. Returns the first parse or compile error.
func LoadRules(content []byte) ([]Rule, error) {
	rules := []Rule{}
	if err := yaml.Unmarshal(content, &rules); err != nil {
		return nil, err
	}

	env, err := NewProductEnv()
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if err := rules[i].Init(env); err != nil {
			return nil, err
		}
	}
	return rules, nil
}
