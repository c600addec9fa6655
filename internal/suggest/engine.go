package suggest

import "log/slog"

// FallbackSuggestion is returned when no rule in the table triggers.
const FallbackSuggestion = "Product already performs well; focus on supplier transparency and continuous improvement."

// Engine evaluates an ordered, immutable suggestion table against raw
// scoring payloads. It holds no mutable state and is safe for concurrent
// use once constructed.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given compiled rule table.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// RuleBased returns the suggestions whose conditions hold for the given
// raw payload, in table order, deduplicated by exact text with the first
// occurrence winning. A rule that fails to evaluate is logged and
// skipped; the remaining rules still run. If nothing triggers, the result
// is exactly [FallbackSuggestion] — never an empty slice.
func (e *Engine) RuleBased(input map[string]any) []string {
	seen := make(map[string]bool, len(e.rules))
	suggestions := make([]string, 0, len(e.rules))

	for i := range e.rules {
		matched, err := e.rules[i].Eval(input)
		if err != nil {
			slog.Debug("suggestion rule skipped", "error", err, "rule", e.rules[i].When)
			continue
		}
		if !matched || seen[e.rules[i].Suggest] {
			continue
		}
		seen[e.rules[i].Suggest] = true
		suggestions = append(suggestions, e.rules[i].Suggest)
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, FallbackSuggestion)
	}
	return suggestions
}

// Merge concatenates rule-based and externally generated suggestions,
// rule results first, deduplicating by exact string match with first-seen
// order preserved. Empty entries are dropped; an empty external list is a
// normal input.
func Merge(ruleResults, externalResults []string) []string {
	seen := make(map[string]bool, len(ruleResults)+len(externalResults))
	merged := make([]string, 0, len(ruleResults)+len(externalResults))

	for _, lists := range [][]string{ruleResults, externalResults} {
		for _, s := range lists {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}
