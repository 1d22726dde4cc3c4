package scoring

import (
	"strings"

	"github.com/engram-memory/engram/pkg/memory"
)

// classifyRule maps a set of substrings to a memory type. Rules are evaluated
// in declaration order and the first match wins, so a text containing both
// "prefer" and "bug" is a preference, never an error_fix.
type classifyRule struct {
	typ     memory.Type
	markers []string
}

var classifyRules = []classifyRule{
	{memory.TypePreference, []string{"prefer", "like", "hate", "always use", "never use", "favorite"}},
	{memory.TypeDecision, []string{"decided", "agreed", "chose", "pick", "go with", "confirmed"}},
	{memory.TypeErrorFix, []string{"bug", "error", "fix", "crash", "issue", "workaround", "solved"}},
	{memory.TypePattern, []string{"pattern", "convention", "standard", "rule", "always do"}},
	{memory.TypeWorkflow, []string{"workflow", "process", "step", "pipeline", "deploy"}},
}

// Classify assigns a memory type to free text via a first-match priority
// chain over the lower-cased text. Texts matching no rule are facts.
func Classify(text string) memory.Type {
	lowered := strings.ToLower(text)

	for _, rule := range classifyRules {
		for _, marker := range rule.markers {
			if strings.Contains(lowered, marker) {
				return rule.typ
			}
		}
	}

	return memory.TypeFact
}
