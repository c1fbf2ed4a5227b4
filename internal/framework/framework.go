// Package framework defines the closed set of cognitive frameworks the
// engine classifies prompts into, and the static registry describing
// each one. The registry is built once at startup and is read-only
// afterwards, so it is safe to share across concurrent requests.
package framework

import "regexp"

// Framework identifies one cognitive/task category.
type Framework string

const (
	Coding      Framework = "coding_technical"
	Teaching    Framework = "instruction_learning"
	Explanation Framework = "research_exploration"
	Research    Framework = "reasoning_problem_solving"
	Creative    Framework = "creative_ideation"
	Strategy    Framework = "optimization_review"
	Content     Framework = "writing_communication"
)

// Default is the framework used when classification finds no trigger
// matches and when an explicit framework name cannot be resolved.
const Default = Coding

// All returns every framework in declaration order. Declaration order
// is the tie-break order for classification, so it is part of the
// engine's contract.
func All() []Framework {
	return []Framework{
		Coding,
		Teaching,
		Explanation,
		Research,
		Creative,
		Strategy,
		Content,
	}
}

// Parse resolves a framework identifier string to its Framework value.
func Parse(id string) (Framework, bool) {
	for _, fw := range All() {
		if string(fw) == id {
			return fw, true
		}
	}
	return "", false
}

// Spec describes one framework: how to recognize it in free text and
// what authority posture the engine takes when it applies.
type Spec struct {
	Framework   Framework
	Name        string
	Description string

	// Personas is ordered; the first entry is the default role the
	// decision engine assigns. Never empty.
	Personas []string

	// Triggers are matched as case-insensitive substrings of the input.
	// Patterns are anchored phrase structures and carry more weight
	// than bare keywords (substring matching is noisy: "or" lives
	// inside "editor").
	Triggers []string
	Patterns []*regexp.Regexp

	Enforcements []string
	Avoidances   []string
	IdealFor     []string
}
