// Package classify scores free-text input against each framework's
// trigger table and picks the best match. Scoring is deterministic:
// the same input always yields the same framework, confidence, and
// reasoning.
package classify

import (
	"fmt"
	"strings"

	"promptc/internal/framework"
)

// Pattern matches are stronger signals than bare keyword substrings,
// which false-positive on fragments ("or" inside "editor").
const (
	keywordWeight = 1.0
	patternWeight = 2.0
)

// DefaultReasoning is returned when no trigger matches anything.
const DefaultReasoning = "Default classification"

// Classifier scores input against the registry's trigger tables.
type Classifier struct {
	registry *framework.Registry
}

// New creates a classifier over the given registry.
func New(registry *framework.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify picks the framework whose triggers best match the input.
// Confidence is the winning framework's score normalized by its own
// maximum possible score, on a 0.0-1.0 scale. Ties resolve to the
// framework declared first in the registry; if nothing matches at all,
// the default framework is returned with confidence exactly 0.5.
//
// Callers must not pass empty input; that is rejected upstream.
func (c *Classifier) Classify(input string) (framework.Framework, float64, string) {
	lowered := strings.ToLower(input)

	best := framework.Default
	bestNorm := 0.0
	maxRaw := 0.0

	for _, spec := range c.registry.All() {
		raw := 0.0
		for _, trigger := range spec.Triggers {
			if strings.Contains(lowered, trigger) {
				raw += keywordWeight
			}
		}
		for _, pattern := range spec.Patterns {
			if pattern.MatchString(input) {
				raw += patternWeight
			}
		}

		if raw > maxRaw {
			maxRaw = raw
		}

		// Normalize by this framework's maximum possible score so
		// trigger-rich frameworks don't dominate on raw counts.
		possible := float64(len(spec.Triggers))*keywordWeight + float64(len(spec.Patterns))*patternWeight
		norm := 0.0
		if possible > 0 {
			norm = raw / possible
		}

		// Strictly greater: declaration order wins ties.
		if norm > bestNorm {
			bestNorm = norm
			best = spec.Framework
		}
	}

	if maxRaw == 0 {
		return framework.Default, 0.5, DefaultReasoning
	}

	spec, _ := c.registry.Get(best)
	if bestNorm > 1.0 {
		bestNorm = 1.0
	}
	return best, bestNorm, fmt.Sprintf("Classified as %s", spec.Name)
}
