package structure

import (
	"fmt"
	"regexp"
	"strings"
)

// ForbiddenWords are hedging/ambiguity markers that invalidate output.
// List order is significant: forbidden-word violations are reported in
// this order, and that ordering becomes the literal feedback text the
// LLM sees on retry.
var ForbiddenWords = []string{
	"or", "maybe", "could", "might", "possibly",
	"either", "can be", "kind of", "sort of",
	"perhaps", "whatever", "something like",
}

// MandatorySections are the seven headers every accepted output must
// contain verbatim, in reporting order.
var MandatorySections = []string{
	"ROLE",
	"PLATFORM",
	"OBJECTIVE",
	"SCOPE",
	"CONSTRAINTS",
	"EXECUTION",
	"OUTPUT CONTRACT",
}

// Validator checks rendered text against the output contract.
type Validator struct {
	forbidden []*regexp.Regexp
}

// NewValidator compiles the forbidden-word patterns once. Matching is
// whole-word and case-insensitive so "coding" never trips "or" but
// "this or that" does.
func NewValidator() *Validator {
	patterns := make([]*regexp.Regexp, len(ForbiddenWords))
	for i, word := range ForbiddenWords {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return &Validator{forbidden: patterns}
}

// Validate returns the ordered violation list for text: all forbidden
// word hits in canonical list order, then all missing mandatory
// sections in section order. An empty result means the text is valid.
func (v *Validator) Validate(text string) []string {
	var violations []string

	for i, pattern := range v.forbidden {
		if pattern.MatchString(text) {
			violations = append(violations, fmt.Sprintf("Forbidden word detected: '%s'", ForbiddenWords[i]))
		}
	}

	for _, section := range MandatorySections {
		if !strings.Contains(text, section) {
			violations = append(violations, fmt.Sprintf("Missing mandatory section: %s", section))
		}
	}

	return violations
}
