// Package structure turns a classified framework plus raw input into
// the fixed-section structured prompt, and validates rendered text
// against the forbidden-word and mandatory-section contract.
package structure

import "promptc/internal/framework"

// Generation modes recorded on results.
const (
	ModeStatic  = "static"
	ModeDynamic = "dynamic"
)

// OptimizedPrompt is the result of one optimization. It is immutable
// after construction and scoped to a single request.
type OptimizedPrompt struct {
	Framework      framework.Framework
	FrameworkName  string
	Prompt         string
	Valid          bool
	Violations     []string
	Confidence     float64
	GenerationMode string
}
