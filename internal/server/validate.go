package server

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"promptc/internal/config"
)

// ValidationError carries a client-facing message and the offending
// field. It always maps to HTTP 400.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

var (
	frameworkIDPattern = regexp.MustCompile(`^[a-z_]+$`)

	// Patterns that indicate injection attempts. Kept coarse; the
	// engine never interprets input, so this only guards callers that
	// echo prompts into HTML or templates.
	suspiciousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<script\b`),
		regexp.MustCompile(`javascript:`),
		regexp.MustCompile(`data:text/html`),
		regexp.MustCompile(`\{\{.*\}\}`),
		regexp.MustCompile(`\$\{.*\}`),
	}
)

// validatePromptInput normalizes and bounds a prompt plus optional
// framework id. The prompt comes back stripped of control characters
// and surrounding whitespace; the framework comes back lowercased.
func validatePromptInput(prompt, framework string, limits config.LimitsConfig) (string, string, error) {
	prompt = stripControl(prompt)
	prompt = strings.TrimSpace(prompt)

	if prompt == "" {
		return "", "", &ValidationError{Message: "Prompt is required", Field: "prompt"}
	}
	if len(prompt) < limits.MinPromptLength {
		return "", "", &ValidationError{
			Message: fmt.Sprintf("Prompt must be at least %d characters", limits.MinPromptLength),
			Field:   "prompt",
		}
	}
	if len(prompt) > limits.MaxPromptLength {
		return "", "", &ValidationError{
			Message: fmt.Sprintf("Prompt must not exceed %d characters", limits.MaxPromptLength),
			Field:   "prompt",
		}
	}

	lower := strings.ToLower(prompt)
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(lower) {
			return "", "", &ValidationError{Message: "Prompt contains invalid content", Field: "prompt"}
		}
	}

	if framework != "" {
		framework = strings.ToLower(strings.TrimSpace(framework))
		if !frameworkIDPattern.MatchString(framework) {
			return "", "", &ValidationError{
				Message: "Framework must contain only lowercase letters and underscores",
				Field:   "framework",
			}
		}
	}

	return prompt, framework, nil
}

// stripControl removes control characters except newline and tab.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
