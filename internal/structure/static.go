package structure

import (
	"regexp"
	"strings"

	"promptc/internal/framework"
)

// fillerPatterns strip politeness markers and hedge phrases from user
// input before it becomes the objective text. The forbidden-word pass
// below removes everything on the canonical list, so the assembled
// output is valid by construction no matter what the user typed.
var fillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(please|kindly|could you|can you|i want to|i need to|i would like to)\b`),
	regexp.MustCompile(`(?i)\b(basically|actually|honestly|literally)\b`),
}

var forbiddenWordPattern = buildForbiddenPattern()

func buildForbiddenPattern() *regexp.Regexp {
	quoted := make([]string, len(ForbiddenWords))
	for i, word := range ForbiddenWords {
		quoted[i] = regexp.QuoteMeta(word)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// StaticStructurer is the deterministic, LLM-free generation path.
// It is the terminal fallback of the retry loop and must never itself
// fail: it uses only the decision engine and the canonical templates,
// which are authored to satisfy the validator.
type StaticStructurer struct {
	registry  *framework.Registry
	decider   *DecisionEngine
	assembler *Assembler
	validator *Validator
}

// NewStaticStructurer creates the static generation path.
func NewStaticStructurer(registry *framework.Registry) *StaticStructurer {
	return &StaticStructurer{
		registry:  registry,
		decider:   NewDecisionEngine(registry),
		assembler: NewAssembler(),
		validator: NewValidator(),
	}
}

// Structure produces a guaranteed-valid structured prompt without any
// external call. Confidence is fixed at 1.0 and the generation mode is
// always "static".
func (s *StaticStructurer) Structure(input string, fw framework.Framework) OptimizedPrompt {
	spec, err := s.registry.Get(fw)
	if err != nil {
		// Unreachable with the closed enum; fall back to the default
		// framework rather than fail the terminal path.
		fw = framework.Default
		spec, _ = s.registry.Get(fw)
	}

	cleaned := CleanInput(input)

	persona := s.decider.Persona(fw)
	platform := s.decider.Platform(input)
	objective := s.decider.Goal(fw)
	if cleaned != "" {
		objective += ": " + cleaned
	}
	scopeIn, scopeOut := s.decider.Scope(fw)

	rendered := s.assembler.Assemble(
		persona,
		platform,
		objective,
		scopeIn,
		scopeOut,
		s.decider.Constraints(fw),
		s.decider.Execution(fw),
		s.decider.OutputContract(fw),
	)

	violations := s.validator.Validate(rendered)

	return OptimizedPrompt{
		Framework:      fw,
		FrameworkName:  spec.Name,
		Prompt:         rendered,
		Valid:          len(violations) == 0,
		Violations:     violations,
		Confidence:     1.0,
		GenerationMode: ModeStatic,
	}
}

// CleanInput removes filler phrases and every forbidden word from
// text, then collapses whitespace.
func CleanInput(text string) string {
	for _, pattern := range fillerPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	text = forbiddenWordPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
