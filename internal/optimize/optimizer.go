// Package optimize runs the validation-enforced control loop. The
// loop generates a structured prompt with an LLM, validates it, and
// on violation regenerates with accumulated feedback. When retries
// are exhausted or no provider is configured, the deterministic
// static structurer produces the output. Nothing unvalidated is ever
// returned.
package optimize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"promptc/internal/classify"
	"promptc/internal/framework"
	"promptc/internal/provider"
	"promptc/internal/structure"
)

const (
	// MaxRetries is the number of regeneration attempts after the
	// first failed generation.
	MaxRetries = 2

	// retryBackoff multiplies the sampling temperature each retry.
	retryBackoff = 1.5

	baseTemperature   = 0.3
	maxTemperature    = 1.0
	generateMaxTokens = 2000
)

// ErrEmptyInput is returned when the input is empty or whitespace.
var ErrEmptyInput = errors.New("input cannot be empty")

// Optimizer drives classification, generation, validation, and
// fallback for a single input.
type Optimizer struct {
	registry   *framework.Registry
	classifier *classify.Classifier
	client     provider.Client
	static     *structure.StaticStructurer
	validator  *structure.Validator
	logger     *zap.Logger
}

// New creates an Optimizer. A nil client disables dynamic generation.
func New(registry *framework.Registry, client provider.Client, logger *zap.Logger) *Optimizer {
	if client == nil {
		client = provider.Unavailable{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{
		registry:   registry,
		classifier: classify.New(registry),
		client:     client,
		static:     structure.NewStaticStructurer(registry),
		validator:  structure.NewValidator(),
		logger:     logger,
	}
}

// DynamicAvailable reports whether LLM generation can be attempted.
func (o *Optimizer) DynamicAvailable() bool {
	return o.client.Available()
}

// Optimize turns raw input into a validated structured prompt. An
// explicit framework name overrides classification; forceStatic skips
// the LLM entirely. The returned prompt is always valid.
func (o *Optimizer) Optimize(ctx context.Context, input, explicitFramework string, forceStatic bool) (structure.OptimizedPrompt, error) {
	if strings.TrimSpace(input) == "" {
		return structure.OptimizedPrompt{}, ErrEmptyInput
	}

	var (
		fw         framework.Framework
		confidence float64
	)
	if explicitFramework != "" {
		fw, confidence, _ = o.classifier.ResolveExplicit(explicitFramework)
	} else {
		fw, confidence, _ = o.classifier.Classify(input)
	}

	if forceStatic {
		o.logger.Info("static mode forced", zap.String("framework", string(fw)))
		return o.static.Structure(input, fw), nil
	}

	spec, err := o.registry.Get(fw)
	if err != nil {
		return structure.OptimizedPrompt{}, err
	}

	var violationHistory []string
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		o.logger.Debug("optimization attempt",
			zap.Int("attempt", attempt+1),
			zap.Int("max", MaxRetries+1))

		generated, err := o.generate(ctx, input, spec, attempt, violationHistory)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return structure.OptimizedPrompt{}, err
			}
			o.logger.Warn("generation failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			if attempt == MaxRetries {
				o.logger.Info("retries exhausted, falling back to static structuring")
				return o.static.Structure(input, fw), nil
			}
			continue
		}

		violations := o.validator.Validate(generated)
		if len(violations) == 0 {
			o.logger.Info("output validated",
				zap.Int("attempt", attempt+1),
				zap.String("framework", string(fw)))
			return structure.OptimizedPrompt{
				Framework:      fw,
				FrameworkName:  spec.Name,
				Prompt:         generated,
				Valid:          true,
				Violations:     []string{},
				Confidence:     confidence,
				GenerationMode: structure.ModeDynamic,
			}, nil
		}

		violationHistory = append(violationHistory, violations...)
		o.logger.Warn("output rejected",
			zap.Int("attempt", attempt+1),
			zap.Strings("violations", violations))

		if attempt == MaxRetries {
			o.logger.Info("retries exhausted, falling back to static structuring")
			return o.static.Structure(input, fw), nil
		}
	}

	return o.static.Structure(input, fw), nil
}

func (o *Optimizer) generate(ctx context.Context, input string, spec framework.Spec, attempt int, violationFeedback []string) (string, error) {
	if !o.client.Available() {
		return "", provider.ErrNotConfigured
	}

	systemPrompt := buildSystemPrompt(spec)

	var userPrompt string
	if attempt == 0 {
		userPrompt = buildUserPrompt(input, spec.Name)
	} else {
		userPrompt = buildRetryPrompt(input, spec.Name, violationFeedback)
	}

	temperature := baseTemperature
	for i := 0; i < attempt; i++ {
		temperature *= retryBackoff
	}
	if temperature > maxTemperature {
		temperature = maxTemperature
	}

	text, err := o.client.Generate(ctx, systemPrompt, userPrompt, provider.Options{
		Temperature: temperature,
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("provider returned empty output")
	}
	return text, nil
}

func buildSystemPrompt(spec framework.Spec) string {
	var b strings.Builder
	b.WriteString("You are a structured prompt compiler.\n\n")
	b.WriteString("ROLE: Expert Prompt Structurer\n")
	b.WriteString("SYSTEM: Cognition Structuring Engine\n\n")
	fmt.Fprintf(&b, "FRAMEWORK: %s\n%s\n\n", spec.Name, spec.Description)
	b.WriteString("YOU MUST:\n\n")
	b.WriteString("1. ENFORCE mandatory sections:\n")
	b.WriteString("   - ROLE: Who this prompt is for\n")
	b.WriteString("   - PLATFORM: Where execution happens\n")
	b.WriteString("   - OBJECTIVE: What the task is\n")
	b.WriteString("   - SCOPE: What's in/out\n")
	b.WriteString("   - CONSTRAINTS: Hard rules\n")
	b.WriteString("   - EXECUTION: Step-by-step process\n")
	b.WriteString("   - OUTPUT CONTRACT: Exact deliverables\n\n")
	b.WriteString("2. FORBIDDEN WORDS: Never use these\n")
	fmt.Fprintf(&b, "   %s\n\n", strings.Join(structure.ForbiddenWords, ", "))
	b.WriteString("   If you use them, your output will be REJECTED.\n\n")
	b.WriteString("3. DECISIONS: Make them explicitly\n")
	b.WriteString("   - Choose platform clearly\n")
	b.WriteString("   - Define boundaries explicitly\n")
	b.WriteString("   - State role with authority\n")
	b.WriteString("   - No ambiguity. No hedging.\n\n")
	b.WriteString("4. OUTPUT: Only return the structured prompt\n")
	b.WriteString("   - No commentary\n")
	b.WriteString("   - No markdown formatting\n")
	b.WriteString("   - No explanations\n")
	b.WriteString("   - Just the structure\n\n")
	b.WriteString("Remember: This is a compiler, not a chatbot.\n")
	b.WriteString("Output must be VALID or REJECTED.\n")
	b.WriteString(`There is no "almost correct".`)
	return b.String()
}

func buildUserPrompt(input, frameworkName string) string {
	return fmt.Sprintf(`Optimize this input into a structured prompt:

INPUT: %s

FRAMEWORK: %s

Generate a complete structured prompt following MANDATORY SECTIONS exactly.
No exceptions. No shortcuts.

Return ONLY the structured prompt. No explanations.`, input, frameworkName)
}

func buildRetryPrompt(input, frameworkName string, violations []string) string {
	var b strings.Builder
	b.WriteString("Your previous output violated the following rules:\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "- %s\n", v)
	}
	fmt.Fprintf(&b, "\nINPUT: %s\nFRAMEWORK: %s\n\n", input, frameworkName)
	b.WriteString("REGENERATE the prompt correcting ALL violations.\n")
	b.WriteString("Be exact. Follow structure precisely.\n")
	b.WriteString("Do not explain changes. Return ONLY the structured prompt.")
	return b.String()
}
