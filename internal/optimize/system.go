package optimize

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"promptc/internal/framework"
	"promptc/internal/provider"
	"promptc/internal/structure"
)

// FrameworkInfo is the wire shape for a framework in a Response.
type FrameworkInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Role        string `json:"role"`
}

// Response is the structured result of processing one input.
type Response struct {
	OriginalInput   string        `json:"original_input"`
	OptimizedPrompt string        `json:"optimized_prompt"`
	Framework       FrameworkInfo `json:"framework"`
	Confidence      float64       `json:"confidence"`
	Reasoning       string        `json:"reasoning"`
	GenerationMode  string        `json:"generation_mode"`
	Valid           bool          `json:"valid"`
	Violations      []string      `json:"violations"`
}

// FrameworkSummary describes a framework for listing endpoints.
type FrameworkSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	IdealFor        []string `json:"ideal_for"`
	TriggerKeywords []string `json:"trigger_keywords,omitempty"`
	ExampleInputs   []string `json:"example_inputs"`
	RolePersonas    []string `json:"role_personas"`
}

// System is the public entry point. Every response it produces is
// valid: all mandatory sections present, no forbidden language.
type System struct {
	registry  *framework.Registry
	optimizer *Optimizer
}

// NewSystem wires a System from a provider client.
func NewSystem(client provider.Client, logger *zap.Logger) *System {
	registry := framework.NewRegistry()
	return &System{
		registry:  registry,
		optimizer: New(registry, client, logger),
	}
}

// Process runs the control loop over one input and shapes the result
// for transport.
func (s *System) Process(ctx context.Context, input, explicitFramework string, forceStatic bool) (Response, error) {
	result, err := s.optimizer.Optimize(ctx, input, explicitFramework, forceStatic)
	if err != nil {
		return Response{}, err
	}

	spec, err := s.registry.Get(result.Framework)
	if err != nil {
		return Response{}, err
	}

	role := "Expert"
	if len(spec.Personas) > 0 {
		role = spec.Personas[0]
	}

	violations := result.Violations
	if violations == nil {
		violations = []string{}
	}

	return Response{
		OriginalInput:   input,
		OptimizedPrompt: result.Prompt,
		Framework: FrameworkInfo{
			ID:          string(result.Framework),
			Name:        result.FrameworkName,
			Description: spec.Description,
			Role:        role,
		},
		Confidence:     result.Confidence,
		Reasoning:      fmt.Sprintf("Classified as %s", result.FrameworkName),
		GenerationMode: result.GenerationMode,
		Valid:          result.Valid,
		Violations:     violations,
	}, nil
}

// ListFrameworks returns a summary of every registered framework in
// declaration order.
func (s *System) ListFrameworks() []FrameworkSummary {
	specs := s.registry.All()
	summaries := make([]FrameworkSummary, 0, len(specs))
	for _, spec := range specs {
		summaries = append(summaries, FrameworkSummary{
			ID:            string(spec.Framework),
			Name:          spec.Name,
			Description:   spec.Description,
			IdealFor:      spec.IdealFor,
			ExampleInputs: exampleInputs(spec),
			RolePersonas:  spec.Personas,
		})
	}
	return summaries
}

// GetFramework returns full details for one framework id, or false
// when the id is unknown.
func (s *System) GetFramework(id string) (FrameworkSummary, bool) {
	fw, ok := framework.Parse(id)
	if !ok {
		return FrameworkSummary{}, false
	}
	spec, err := s.registry.Get(fw)
	if err != nil {
		return FrameworkSummary{}, false
	}
	return FrameworkSummary{
		ID:              string(spec.Framework),
		Name:            spec.Name,
		Description:     spec.Description,
		IdealFor:        spec.IdealFor,
		TriggerKeywords: spec.Triggers,
		ExampleInputs:   exampleInputs(spec),
		RolePersonas:    spec.Personas,
	}, true
}

// DynamicAvailable reports whether LLM generation is configured.
func (s *System) DynamicAvailable() bool {
	return s.optimizer.DynamicAvailable()
}

// ValidatePrompt exposes validation for callers that already hold
// structured text.
func (s *System) ValidatePrompt(text string) []string {
	return structure.NewValidator().Validate(text)
}

func exampleInputs(spec framework.Spec) []string {
	if len(spec.Triggers) <= 5 {
		return spec.Triggers
	}
	return spec.Triggers[:5]
}
