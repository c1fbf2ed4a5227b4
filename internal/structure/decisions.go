package structure

import (
	"strings"

	"promptc/internal/framework"
)

// DecisionEngine derives every structural field deterministically.
// It never asks, never leaves a choice open, and never calls out:
// given the same framework and input it is reproducible bit-for-bit.
type DecisionEngine struct {
	registry *framework.Registry
}

// NewDecisionEngine creates a decision engine over the given registry.
func NewDecisionEngine(registry *framework.Registry) *DecisionEngine {
	return &DecisionEngine{registry: registry}
}

// Platform picks the execution platform from explicit keywords in the
// input. Web is the decided default when nothing matches.
func (d *DecisionEngine) Platform(input string) string {
	lowered := strings.ToLower(input)
	switch {
	case strings.Contains(lowered, "mobile"), strings.Contains(lowered, "ios"), strings.Contains(lowered, "android"):
		return "Mobile Application"
	case strings.Contains(lowered, "api"), strings.Contains(lowered, "backend"), strings.Contains(lowered, "server"):
		return "Backend Service"
	case strings.Contains(lowered, "cli"), strings.Contains(lowered, "terminal"), strings.Contains(lowered, "command"):
		return "CLI Tool"
	default:
		return "Web Application"
	}
}

// Goal returns the fixed objective sentence for a framework.
func (d *DecisionEngine) Goal(fw framework.Framework) string {
	goals := map[framework.Framework]string{
		framework.Coding:      "Build a production-grade system with deterministic behavior",
		framework.Teaching:    "Teach concept progressively with verification checkpoints",
		framework.Explanation: "Explain with high signal density and zero fluff",
		framework.Research:    "Conduct structured analysis with evidence-backed findings",
		framework.Creative:    "Design within explicit constraints and single direction",
		framework.Strategy:    "Produce single decision recommendation from first principles",
		framework.Content:     "Create structured content for defined audience",
	}
	if goal, ok := goals[fw]; ok {
		return goal
	}
	return "Produce a complete, unambiguous deliverable"
}

// Persona returns the default role persona for a framework: the first
// entry of its registry persona list.
func (d *DecisionEngine) Persona(fw framework.Framework) string {
	spec, err := d.registry.Get(fw)
	if err != nil || len(spec.Personas) == 0 {
		return "Expert"
	}
	return spec.Personas[0]
}

// Scope returns the included and excluded topic lists for a framework.
func (d *DecisionEngine) Scope(fw framework.Framework) (included, excluded []string) {
	type scope struct {
		in  []string
		out []string
	}
	scopes := map[framework.Framework]scope{
		framework.Coding: {
			in:  []string{"Core functionality", "Error handling", "Type safety"},
			out: []string{"Testing infrastructure", "Deployment configs", "CI/CD", "Documentation beyond inline"},
		},
		framework.Teaching: {
			in:  []string{"Core concept", "Prerequisites", "Practice exercises"},
			out: []string{"Advanced edge cases", "Alternative approaches", "Historical context"},
		},
		framework.Explanation: {
			in:  []string{"Definition", "Mechanism", "Example", "Limitations"},
			out: []string{"History", "Alternatives", "Opinions", "Comparisons"},
		},
		framework.Research: {
			in:  []string{"Research question", "Methodology", "Findings", "Implications"},
			out: []string{"Recommendations beyond scope", "Speculative futures"},
		},
		framework.Creative: {
			in:  []string{"Visual system", "Component design", "Interaction rules"},
			out: []string{"Implementation code", "Backend logic", "Content strategy"},
		},
		framework.Strategy: {
			in:  []string{"Problem reframe", "Options analysis", "Single recommendation"},
			out: []string{"Implementation details", "Timeline", "Resource allocation"},
		},
		framework.Content: {
			in:  []string{"Core message", "Structure", "Call-to-action"},
			out: []string{"Distribution strategy", "SEO", "Visual assets"},
		},
	}
	if s, ok := scopes[fw]; ok {
		return s.in, s.out
	}
	return []string{"Core functionality"}, []string{"Out of scope items"}
}

// Constraints returns the fixed constraint list for a framework.
// Constraints include concrete decided values; the engine never leaves
// a technology choice open.
func (d *DecisionEngine) Constraints(fw framework.Framework) []string {
	constraints := map[framework.Framework][]string{
		framework.Coding: {
			"Stack: React 18 + TypeScript (DECIDED)",
			"Architecture: Modular with single-responsibility",
			"Error handling: Explicit paths for all failures",
			"Types: Strict, no `any`, no implicit",
			"Functions: Maximum 40 lines, single purpose",
		},
		framework.Teaching: {
			"Prerequisites: Stated before content",
			"Concept limit: One per section maximum",
			"Progression: Simple, then applied, then abstract (strict)",
			"Validation: Each section ends with checkpoint",
		},
		framework.Explanation: {
			"Structure: Definition, mechanism, example, limitation (mandatory)",
			"Density: Every sentence adds unique information",
			"Separation: Intuition vs implementation distinct",
			"Boundaries: State what does NOT apply",
		},
		framework.Research: {
			"Research question: Explicitly stated first",
			"Scope: Defined boundaries (in/out)",
			"Assumptions: Declared upfront",
			"Evidence: No claims without backing",
		},
		framework.Creative: {
			"Colors: Max 5 in palette",
			"Typography: Single scale, max 3 weights",
			"Spacing: 4px/8px grid system",
			"Mood: Single anchor (Professional-minimal)",
		},
		framework.Strategy: {
			"Reframe: Problem restated from first principles",
			"Options: Exactly 3 distinct paths",
			"Criteria: Explicit decision factors with weights",
			"No: Motivational language, generic advice, hedging",
		},
		framework.Content: {
			"Audience: Technical professionals (DECIDED)",
			"Intent: Inform (single purpose)",
			"Tone: Professional, direct, no contractions",
			"Length: 500-800 words",
		},
	}
	if c, ok := constraints[fw]; ok {
		return c
	}
	return []string{"Single responsibility per module", "No optional features"}
}

// Execution returns the fixed ordered step list for a framework.
func (d *DecisionEngine) Execution(fw framework.Framework) []string {
	executions := map[framework.Framework][]string{
		framework.Coding: {
			"Define file structure and module boundaries",
			"Establish interfaces and type contracts",
			"Implement core logic with input validation",
			"Add error boundaries and edge cases",
			"Include usage example",
		},
		framework.Teaching: {
			"State prerequisites and single learning outcome",
			"Introduce concept with minimal example",
			"Explain mechanism (not just syntax)",
			"Provide practice exercise with expected output",
			"Bridge to next concept",
		},
		framework.Explanation: {
			"Precise definition (one sentence)",
			"How it works mechanistically",
			"Concrete example with context",
			"Limitations and edge cases",
		},
		framework.Research: {
			"Frame precise research question",
			"Define scope and methodology",
			"Analyze with structured approach",
			"Synthesize findings with evidence",
			"State implications and limitations",
		},
		framework.Creative: {
			"Define visual constraints explicitly",
			"Establish style rules with values",
			"Design within boundaries",
			"Validate against mood anchor",
		},
		framework.Strategy: {
			"Reframe problem from first principles",
			"Identify hard constraints and variables",
			"Generate 3 distinct options",
			"Compare against weighted criteria",
			"Single recommendation with reasoning",
		},
		framework.Content: {
			"Define audience context and needs",
			"Lock single content intent",
			"Structure for scannable consumption",
			"Apply consistent tone throughout",
			"End with clear call-to-action",
		},
	}
	if e, ok := executions[fw]; ok {
		return e
	}
	return []string{"Define structure", "Implement logic", "Validate", "Produce output"}
}

// OutputContract returns the fixed deliverable contract for a framework.
func (d *DecisionEngine) OutputContract(fw framework.Framework) []string {
	contracts := map[framework.Framework][]string{
		framework.Coding: {
			"Format: Complete, runnable TypeScript code",
			"Deliverables: All files with imports, no placeholders",
			"Boundaries: No test files, no deployment configs",
		},
		framework.Teaching: {
			"Format: Numbered sections with headers",
			"Deliverables: Concept explanation, code example, exercise",
			"Boundaries: No tangents, no alternatives",
		},
		framework.Explanation: {
			"Format: Four sections matching execution sequence",
			"Deliverables: Definition, mechanism, example, limitations",
			"Boundaries: No storytelling, no metaphors",
		},
		framework.Research: {
			"Format: Structured analysis with headers",
			"Deliverables: Question, methodology, findings, implications",
			"Boundaries: No opinions without evidence",
		},
		framework.Creative: {
			"Format: Design specification with values",
			"Deliverables: Color codes, spacing, typography, components",
			"Boundaries: No alternatives, no mood boards",
		},
		framework.Strategy: {
			"Format: Structured analysis with decision matrix",
			"Deliverables: Reframed problem, 3 options, matrix, recommendation",
			"Boundaries: No hedging, no multiple recommendations",
		},
		framework.Content: {
			"Format: Structured content with headers",
			"Deliverables: Complete draft, ready to publish",
			"Boundaries: No multiple drafts, no open choices",
		},
	}
	if c, ok := contracts[fw]; ok {
		return c
	}
	return []string{"Structured response", "No commentary", "No alternatives"}
}
