package framework

import (
	"fmt"
	"regexp"
)

// Registry holds the spec for every framework. Construction is pure
// data assembly with no I/O; Get and All never mutate state.
type Registry struct {
	specs map[Framework]Spec
}

// NewRegistry builds the registry with the canonical framework table.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[Framework]Spec, 7)}
	for _, spec := range buildSpecs() {
		r.specs[spec.Framework] = spec
	}
	return r
}

// Get returns the spec for a framework. The enum is closed, so the
// error path is only reachable with a hand-constructed value.
func (r *Registry) Get(fw Framework) (Spec, error) {
	spec, ok := r.specs[fw]
	if !ok {
		return Spec{}, fmt.Errorf("unknown framework: %q", fw)
	}
	return spec, nil
}

// All returns every spec in declaration order.
func (r *Registry) All() []Spec {
	specs := make([]Spec, 0, len(r.specs))
	for _, fw := range All() {
		specs = append(specs, r.specs[fw])
	}
	return specs
}

func buildSpecs() []Spec {
	return []Spec{
		{
			Framework:   Coding,
			Name:        "Coding & Development",
			Description: "Architecture clarity, deterministic behavior, production-grade systems",
			Personas:    []string{"Senior Software Engineer", "Production-grade", "No prototypes"},
			Triggers: []string{
				"code", "build", "implement", "function", "api", "debug", "fix",
				"create", "develop", "program", "script", "database", "backend",
				"frontend", "app",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(build|implement|create|develop)\s+(a|an|the)\s+\S+`),
				regexp.MustCompile(`(?i)\b(fix|debug)\s+(a|the|this|my)?\s*(bug|error|crash|issue)\b`),
				regexp.MustCompile(`(?i)\b(rest|graphql|web)\s+api\b`),
			},
			Enforcements: []string{
				"Single tech stack decided",
				"Modular architecture",
				"Explicit error handling",
				"Type safety enforced",
			},
			Avoidances: []string{"Generic best practices", "Optional alternatives", "Prototype patterns"},
			IdealFor:   []string{"Code generation", "System design", "Debugging", "API development"},
		},
		{
			Framework:   Teaching,
			Name:        "Teaching & Learning",
			Description: "Progressive complexity, concept sequencing, retention-focused",
			Personas:    []string{"Expert Instructor", "Progressive complexity", "Retention-focused"},
			Triggers: []string{
				"teach", "learn", "how to", "tutorial", "guide", "understand",
				"beginner", "step by step", "explain how", "show me",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bhow\s+(do|does|to|can)\b`),
				regexp.MustCompile(`(?i)\b(teach|show)\s+me\b`),
				regexp.MustCompile(`(?i)\bstep[-\s]by[-\s]step\b`),
			},
			Enforcements: []string{
				"Prerequisites stated first",
				"One concept per section",
				"Simple to Abstract progression",
				"Verification checkpoints",
			},
			Avoidances: []string{"Information dumping", "Mixed difficulty", "Tangents"},
			IdealFor:   []string{"Tutorials", "Educational content", "Skill building", "Onboarding"},
		},
		{
			Framework:   Explanation,
			Name:        "Explanation",
			Description: "High signal density, zero fluff, technically precise",
			Personas:    []string{"Domain Expert", "High signal density", "Zero fluff"},
			Triggers: []string{
				"what is", "explain", "describe", "tell me about", "overview",
				"summary", "eli5", "difference between",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bwhat\s+(is|are|does)\b`),
				regexp.MustCompile(`(?i)\bdifference\s+between\b`),
				regexp.MustCompile(`(?i)\b(explain|describe)\s+\S+`),
			},
			Enforcements: []string{
				"Definition, then mechanism, then example, then limitation",
				"Every sentence adds information",
				"Explicit boundaries",
			},
			Avoidances: []string{"Storytelling", "Metaphor overload", "Redundancy"},
			IdealFor:   []string{"Concept explanations", "Technical documentation", "Knowledge transfer"},
		},
		{
			Framework:   Research,
			Name:        "Research & Analysis",
			Description: "Evidence-based, analytically rigorous, structured inquiry",
			Personas:    []string{"Research Analyst", "Evidence-based", "Analytically rigorous"},
			Triggers: []string{
				"research", "analyze", "compare", "investigate", "study",
				"evaluate", "assess", "pros and cons", "tradeoffs",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bpros\s+and\s+cons\b`),
				regexp.MustCompile(`(?i)\bcompare\s+\S+\s+(and|with|to|against)\b`),
				regexp.MustCompile(`(?i)\b(analyze|evaluate|assess)\s+(the|this|my)?\b`),
			},
			Enforcements: []string{
				"Explicit research question",
				"Scope boundaries defined",
				"Assumptions declared",
				"Evidence-backed claims only",
			},
			Avoidances: []string{"Opinions without evidence", "Broad wandering", "Speculation"},
			IdealFor:   []string{"Market research", "Technical analysis", "Decision support", "Due diligence"},
		},
		{
			Framework:   Creative,
			Name:        "Creative & Design",
			Description: "Constrained creativity, taste-controlled, visual coherence",
			Personas:    []string{"Creative Director", "Constrained creativity", "Taste-controlled"},
			Triggers: []string{
				"design", "creative", "brainstorm", "ideas", "story", "visual",
				"aesthetic", "style", "brand", "ui", "ux",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(design|sketch)\s+(a|an|the)\s+\S+`),
				regexp.MustCompile(`(?i)\bbrainstorm\b`),
				regexp.MustCompile(`(?i)\b(ui|ux)\s+(design|concept|mockup)\b`),
			},
			Enforcements: []string{
				"Visual direction rules explicit",
				"Style constraints with values",
				"Single mood anchor",
				"Boundaries defined",
			},
			Avoidances: []string{"Unbounded creativity", "Vague aesthetics", "Multiple directions"},
			IdealFor:   []string{"UI/UX design", "Creative writing", "Brand development", "Visual concepts"},
		},
		{
			Framework:   Strategy,
			Name:        "Strategy & Thinking",
			Description: "First-principles reasoning, decision-grade clarity, single recommendation",
			Personas:    []string{"Strategic Advisor", "First-principles", "Decision-grade"},
			Triggers: []string{
				"decide", "should i", "strategy", "plan", "approach", "solve",
				"problem", "optimize", "improve", "best way",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bshould\s+(i|we)\b`),
				regexp.MustCompile(`(?i)\bbest\s+way\s+to\b`),
				regexp.MustCompile(`(?i)\bhelp\s+me\s+(decide|choose|pick)\b`),
			},
			Enforcements: []string{
				"Problem reframed from first principles",
				"Hard constraints identified",
				"Options with criteria",
				"Single recommendation",
			},
			Avoidances: []string{"Motivational language", "Generic advice", "Hedging"},
			IdealFor:   []string{"Strategic planning", "Decision making", "Problem solving", "Process optimization"},
		},
		{
			Framework:   Content,
			Name:        "Content Creation",
			Description: "Audience-aligned, purpose-driven, structured communication",
			Personas:    []string{"Content Strategist", "Audience-aligned", "Purpose-driven"},
			Triggers: []string{
				"write", "draft", "email", "blog", "content", "article", "post",
				"message", "copy", "document",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(write|draft)\s+(a|an|the|my)\s+\S+`),
				regexp.MustCompile(`(?i)\bblog\s+post\b`),
				regexp.MustCompile(`(?i)\b(email|message)\s+(to|for)\b`),
			},
			Enforcements: []string{
				"Audience explicitly defined",
				"Single intent locked",
				"Tone boundaries set",
				"Structure enforced",
			},
			Avoidances: []string{"Viral bait", "Emotional padding", "Multiple drafts"},
			IdealFor:   []string{"Email writing", "Blog posts", "Documentation", "Marketing copy"},
		},
	}
}
