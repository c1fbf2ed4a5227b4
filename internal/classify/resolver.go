package classify

import (
	"fmt"
	"strings"

	"promptc/internal/framework"
)

// Resolution confidence tiers for explicit framework names. An exact
// identifier match is certain; fuzzier matches are marked down so
// callers can see how the name was interpreted.
const (
	confidenceExact     = 1.0
	confidenceSubstring = 0.9
	confidenceKeyword   = 0.8
	confidenceDefault   = 0.5
)

// keywordEntry is one row of the explicit-name fallback map. The map
// is an ordered slice, not a Go map: resolution is first-match-wins
// and must stay deterministic if entries ever overlap.
type keywordEntry struct {
	keyword string
	fw      framework.Framework
}

var keywordMap = []keywordEntry{
	{"coding", framework.Coding},
	{"code", framework.Coding},
	{"build", framework.Coding},
	{"teaching", framework.Teaching},
	{"learn", framework.Teaching},
	{"explain", framework.Explanation},
	{"research", framework.Research},
	{"analyze", framework.Research},
	{"creative", framework.Creative},
	{"design", framework.Creative},
	{"strategy", framework.Strategy},
	{"decide", framework.Strategy},
	{"content", framework.Content},
	{"write", framework.Content},
}

// ResolveExplicit maps a caller-supplied framework name to a Framework.
// It never fails: an unresolvable name falls back to the default
// framework with reduced confidence and a reasoning string naming the
// unresolved input.
func (c *Classifier) ResolveExplicit(name string) (framework.Framework, float64, string) {
	cleaned := strings.ToLower(strings.TrimSpace(name))

	for _, spec := range c.registry.All() {
		if string(spec.Framework) == cleaned || strings.ToLower(spec.Name) == cleaned {
			return spec.Framework, confidenceExact, fmt.Sprintf("Explicit framework %s", spec.Name)
		}
	}

	if cleaned != "" {
		for _, spec := range c.registry.All() {
			if strings.Contains(string(spec.Framework), cleaned) || strings.Contains(strings.ToLower(spec.Name), cleaned) {
				return spec.Framework, confidenceSubstring, fmt.Sprintf("Matched framework %s", spec.Name)
			}
		}

		for _, entry := range keywordMap {
			if strings.Contains(cleaned, entry.keyword) {
				spec, _ := c.registry.Get(entry.fw)
				return entry.fw, confidenceKeyword, fmt.Sprintf("Matched framework %s", spec.Name)
			}
		}
	}

	return framework.Default, confidenceDefault, fmt.Sprintf("Unresolved framework %q, using default", name)
}
