package structure

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullText returns a text containing all mandatory sections and no
// forbidden words.
func fullText() string {
	return strings.Join(MandatorySections, "\ncontent\n")
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	t.Run("valid text yields no violations", func(t *testing.T) {
		assert.Empty(t, v.Validate(fullText()))
	})

	t.Run("empty text misses all seven sections", func(t *testing.T) {
		violations := v.Validate("")
		require.Len(t, violations, len(MandatorySections))
		want := []string{
			"Missing mandatory section: ROLE",
			"Missing mandatory section: PLATFORM",
			"Missing mandatory section: OBJECTIVE",
			"Missing mandatory section: SCOPE",
			"Missing mandatory section: CONSTRAINTS",
			"Missing mandatory section: EXECUTION",
			"Missing mandatory section: OUTPUT CONTRACT",
		}
		if diff := cmp.Diff(want, violations); diff != "" {
			t.Errorf("violation order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("forbidden words reported before missing sections", func(t *testing.T) {
		violations := v.Validate("maybe do this, this or that")
		require.GreaterOrEqual(t, len(violations), 2)
		assert.Equal(t, "Forbidden word detected: 'or'", violations[0])
		assert.Equal(t, "Forbidden word detected: 'maybe'", violations[1])
		assert.Contains(t, violations[2], "Missing mandatory section:")
	})

	t.Run("word boundary avoids substring false positives", func(t *testing.T) {
		// "coding" contains neither a standalone "or" nor "could";
		// "editor" and "order" must not trip "or" either.
		violations := v.Validate(fullText() + "\ncoding in the editor, order matters")
		assert.Empty(t, violations)
	})

	t.Run("standalone forbidden word detected", func(t *testing.T) {
		violations := v.Validate(fullText() + "\nthis or that")
		require.Len(t, violations, 1)
		assert.Equal(t, "Forbidden word detected: 'or'", violations[0])
	})

	t.Run("case insensitive", func(t *testing.T) {
		violations := v.Validate(fullText() + "\nMAYBE later")
		require.Len(t, violations, 1)
		assert.Equal(t, "Forbidden word detected: 'maybe'", violations[0])
	})

	t.Run("multi-word forbidden phrases", func(t *testing.T) {
		violations := v.Validate(fullText() + "\nit can be done, something like this")
		require.Len(t, violations, 2)
		assert.Equal(t, "Forbidden word detected: 'can be'", violations[0])
		assert.Equal(t, "Forbidden word detected: 'something like'", violations[1])
	})

	t.Run("section headers are case sensitive", func(t *testing.T) {
		lowered := strings.ToLower(fullText())
		violations := v.Validate(lowered)
		assert.Len(t, violations, len(MandatorySections))
	})
}
