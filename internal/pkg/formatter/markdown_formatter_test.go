package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownFormatterStructure(t *testing.T) {
	rendered := "Session: abc-123\n" +
		"Domain: software\n\n" +
		"Summary\n" +
		"  Overall score: 70%\n\n" +
		"Strengths\n" +
		"  - Clear delivery\n\n" +
		"Improvement plan\n" +
		"  Communication (high priority)\n" +
		"    - Record yourself answering\n" +
		"    * Articulation drills"

	out, err := NewMarkdownFormatter().Format(rendered)
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "# Interview Performance Report\n")
	assert.Contains(t, md, "Session: abc-123\n")
	assert.Contains(t, md, "## Summary\n")
	assert.Contains(t, md, "- Overall score: 70%\n")
	assert.Contains(t, md, "## Strengths\n")
	assert.Contains(t, md, "- Clear delivery\n")
	assert.Contains(t, md, "- Communication (high priority)\n")
	assert.Contains(t, md, "  - Record yourself answering\n")
	assert.Contains(t, md, "  - Articulation drills\n")
	assert.NotContains(t, md, "## Session", "header fields must not become headings")
}
