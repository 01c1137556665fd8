package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	out := RenderProgress(0.5, 10)
	assert.Contains(t, out, " 50%")
	assert.Equal(t, 5, strings.Count(out, filledBlock))
	assert.Equal(t, 5, strings.Count(out, emptyBlock))
}

func TestRenderProgress_ClampsPct(t *testing.T) {
	assert.Contains(t, RenderProgress(-0.5, 10), "  0%")
	assert.Contains(t, RenderProgress(1.5, 10), "100%")

	full := RenderProgress(1.5, 10)
	assert.Equal(t, 10, strings.Count(full, filledBlock))
	assert.Equal(t, 0, strings.Count(full, emptyBlock))
}

func TestRenderPosition(t *testing.T) {
	out := RenderPosition(0.4, 10)
	assert.Contains(t, out, " 40%")
	assert.Equal(t, 4, strings.Count(out, filledBlock))
	assert.Equal(t, 6, strings.Count(out, emptyBlock))
}

func TestCompletionStyle(t *testing.T) {
	// Only the completion bar shifts red to green; position bars keep
	// one color across the whole range.
	assert.Equal(t, StyleRed, completionStyle(0.1))
	assert.Equal(t, StyleYellow, completionStyle(0.5))
	assert.Equal(t, StyleGreen, completionStyle(0.9))
}
