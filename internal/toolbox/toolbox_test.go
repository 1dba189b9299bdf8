package toolbox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/quaintpaint/internal/command"
)

func TestNewFallsBackToDefaults(t *testing.T) {
	tb := New(nil)
	assert.Equal(t, Defaults(), tb.Tools())
	assert.Equal(t, command.LineTool("thin", 3), tb.Current())
	assert.Equal(t, 0, tb.Index())
}

func TestSelect(t *testing.T) {
	tb := New(Defaults())
	assert.True(t, tb.SelectIndex(3))
	assert.Equal(t, "✨", tb.Current().Glyph)
	assert.False(t, tb.SelectIndex(99))
	assert.Equal(t, "✨", tb.Current().Glyph, "invalid index keeps the tool")

	assert.True(t, tb.SelectName("thick"))
	assert.Equal(t, 8.0, tb.Current().Width)
	assert.False(t, tb.SelectName("missing"))

	custom := command.LineTool("", 21)
	tb.Select(custom)
	assert.Equal(t, custom, tb.Current())
	assert.Equal(t, -1, tb.Index())
}

func TestReplaceKeepsCurrent(t *testing.T) {
	tb := New(nil)
	tb.SelectIndex(1)
	tb.Replace([]command.Tool{command.StickerTool("h", "H")})
	assert.Equal(t, command.LineTool("thick", 8), tb.Current())
	assert.Len(t, tb.Tools(), 1)
}
