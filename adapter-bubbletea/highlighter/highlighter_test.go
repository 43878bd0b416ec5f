package highlighter

import (
	"strings"
	"testing"

	"github.com/ionut-t/hecto/core"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette_CoversEveryColoredTag(t *testing.T) {
	p := Palette("monokai")

	for tag := range core.DefaultPalette {
		require.Contains(t, p, tag, tag.String())
		assert.NotNil(t, p[tag], tag.String())
	}
	assert.NotContains(t, p, core.TagNone)
}

func TestPalette_UsesTrueColorForStyledTokens(t *testing.T) {
	p := Palette("monokai")

	c, ok := p[core.TagKeyword].(termenv.RGBColor)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(c), "#"))
	assert.Len(t, string(c), 7)
	assert.True(t, strings.HasPrefix(p.Marker(core.TagKeyword), termenv.CSI+"38;2;"))
}

func TestPalette_UnknownThemeFallsBack(t *testing.T) {
	p := Palette("no-such-theme")

	assert.Len(t, p, len(tokenTypes))
}

func TestPalette_IsCached(t *testing.T) {
	a := Palette("dracula")
	b := Palette("dracula")

	a[core.TagNone] = termenv.ANSIRed
	defer delete(a, core.TagNone)
	assert.Contains(t, b, core.TagNone)
}

func TestHasTheme(t *testing.T) {
	assert.True(t, HasTheme("monokai"))
	assert.False(t, HasTheme("no-such-theme"))
	assert.Contains(t, Themes(), "monokai")
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Go", LanguageName("main.go"))
	assert.Equal(t, "Rust", LanguageName("src/main.rs"))
	assert.Equal(t, "", LanguageName("notes.unknownext"))
	assert.Equal(t, "", LanguageName(""))
}
