package styles

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/songbook/internal/core/render"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()

	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)
	for _, n := range names {
		_, ok := GetPalette(n)
		assert.True(t, ok, n)
	}
}

func TestParseHex(t *testing.T) {
	_, err := ParseHex("#7aa2f7")
	require.NoError(t, err)

	_, err = ParseHex("blue")
	require.Error(t, err)
}

func TestSetColor(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	require.NoError(t, SetColor(ColorNameChord, "#ff0000"))
	require.Error(t, SetColor("nope", "#ff0000"))
	require.Error(t, SetColor(ColorNameChord, "red"))
}

func TestRow_KeepsText(t *testing.T) {
	row := render.Row{
		{Text: "C ", Style: render.StyleChord},
		{Text: "la", Style: render.StylePlain},
		{Text: "!", Style: render.StyleComment},
	}

	assert.Equal(t, "C la!", ansi.Strip(Row(row)))
}

func TestGlamourStyle(t *testing.T) {
	cfg := GlamourStyle()

	require.NotNil(t, cfg.Heading.Color)
	assert.Equal(t, *colorHexPtr(ColorPrimary), *cfg.Heading.Color)
}
