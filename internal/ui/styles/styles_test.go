package styles

import (
	"image/color"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBlendColors_Endpoints(t *testing.T) {
	colors := blendColors(5, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))

	assert.Len(t, colors, 5)
	assert.Equal(t, "#000000", colorToHex(colors[0]))
	assert.Equal(t, "#ffffff", colorToHex(colors[4]))
}

func TestBlendColors_Single(t *testing.T) {
	from := lipgloss.Color("#2bc5b4")
	assert.Equal(t, []color.Color{from}, blendColors(1, from, lipgloss.Color("#ffffff")))
}

func TestLogo_KeepsText(t *testing.T) {
	assert.Equal(t, "saavn", stripWidth(Logo("saavn")))
	assert.Empty(t, Logo(""))
}

// stripWidth returns the visible text of a styled string.
func stripWidth(s string) string {
	out := []rune{}
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			out = append(out, r)
		}
	}
	return string(out)
}

func TestPanel_FocusColor(t *testing.T) {
	assert.Equal(t, T().BorderFocus, Panel(true).GetBorderTopForeground())
	assert.Equal(t, T().Border, Panel(false).GetBorderTopForeground())
}
