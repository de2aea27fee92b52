package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string untouched", "Kesariya", "Kesariya"},
		{"html entities decoded", "Tum Hi Ho &quot;Aashiqui 2&quot; &amp; more", `Tum Hi Ho "Aashiqui 2" & more`},
		{"control chars dropped", "Song\x00 Na\x1bme", "Song Name"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp becomes space", "Arijit\u00a0Singh", "Arijit Singh"},
		{"invalid bytes dropped", "ok\xffok", "okok"},
		{"devanagari kept", "केसरिया", "केसरिया"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"zero width", "hello", 0, ""},
		{"wide runes", "日本語テキスト", 7, "日本語…"},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, lipgloss.Width(got), max(tt.maxWidth, 0))
		})
	}
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab   ", Fit("ab", 5))
	assert.Equal(t, "abcd…", Fit("abcdefgh", 5))
	assert.Equal(t, 6, lipgloss.Width(Fit("日本語テキスト", 6)))
}

func TestTruncateStyled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("abcdefghij")

	assert.Equal(t, styled, TruncateStyled(styled, 20))
	assert.Equal(t, 4, lipgloss.Width(TruncateStyled(styled, 4)))
	assert.Equal(t, "abc…", ansi.Strip(TruncateStyled(styled, 4)))
	assert.Empty(t, TruncateStyled(styled, 0))
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left    right", Row("left", "right", 13))
	assert.Equal(t, "left right", Row("left", "right", 3), "keeps at least one space")
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, "───", Separator(3))
	assert.Empty(t, Separator(-1))
}
