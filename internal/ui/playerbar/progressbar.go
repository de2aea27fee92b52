package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/saavn/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

func filledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func emptyStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// Filled returns how many of width cells a bar at position/duration fills.
func Filled(position, duration float64, width int) int {
	if duration <= 0 || position <= 0 || width <= 0 {
		return 0
	}
	return min(int(float64(width)*position/duration), width)
}

// RenderProgressBar renders a width cell bar.
func RenderProgressBar(position, duration float64, width int) string {
	filled := Filled(position, duration, width)
	return filledStyle().Render(strings.Repeat(filledBlock, filled)) +
		emptyStyle().Render(strings.Repeat(emptyBlock, max(width-filled, 0)))
}
