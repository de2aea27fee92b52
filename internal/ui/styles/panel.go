package styles

import "github.com/charmbracelet/lipgloss"

// Panel returns a rounded panel border, accented when focused.
func Panel(focused bool) lipgloss.Style {
	color := T().Border
	if focused {
		color = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}
