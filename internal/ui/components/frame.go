package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/ui/theme"
)

// ContentWidth returns the inner width shared by all boxes in a frame so
// they line up.
func ContentWidth(frameWidth int) int {
	// frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 72)
}

// Frame wraps content in a double border, centered in width x height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box of content width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}
