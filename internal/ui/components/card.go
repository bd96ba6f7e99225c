package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/ui/theme"
)

const (
	maxContentWidth = 72
	minContentWidth = 20
)

// ContentWidth is the width every stacked block on a screen shares, so
// cards and text line up. It leaves room for the outer frame.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// Frame centers content inside a double border filling the area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card boxes content in cw columns, border included, leaving cw-4 for the
// content. The selected card gets a highlighted border.
func Card(content string, cw int, selected bool) string {
	border := theme.Border
	if selected {
		border = theme.Highlight
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Padding(0, 1).
		Render(content)
}
