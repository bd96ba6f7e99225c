package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/ui/theme"
)

// Eighth blocks give the bar sub-cell resolution.
var partials = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// ProgressBar renders "label  ████▌░░░  42%" in width cells. The bar turns
// green at 100.
func ProgressBar(label string, percent, width int) string {
	percent = min(max(percent, 0), 100)

	var b strings.Builder
	if label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(label))
		b.WriteString("  ")
	}
	suffix := fmt.Sprintf("  %3d%%", percent)
	cells := max(4, width-lipgloss.Width(b.String())-len(suffix))

	eighths := cells * 8 * percent / 100
	full, part := eighths/8, eighths%8
	filled := strings.Repeat("█", full) + partials[part]
	rest := cells - full
	if part > 0 {
		rest--
	}

	color := theme.Secondary
	if percent == 100 {
		color = theme.Success
	}
	b.WriteString(lipgloss.NewStyle().Foreground(color).Render(filled))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", rest)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	return b.String()
}
