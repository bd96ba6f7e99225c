// Package layout renders the application chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below these the home screen switches to one line per instrument.
	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is a key and what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("The questionnaire needs a terminal of at least %d x %d.\n\nCurrent size: %d x %d",
		MinWidth, MinHeight, width, height)
	msg := lipgloss.NewStyle().Foreground(theme.Text).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the app name on the left, the screen title centered
// and status (the completion count) on the right. A long title is cut to
// keep the status visible.
func RenderHeader(title, status string, width int) string {
	inner := max(0, width-4)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" ndscreen")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	room := inner - 2*max(lipgloss.Width(left), lipgloss.Width(right)) - 2
	if room > 0 && lipgloss.Width(title) > room {
		title = truncateRunes(title, room)
	}
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	leftGap := max(1, (inner-lipgloss.Width(center))/2-lipgloss.Width(left))
	rightGap := max(1, inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right))

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter lays out key hints in order. Hints that do not fit are
// dropped from the middle so the last one (usually Back or Quit) stays.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	render := func(h KeyHint) string {
		return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = render(h)
	}
	inner := width - 6
	for len(parts) > 1 && lipgloss.Width(strings.Join(parts, sep)) > inner {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}
	return bar("  "+strings.Join(parts, sep), width)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the height between them.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
