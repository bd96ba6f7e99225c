package questionnaire

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	item := s.Current()
	sec := s.Section()
	sess := s.ws.Session

	var b strings.Builder

	// Section line.
	secCount := s.ws.Progress.Section(sec)
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(sec.Name)
	if sess.HasSectionNote(sec.Key.String()) {
		left += lipgloss.NewStyle().Foreground(theme.Accent).Render("  ✎")
	}
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("section %d/%d", secCount.Answered, secCount.Total))
	b.WriteString(spread(left, right, cw))
	b.WriteString("\n")

	count := s.ws.Progress.Count(s.instrument.ID)
	b.WriteString(components.ProgressBar("", count.Percent(), cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	// Item.
	itemLine := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Item %d of %d", s.pos+1, len(s.items)))
	if sess.HasItemNote(item.ID) {
		itemLine += lipgloss.NewStyle().Foreground(theme.Accent).Render("  ✎ note")
	}
	b.WriteString(itemLine)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(item.Text))
	b.WriteString("\n\n")

	b.WriteString(s.selector.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Invalid.Render(s.errMsg))
	}
	if s.finished {
		b.WriteString("\n")
		b.WriteString(theme.Answered.Render("All items answered. Press Esc to return home."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// spread places left and right at the edges of width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
