// Package confirm is a yes/no dialog for irreversible actions.
package confirm

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
)

// Screen asks a question. Y runs onYes, whose command decides where to go
// next; N pops the dialog.
type Screen struct {
	title    string
	question string
	detail   string
	onYes    func() tea.Cmd
	done     bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a confirmation dialog.
func New(title, question, detail string, onYes func() tea.Cmd) *Screen {
	return &Screen{title: title, question: question, detail: detail, onYes: onYes}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return s.title }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y", Description: "Yes"},
		{Key: "N", Description: "No"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.done {
		return s, nil
	}
	switch kmsg.String() {
	case "y", "Y":
		s.done = true
		return s, s.onYes()
	case "n", "N":
		s.done = true
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(s.question))
	b.WriteString("\n")
	if s.detail != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(min(width-8, 64)).
			Align(lipgloss.Center).
			Render(s.detail))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, go back"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String()))
}
