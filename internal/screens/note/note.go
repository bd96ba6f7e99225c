// Package note is the free-text editor for item and section notes.
package note

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
)

const charLimit = 4000

// Screen edits one note. Ctrl+S stores the text through save and closes
// the editor; Esc discards the edit.
type Screen struct {
	title   string
	context string
	save    func(text string)
	input   textarea.Model
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates an editor titled title, showing context (the item or section
// being annotated) above the text area and prefilled with current.
func New(title, context, current string, save func(text string)) *Screen {
	ta := textarea.New()
	ta.Placeholder = "Examples, context, anything you want to remember..."
	ta.ShowLineNumbers = false
	ta.CharLimit = charLimit
	ta.SetHeight(8)
	ta.SetValue(current)

	return &Screen{
		title:   title,
		context: context,
		save:    save,
		input:   ta,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *Screen) Title() string { return s.title }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Discard"},
	}
}

// Value returns the text currently in the editor.
func (s *Screen) Value() string {
	return s.input.Value()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "ctrl+s" {
		s.save(strings.TrimRight(s.input.Value(), "\n"))
		return s, tea.Batch(
			func() tea.Msg { return router.PopScreenMsg{} },
			components.ShowToast("Note saved", false),
		)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.input.SetWidth(cw - 4)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(cw - 4).
		Foreground(theme.TextDim).
		Render(s.context))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw, false))
}
