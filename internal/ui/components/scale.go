package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/ui/theme"
)

// ScaleSelector picks one option of an instrument's response scale. Number
// keys choose and submit directly; arrows move the cursor and Enter submits.
type ScaleSelector struct {
	Options []string
	// Selected is the cursor position.
	Selected int
	// Current is the stored answer, or -1 when the item is unanswered.
	Current   int
	Submitted bool
	Chosen    int
}

// NewScaleSelector creates a selector over options. current is the stored
// answer or -1; the cursor starts on it when present.
func NewScaleSelector(options []string, current int) ScaleSelector {
	sel := 0
	if current >= 0 && current < len(options) {
		sel = current
	}
	return ScaleSelector{
		Options:  options,
		Selected: sel,
		Current:  current,
		Chosen:   -1,
	}
}

// Init returns nil.
func (s ScaleSelector) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. After a submit the
// caller reads Chosen and builds a fresh selector for the next item.
func (s ScaleSelector) Update(msg tea.Msg) (ScaleSelector, tea.Cmd) {
	if s.Submitted {
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if s.Selected > 0 {
			s.Selected--
		}
	case "down", "j":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
	case "enter":
		s.submit(s.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(s.Options) {
			s.Selected = n - 1
			s.submit(n - 1)
		}
	}

	return s, nil
}

func (s *ScaleSelector) submit(i int) {
	s.Submitted = true
	s.Chosen = i
}

// View renders the options, marking the stored answer.
func (s ScaleSelector) View() string {
	var out string
	for i, opt := range s.Options {
		prefix := "  "
		if i == s.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == s.Current {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, mark, i+1, opt)

		switch {
		case i == s.Selected:
			out += theme.Selected.Render(line) + "\n"
		case i == s.Current:
			out += theme.Answered.Render(line) + "\n"
		default:
			out += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return out
}
