// Package screen defines the contract between the router and the screens
// it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ndscreen/internal/ui/layout"
)

// Screen is one full-content view. The app draws the header and footer
// around whatever View returns.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title names the screen in the header breadcrumb.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Revealer is notified when the screens above it are popped, so it can
// pick up changes made while it was covered (a note saved, an answer
// jumped to).
type Revealer interface {
	Revealed() tea.Cmd
}
