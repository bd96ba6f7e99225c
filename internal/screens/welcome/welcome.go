// Package welcome is the splash shown at start. It fades in the banner
// and the disclaimer, and waits for a key once the disclaimer is up.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/ui/theme"
)

const (
	step         = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	disclaimerAt = 900 * time.Millisecond
)

const (
	tagline    = "Self-administered screening questionnaires"
	disclaimer = "This is not a diagnostic tool. Responses are stored only on this computer\nand are never scored or interpreted. Share them with a qualified professional."
)

type tickMsg struct{}

// WelcomeScreen replaces itself with next() on the first key press after
// the disclaimer is visible. An earlier key press only skips the fade.
type WelcomeScreen struct {
	next     func() screen.Screen
	greeting string
	elapsed  time.Duration
	done     bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the splash. greeting, when set, is shown under the tagline
// for returning users.
func New(next func() screen.Screen, greeting string) *WelcomeScreen {
	return &WelcomeScreen{next: next, greeting: greeting}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(step, func(time.Time) tea.Msg { return tickMsg{} })
}

func (w *WelcomeScreen) disclaimerShown() bool { return w.elapsed >= disclaimerAt }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.disclaimerShown() {
			return w, nil
		}
		w.elapsed += step
		if w.disclaimerShown() {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		if !w.disclaimerShown() {
			w.elapsed = disclaimerAt
			return w, nil
		}
		if w.done {
			return w, nil
		}
		w.done = true
		next := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var lines []string
	if w.elapsed >= bannerAt {
		lines = append(lines,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline))
		if w.greeting != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Render(w.greeting))
		}
	}
	if w.disclaimerShown() {
		lines = append(lines,
			"",
			lipgloss.NewStyle().Foreground(theme.Accent).Align(lipgloss.Center).Render(disclaimer),
			"",
			theme.Hint.Render("press any key to continue"))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
