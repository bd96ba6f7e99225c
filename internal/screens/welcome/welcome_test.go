package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newWelcome(greeting string) (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &stubScreen{}
	}, greeting), &built
}

func ticks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg{})
	}
	return cmd
}

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func TestFadeIn(t *testing.T) {
	w, _ := newWelcome("Welcome back, Ada")
	assert.NotContains(t, w.View(100, 30), tagline)

	ticks(w, 3)
	v := w.View(100, 30)
	assert.Contains(t, v, tagline)
	assert.Contains(t, v, "Welcome back, Ada")
	assert.NotContains(t, v, "not a diagnostic tool")

	assert.Nil(t, ticks(w, 6), "ticking stops once the disclaimer is up")
	assert.Contains(t, w.View(100, 30), "not a diagnostic tool")
}

func TestEarlyKeyOnlySkipsFade(t *testing.T) {
	w, built := newWelcome("")
	_, cmd := w.Update(key('a'))
	assert.Nil(t, cmd)
	assert.Zero(t, *built)
	assert.Contains(t, w.View(100, 30), "not a diagnostic tool")
}

func TestKeyAfterDisclaimerHandsOver(t *testing.T) {
	w, built := newWelcome("")
	ticks(w, 9)

	_, cmd := w.Update(key(' '))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Home", msg.Screen.Title())

	_, cmd = w.Update(key('b'))
	assert.Nil(t, cmd, "hands over only once")
	assert.Equal(t, 1, *built)
}

func TestCompactBanner(t *testing.T) {
	got := RenderBanner(40)
	assert.True(t, strings.Contains(got, bannerCompact), "narrow banner = %q", got)
}
