package app

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screens/home"
	"github.com/abhisek/ndscreen/internal/screens/onboarding"
	"github.com/abhisek/ndscreen/internal/store"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)
	return workspace.New(st, cat, 5, nil)
}

func onboard(t *testing.T, ws *workspace.Workspace) {
	t.Helper()
	require.NoError(t, ws.Session.CompleteOnboarding(store.Profile{
		Name: "Ada", DateOfBirth: "1990-03-15", Gender: "Female",
	}))
}

// send feeds msg through the model and returns the updated model and the
// message produced by the resulting command, if any.
func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	if cmd == nil {
		return am, nil
	}
	return am, cmd()
}

func TestEntryScreen(t *testing.T) {
	ws := newTestWorkspace(t)

	_, ok := entryScreen(ws)().(*onboarding.Screen)
	assert.True(t, ok, "no profile should lead to onboarding")

	onboard(t, ws)
	_, ok = entryScreen(ws)().(*home.HomeScreen)
	assert.True(t, ok, "a profile should lead to home")
}

func TestWelcomeHandsOver(t *testing.T) {
	ws := newTestWorkspace(t)
	onboard(t, ws)
	m := newAppModel(ws)

	// The first key skips the fade, the second continues.
	m, msg := send(t, m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.Nil(t, msg)
	m, msg = send(t, m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	replace, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok)
	m, _ = send(t, m, replace)

	_, ok = m.router.Active().(*home.HomeScreen)
	assert.True(t, ok)
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscAtRootIsIgnored(t *testing.T) {
	m := newAppModel(newTestWorkspace(t))
	_, msg := send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, msg)
}

func TestSavedShowsToast(t *testing.T) {
	ws := newTestWorkspace(t)
	onboard(t, ws)
	m := newAppModel(ws)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, msg := send(t, m, savedMsg{rev: 3})
	show, ok := msg.(components.ShowToastMsg)
	require.True(t, ok)
	assert.Equal(t, "Saved", show.Text)

	m, _ = send(t, m, show)
	assert.True(t, m.toast.Visible())
	assert.Contains(t, m.renderToast(), "Saved")

	_, msg = send(t, m, saveFailedMsg{err: errors.New("disk full")})
	show = msg.(components.ShowToastMsg)
	assert.True(t, show.Error)
	assert.Contains(t, show.Text, "disk full")
}

func TestHeaderStatus(t *testing.T) {
	ws := newTestWorkspace(t)
	m := newAppModel(ws)
	assert.Empty(t, m.status())

	onboard(t, ws)
	assert.Equal(t, fmt.Sprintf("0 of %d complete", ws.Catalog.Len()), m.status())
}

func TestGreeting(t *testing.T) {
	ws := newTestWorkspace(t)
	assert.Empty(t, greeting(ws))

	onboard(t, ws)
	assert.Equal(t, fmt.Sprintf("Welcome back, Ada. 0 of %d complete.", ws.Catalog.Len()), greeting(ws))
}

func TestRenderFrame(t *testing.T) {
	ws := newTestWorkspace(t)
	onboard(t, ws)
	m := newAppModel(ws)
	assert.Empty(t, m.render(), "nothing before the first size message")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "at least 80 x 24")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = send(t, m, router.ReplaceScreenMsg{Screen: home.New(ws)})
	out := m.render()
	assert.Contains(t, out, "ndscreen")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "Hello, Ada")
}
