package home

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/screens/confirm"
	"github.com/abhisek/ndscreen/internal/screens/info"
	"github.com/abhisek/ndscreen/internal/screens/onboarding"
	"github.com/abhisek/ndscreen/internal/screens/questionnaire"
	"github.com/abhisek/ndscreen/internal/store"
	"github.com/abhisek/ndscreen/internal/workspace"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)
	ws := workspace.New(st, cat, 5, nil)
	require.NoError(t, ws.Session.CompleteOnboarding(store.Profile{
		Name: "Ada", DateOfBirth: "1990-03-15", Gender: "Female",
	}))
	return ws
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg")
	return msg.Screen
}

func TestHomeView(t *testing.T) {
	ws := newTestWorkspace(t)
	for _, it := range mustInstrument(t, ws, "wurs").Items {
		require.NoError(t, ws.Session.SetResponse("wurs", it.ID, 0))
	}
	require.NoError(t, ws.Session.SetResponse("aq", "aq_1", 0))

	h := New(ws)
	for _, size := range [][2]int{{120, 60}, {80, 18}} {
		view := h.View(size[0], size[1])
		assert.Contains(t, view, "Hello, Ada")
		assert.Contains(t, view, "1 of 4 tests complete")
		assert.Contains(t, view, "Complete")
		assert.Contains(t, view, "In Progress")
		assert.Contains(t, view, "Not Started")
	}
}

func mustInstrument(t *testing.T, ws *workspace.Workspace, id string) catalog.Instrument {
	t.Helper()
	in, ok := ws.Catalog.Get(id)
	require.True(t, ok)
	return in
}

func TestEnterOpensQuestionnaire(t *testing.T) {
	h := New(newTestWorkspace(t))

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	q, ok := pushed(t, cmd).(*questionnaire.Screen)
	require.True(t, ok)
	assert.Equal(t, h.instruments[0], mustID(q))
}

func mustID(q *questionnaire.Screen) string {
	return q.Section().Key.InstrumentID
}

func TestInfoKeyOnInstrumentOnly(t *testing.T) {
	h := New(newTestWorkspace(t))

	_, cmd := h.Update(keyPress('i'))
	_, ok := pushed(t, cmd).(*info.Screen)
	assert.True(t, ok)

	// Move onto the first action.
	for range h.instruments {
		h.Update(specialKey(tea.KeyDown))
	}
	_, cmd = h.Update(keyPress('i'))
	assert.Nil(t, cmd)
}

func TestResetFlow(t *testing.T) {
	ws := newTestWorkspace(t)
	require.NoError(t, ws.Session.SetResponse("aq", "aq_1", 0))
	h := New(ws)

	for h.menu.Items[h.menu.Selected].Label != "Reset everything" {
		h.Update(specialKey(tea.KeyDown))
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	dialog, ok := pushed(t, cmd).(*confirm.Screen)
	require.True(t, ok)
	assert.True(t, ws.Session.HasProfile(), "nothing is erased before confirmation")

	_, cmd = dialog.Update(keyPress('y'))
	require.NotNil(t, cmd)
	assert.False(t, ws.Session.HasProfile())
	assert.Empty(t, ws.Session.Responses())
}

func TestEditProfileAction(t *testing.T) {
	h := New(newTestWorkspace(t))
	for h.menu.Items[h.menu.Selected].Label != "Edit profile" {
		h.Update(specialKey(tea.KeyDown))
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	form, ok := pushed(t, cmd).(*onboarding.Screen)
	require.True(t, ok)
	assert.Equal(t, "Edit Profile", form.Title())
}
