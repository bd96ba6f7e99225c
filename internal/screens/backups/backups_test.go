package backups

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screens/confirm"
	"github.com/abhisek/ndscreen/internal/store"
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
	ws := workspace.New(st, cat, 5, nil)
	require.NoError(t, ws.Session.CompleteOnboarding(store.Profile{
		Name: "Ada", DateOfBirth: "1990-03-15", Gender: "Female",
	}))
	return ws
}

func load(t *testing.T, s *Screen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.True(t, s.loaded)
}

func TestEmptyList(t *testing.T) {
	s := New(newTestWorkspace(t))
	load(t, s)
	assert.Contains(t, s.View(100, 20), "No backups yet")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestRestoreSelectedBackup(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()
	require.NoError(t, ws.Session.SetResponse("aq", "aq_1", 2))
	_, err := ws.Import(ctx, []byte(`{"responses":{}}`))
	require.NoError(t, err)
	require.Empty(t, ws.Session.Responses())

	s := New(ws)
	load(t, s)
	require.Len(t, s.backups, 1)
	assert.Contains(t, s.View(120, 20), "Ada")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	dialog, ok := cmd().(router.PushScreenMsg).Screen.(*confirm.Screen)
	require.True(t, ok)

	_, cmd = dialog.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	assert.Equal(t, store.Responses{"aq": {"aq_1": 2}}, ws.Session.Responses())
}
