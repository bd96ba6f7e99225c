package questionnaire

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screens/info"
	"github.com/abhisek/ndscreen/internal/screens/note"
	"github.com/abhisek/ndscreen/internal/screens/overview"
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
	return workspace.New(st, cat, 5, nil)
}

func open(t *testing.T, ws *workspace.Workspace, start string) *Screen {
	t.Helper()
	s, err := New(ws, "adhd_rs", start)
	require.NoError(t, err)
	return s
}

func TestStartsAtFirstUnanswered(t *testing.T) {
	ws := newTestWorkspace(t)
	require.NoError(t, ws.Session.SetResponse("adhd_rs", "adhd_1", 0))
	require.NoError(t, ws.Session.SetResponse("adhd_rs", "adhd_2", 0))

	s := open(t, ws, "")
	assert.Equal(t, "adhd_3", s.Current().ID)

	s = open(t, ws, "adhd_1")
	assert.Equal(t, "adhd_1", s.Current().ID)
	assert.Equal(t, 0, s.selector.Current, "stored answer is preselected")
}

func TestUnknownInstrument(t *testing.T) {
	_, err := New(newTestWorkspace(t), "nope", "")
	assert.Error(t, err)
}

func TestAnswerAdvancesToNextUnanswered(t *testing.T) {
	ws := newTestWorkspace(t)
	require.NoError(t, ws.Session.SetResponse("adhd_rs", "adhd_3", 2))

	s := open(t, ws, "")
	require.Equal(t, "adhd_1", s.Current().ID)

	s.Update(keyPress('2'))
	v, ok := ws.Session.Response("adhd_rs", "adhd_1")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, "adhd_2", s.Current().ID)

	s.Update(keyPress('4'))
	assert.Equal(t, "adhd_4", s.Current().ID, "answered adhd_3 is skipped")
}

func TestArrowsAndEnterAnswer(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "")

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	v, ok := ws.Session.Response("adhd_rs", "adhd_1")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestItemAndSectionNavigation(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "adhd_1")

	s.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, "adhd_1", s.Current().ID, "no move before the first item")

	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "adhd_2", s.Current().ID)

	s.Update(keyPress(']'))
	assert.Equal(t, "Hyperactivity-Impulsivity", s.Section().Name)
	first := s.Current().ID

	s.Update(keyPress(']'))
	assert.Equal(t, first, s.Current().ID, "no move past the last section")

	s.Update(keyPress('['))
	assert.Equal(t, "adhd_1", s.Current().ID)
}

func TestClearResponse(t *testing.T) {
	ws := newTestWorkspace(t)
	require.NoError(t, ws.Session.SetResponse("adhd_rs", "adhd_1", 3))
	s := open(t, ws, "adhd_1")

	s.Update(keyPress('x'))
	_, ok := ws.Session.Response("adhd_rs", "adhd_1")
	assert.False(t, ok)
	assert.Equal(t, -1, s.selector.Current)
}

func TestCompletingInstrument(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "")

	var last tea.Cmd
	for i := 0; i < len(s.items); i++ {
		_, last = s.Update(keyPress('1'))
	}
	assert.True(t, s.finished)
	assert.True(t, ws.Progress.Count("adhd_rs").Complete())
	assert.NotNil(t, last, "completion shows a toast")
	assert.Contains(t, s.View(100, 30), "All items answered")
}

func TestReansweringCompleteInstrumentIsQuiet(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "")
	for range s.items {
		s.Update(keyPress('1'))
	}
	require.True(t, s.finished)

	s.jumpTo("adhd_3")
	_, cmd := s.Update(keyPress('2'))
	assert.Nil(t, cmd, "no second completion toast")
	v, _ := ws.Session.Response("adhd_rs", "adhd_3")
	assert.Equal(t, 1, v)
}

func TestAnswerWithEarlierGapMovesOn(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "")
	last := s.items[len(s.items)-1].ID

	// Answer everything except the first item, ending on the last one.
	for _, it := range s.items[1 : len(s.items)-1] {
		require.NoError(t, ws.Session.SetResponse("adhd_rs", it.ID, 0))
	}
	s.jumpTo(last)
	s.Update(keyPress('1'))

	assert.False(t, s.finished)
	assert.Equal(t, last, s.Current().ID, "stays on the last item")
}

func TestItemNoteEditor(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "adhd_1")

	_, cmd := s.Update(keyPress('n'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	editor, ok := push.Screen.(*note.Screen)
	require.True(t, ok)

	editor.Init()
	for _, r := range "at work" {
		editor.Update(keyPress(r))
	}
	editor.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	text, ok := ws.Session.ItemNote("adhd_1")
	require.True(t, ok)
	assert.Equal(t, "at work", text)
	assert.Contains(t, s.View(100, 30), "✎ note")
}

func TestSectionNoteEditor(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "adhd_1")

	_, cmd := s.Update(keyPress('s'))
	require.NotNil(t, cmd)
	editor := cmd().(router.PushScreenMsg).Screen.(*note.Screen)
	editor.Init()
	editor.Update(keyPress('!'))
	editor.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	text, _ := ws.Session.SectionNote("adhd_rs_Inattention")
	assert.Equal(t, "!", text)
}

func TestInfoKey(t *testing.T) {
	s := open(t, newTestWorkspace(t), "")
	_, cmd := s.Update(keyPress('i'))
	require.NotNil(t, cmd)
	push := cmd().(router.PushScreenMsg)
	_, ok := push.Screen.(*info.Screen)
	assert.True(t, ok)
}

func TestOverviewJump(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "adhd_2")

	_, cmd := s.Update(keyPress('o'))
	require.NotNil(t, cmd)
	list, ok := cmd().(router.PushScreenMsg).Screen.(*overview.Screen)
	require.True(t, ok)

	sel, ok := list.Selected()
	require.True(t, ok)
	assert.Equal(t, "adhd_2", sel.ID, "overview opens on the current item")

	list.Update(specialKey(tea.KeyTab))
	target, _ := list.Selected()
	_, cmd = list.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, popped := cmd().(router.PopScreenMsg)
	assert.True(t, popped)
	assert.Equal(t, target.ID, s.Current().ID)
	assert.Equal(t, "Hyperactivity-Impulsivity", s.Section().Name)
}

func TestRevealedPicksUpOutsideAnswer(t *testing.T) {
	ws := newTestWorkspace(t)
	s := open(t, ws, "adhd_1")
	assert.Equal(t, -1, s.selector.Current)

	require.NoError(t, ws.Session.SetResponse("adhd_rs", "adhd_1", 2))
	assert.Nil(t, s.Revealed())
	assert.Equal(t, 2, s.selector.Current)
}
