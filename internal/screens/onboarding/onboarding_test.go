package onboarding

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/store"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return session.New(cat)
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func fillForm(s *Screen, name, dob string, gender int) {
	typeText(s, name)
	s.Update(specialKey(tea.KeyTab))
	typeText(s, dob)
	s.Update(specialKey(tea.KeyTab))
	for i := 0; i <= gender; i++ {
		s.Update(specialKey(tea.KeyRight))
	}
	s.Update(specialKey(tea.KeyTab))
}

func TestOnboardingCompletes(t *testing.T) {
	sess := newSession(t)
	s := New(sess, func() screen.Screen { return &stubScreen{} })
	s.now = fixedNow

	fillForm(s, "Ada", "1990-03-15", 0)
	require.Equal(t, fieldSubmit, s.focus)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg")
	assert.Equal(t, "Home", msg.Screen.Title())

	require.True(t, sess.HasProfile())
	assert.Equal(t, store.Profile{Name: "Ada", DateOfBirth: "1990-03-15", Gender: session.Genders[0]}, *sess.Profile())
}

func TestOnboardingValidation(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inDOB     string
		gender    int
		wantFocus int
	}{
		{"missing name", "", "1990-03-15", 0, fieldName},
		{"bad date", "Ada", "1990-13-45", 0, fieldDOB},
		{"future date", "Ada", "2030-01-01", 0, fieldDOB},
		{"no gender", "Ada", "1990-03-15", -1, fieldGender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newSession(t)
			s := New(sess, func() screen.Screen { return &stubScreen{} })
			s.now = fixedNow

			fillForm(s, tt.inName, tt.inDOB, tt.gender)
			_, cmd := s.Update(specialKey(tea.KeyEnter))
			if cmd != nil {
				_, replaced := cmd().(router.ReplaceScreenMsg)
				assert.False(t, replaced, "invalid form must not advance")
			}
			assert.False(t, sess.HasProfile())
			assert.Equal(t, tt.wantFocus, s.focus)
		})
	}
}

func TestDateFieldRejectsLetters(t *testing.T) {
	s := New(newSession(t), nil)
	s.Update(specialKey(tea.KeyTab))
	typeText(s, "19a9x0-0b3")
	assert.Equal(t, "1990-03", s.dob.Value())
}

func TestGenderCycleWraps(t *testing.T) {
	s := New(newSession(t), nil)
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, len(session.Genders)-1, s.gender)
	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 0, s.gender)
}

func TestEditPrefillsAndUpdates(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.CompleteOnboarding(store.Profile{
		Name: "Ada", DateOfBirth: "1990-03-15", Gender: "Agender",
	}))

	s := NewEdit(sess)
	s.now = fixedNow
	assert.Equal(t, "Ada", s.name.Value())
	assert.Equal(t, "1990-03-15", s.dob.Value())
	require.GreaterOrEqual(t, s.gender, 0)
	assert.Equal(t, "Agender", s.genders[s.gender], "custom gender kept as an option")

	typeText(s, " King")
	s.setFocus(fieldSubmit)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)

	assert.Equal(t, "Ada King", sess.Profile().Name)
	assert.Equal(t, "Agender", sess.Profile().Gender)
}

func TestSubmitListsMissingFields(t *testing.T) {
	s := New(newSession(t), nil)
	typeText(s, "Ada")
	s.View(100, 40)
	assert.Equal(t, "needs date of birth, gender", s.submit.Blocked)

	fillForm(s, "", "1990-03-15", 1)
	s.View(100, 40)
	assert.Empty(t, s.submit.Blocked)
	assert.Contains(t, s.submit.View(), "Continue")
}
