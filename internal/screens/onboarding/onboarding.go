// Package onboarding implements the profile form, used both for first-run
// onboarding and for editing an existing profile.
package onboarding

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/store"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
)

// Form fields in focus order.
const (
	fieldName = iota
	fieldDOB
	fieldGender
	fieldSubmit
	fieldCount
)

// Mode selects between first-run onboarding and profile editing.
type Mode int

const (
	ModeOnboard Mode = iota
	ModeEdit
)

// Screen is the profile form.
type Screen struct {
	sess    *session.Session
	mode    Mode
	next    func() screen.Screen
	now     func() time.Time
	name    components.TextInput
	dob     components.TextInput
	genders []string
	gender  int
	focus   int
	submit  components.Button
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the onboarding form. After a valid submit the form replaces
// itself with next().
func New(sess *session.Session, next func() screen.Screen) *Screen {
	return newScreen(sess, ModeOnboard, next)
}

// NewEdit creates the form prefilled with the current profile. A valid
// submit pops the form.
func NewEdit(sess *session.Session) *Screen {
	return newScreen(sess, ModeEdit, nil)
}

func newScreen(sess *session.Session, mode Mode, next func() screen.Screen) *Screen {
	s := &Screen{
		sess:    sess,
		mode:    mode,
		next:    next,
		now:     time.Now,
		name:    components.NewTextInput("Your name", 80),
		dob:     components.NewTextInput("YYYY-MM-DD", len(store.DateLayout)),
		genders: slices.Clone(session.Genders),
		gender:  -1,
	}
	s.dob.Filter = components.DateFilter
	s.dob.Blur()

	label := "Continue"
	if mode == ModeEdit {
		label = "Save profile"
		if p := sess.Profile(); p != nil {
			s.name.SetValue(p.Name)
			s.dob.SetValue(p.DateOfBirth)
			s.gender = slices.Index(s.genders, p.Gender)
			if s.gender < 0 && p.Gender != "" {
				s.genders = append(s.genders, p.Gender)
				s.gender = len(s.genders) - 1
			}
		}
	}
	s.submit = components.NewButton(label)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *Screen) Title() string {
	if s.mode == ModeEdit {
		return "Edit Profile"
	}
	return "Welcome"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Gender"},
		{Key: "Enter", Description: "Continue"},
	}
	if s.mode == ModeEdit {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Cancel"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.forward(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if s.focus == fieldSubmit {
			return s, s.save()
		}
		return s, s.setFocus(s.focus + 1)
	case "left":
		if s.focus == fieldGender {
			s.cycleGender(-1)
			return s, nil
		}
	case "right", "space":
		if s.focus == fieldGender {
			s.cycleGender(1)
			return s, nil
		}
	}
	return s, s.forward(msg)
}

func (s *Screen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldDOB:
		s.dob, cmd = s.dob.Update(msg)
	}
	return cmd
}

func (s *Screen) cycleGender(step int) {
	n := len(s.genders)
	if s.gender < 0 {
		if step > 0 {
			s.gender = 0
		} else {
			s.gender = n - 1
		}
		return
	}
	s.gender = (s.gender + step + n) % n
}

func (s *Screen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.name.Blur()
	s.dob.Blur()
	s.submit.Active = f == fieldSubmit
	switch f {
	case fieldName:
		return s.name.Focus()
	case fieldDOB:
		return s.dob.Focus()
	}
	return nil
}

// profile assembles the form values.
func (s *Screen) profile() store.Profile {
	p := store.Profile{
		Name:        strings.TrimSpace(s.name.Value()),
		DateOfBirth: strings.TrimSpace(s.dob.Value()),
	}
	if s.gender >= 0 {
		p.Gender = s.genders[s.gender]
	}
	return p
}

// missing names the fields still empty.
func (s *Screen) missing() []string {
	p := s.profile()
	var out []string
	if p.Name == "" {
		out = append(out, "name")
	}
	if p.DateOfBirth == "" {
		out = append(out, "date of birth")
	}
	if p.Gender == "" {
		out = append(out, "gender")
	}
	return out
}

func (s *Screen) save() tea.Cmd {
	p := s.profile()
	s.name.SetError("")
	s.dob.SetError("")
	s.errMsg = ""

	if err := session.ValidateProfile(p, s.now()); err != nil {
		return s.showError(err)
	}

	var err error
	if s.mode == ModeEdit {
		err = s.sess.UpdateProfile(p)
	} else {
		err = s.sess.CompleteOnboarding(p)
	}
	if err != nil {
		return s.showError(err)
	}

	if s.mode == ModeEdit {
		return tea.Batch(
			func() tea.Msg { return router.PopScreenMsg{} },
			components.ShowToast("Profile updated", false),
		)
	}
	next := s.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *Screen) showError(err error) tea.Cmd {
	var ve *session.ValidationError
	if !errors.As(err, &ve) {
		s.errMsg = err.Error()
		return nil
	}
	switch ve.Field {
	case "name":
		s.name.SetError(ve.Reason)
		return s.setFocus(fieldName)
	case "dob":
		s.dob.SetError(ve.Reason)
		return s.setFocus(fieldDOB)
	default:
		s.errMsg = fmt.Sprintf("%s %s", ve.Field, ve.Reason)
		return s.setFocus(fieldGender)
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	if s.mode == ModeOnboard {
		b.WriteString(theme.Title.Width(cw).Render("Before you begin"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(cw).Render("Your profile is stored only on this computer and\nincluded in exported files."))
		b.WriteString("\n\n")
	}

	b.WriteString(s.fieldLabel("Name", fieldName))
	b.WriteString(s.name.View() + "\n\n")
	b.WriteString(s.fieldLabel("Date of birth", fieldDOB))
	b.WriteString(s.dob.View() + "\n\n")
	b.WriteString(s.fieldLabel("Gender", fieldGender))
	b.WriteString(s.genderView() + "\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.Invalid.Render(s.errMsg) + "\n\n")
	}
	s.submit.Blocked = ""
	if missing := s.missing(); len(missing) > 0 {
		s.submit.Blocked = "needs " + strings.Join(missing, ", ")
	}
	b.WriteString(lipgloss.PlaceHorizontal(cw-4, lipgloss.Center, s.submit.View()))

	card := components.Card(b.String(), cw, false)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) fieldLabel(label string, field int) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.focus == field {
		style = theme.Selected
	}
	return style.Render(label) + "\n"
}

func (s *Screen) genderView() string {
	parts := make([]string, len(s.genders))
	for i, g := range s.genders {
		switch {
		case i == s.gender:
			parts[i] = theme.Answered.Render("● " + g)
		default:
			parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Render("○ " + g)
		}
	}
	return strings.Join(parts, "  ")
}
