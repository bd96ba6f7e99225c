package info

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/sections"
)

func testInstrument(t *testing.T) (catalog.Instrument, []sections.Section) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	in, ok := cat.Get("adhd_rs")
	if !ok {
		t.Fatal("adhd_rs missing from catalog")
	}
	return in, sections.Group(in)
}

func TestInfoView(t *testing.T) {
	in, secs := testInstrument(t)
	s := New(in, secs)

	if s.Title() != in.Title {
		t.Errorf("Title = %q, want %q", s.Title(), in.Title)
	}
	view := s.View(100, 200)
	for _, want := range []string{in.Info.FullName, "Inattention (9)", "Scoring"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInfoScrollClamps(t *testing.T) {
	in, secs := testInstrument(t)
	s := New(in, secs)

	for i := 0; i < 500; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.View(100, 10)
	lines := strings.Split(s.render(100), "\n")
	if s.offset != len(lines)-10 {
		t.Errorf("offset = %d, want %d", s.offset, len(lines)-10)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if s.offset != 0 {
		t.Errorf("offset after home = %d", s.offset)
	}
}
