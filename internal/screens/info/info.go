// Package info shows the background sheet of one instrument.
package info

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/sections"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
)

// Screen renders an instrument's information sheet. Long sheets scroll.
type Screen struct {
	instrument catalog.Instrument
	sections   []sections.Section
	offset     int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the info screen for in.
func New(in catalog.Instrument, secs []sections.Section) *Screen {
	return &Screen{instrument: in, sections: secs}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return s.instrument.Title }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(0, s.offset-10)
	case "pgdown":
		s.offset += 10
	case "home", "g":
		s.offset = 0
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	lines := strings.Split(s.render(width), "\n")

	// Clamp so the last page stays full.
	maxOffset := max(0, len(lines)-height)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(len(lines), s.offset+height)
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *Screen) render(width int) string {
	in := s.instrument
	contentWidth := min(width-8, 76)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + in.Title))
	b.WriteString("\n")
	if in.Info != nil && in.Info.FullName != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  " + in.Info.FullName))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	para := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		PaddingLeft(2)
	if in.Description != "" {
		b.WriteString(para.Render(in.Description))
		b.WriteString("\n\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	b.WriteString(dimStyle.Render("  Items:     ") + valStyle.Render(fmt.Sprintf("%d", len(in.Items))) + "\n")
	labels := make([]string, len(in.Scale))
	for i, lv := range in.Scale {
		labels[i] = lv.Label
	}
	b.WriteString(dimStyle.Render("  Scale:     ") + valStyle.Render(strings.Join(labels, " / ")) + "\n")
	if len(s.sections) > 1 {
		b.WriteString(dimStyle.Render("  Sections:") + "\n")
		for _, sec := range s.sections {
			b.WriteString(valStyle.Render(fmt.Sprintf("    %s (%d)", sec.Name, len(sec.Items))) + "\n")
		}
	}
	b.WriteString("\n")

	if in.Info == nil {
		return b.String()
	}

	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	for _, sec := range []struct{ title, body string }{
		{"Designed for", in.Info.DesignedFor},
		{"Versions", in.Info.Versions},
		{"Taking the test", in.Info.TakingTest},
		{"Scoring", in.Info.Scoring},
		{"Validity", in.Info.Validity},
		{"Discussion", in.Info.Discussion},
	} {
		if sec.body == "" {
			continue
		}
		b.WriteString(heading.Render("  " + sec.title))
		b.WriteString("\n")
		b.WriteString(para.Render(sec.body))
		b.WriteString("\n\n")
	}

	return b.String()
}
