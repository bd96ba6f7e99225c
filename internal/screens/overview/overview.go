// Package overview lists an instrument's items under their section
// headers, with each item's answer and note marker.
package overview

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
	"github.com/abhisek/ndscreen/internal/workspace"
)

type rowKind int

const (
	rowSectionHeader rowKind = iota
	rowItem
)

type row struct {
	kind    rowKind
	section int
	item    catalog.Item
}

// Screen is the scrollable item list of one instrument.
type Screen struct {
	ws           *workspace.Workspace
	instrument   catalog.Instrument
	sections     []sections.Section
	rows         []row
	cursor       int
	scrollOffset int
	open         func(itemID string) tea.Cmd
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the overview. Enter on an item calls open with its ID. The
// cursor starts on currentItemID when it is present.
func New(ws *workspace.Workspace, in catalog.Instrument, secs []sections.Section, currentItemID string, open func(itemID string) tea.Cmd) *Screen {
	s := &Screen{
		ws:         ws,
		instrument: in,
		sections:   secs,
		open:       open,
	}
	for i, sec := range secs {
		s.rows = append(s.rows, row{kind: rowSectionHeader, section: i})
		for _, it := range sec.Items {
			s.rows = append(s.rows, row{kind: rowItem, section: i, item: it})
		}
	}

	s.cursor = -1
	for i, r := range s.rows {
		if r.kind != rowItem {
			continue
		}
		if s.cursor < 0 || r.item.ID == currentItemID {
			s.cursor = i
		}
		if r.item.ID == currentItemID {
			break
		}
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.instrument.Title + " · Overview"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Section"},
		{Key: "Enter", Description: "Go to item"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the item under the cursor.
func (s *Screen) Selected() (catalog.Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowItem {
		return catalog.Item{}, false
	}
	return s.rows[s.cursor].item, true
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "tab":
		s.jumpSection(1)
	case "shift+tab":
		s.jumpSection(-1)
	case "enter":
		if it, ok := s.Selected(); ok && s.open != nil {
			return s, s.open(it.ID)
		}
	}
	return s, nil
}

// moveCursor moves the cursor by delta, skipping section headers.
func (s *Screen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowItem {
			s.cursor = next
			return
		}
		next += delta
	}
}

// jumpSection moves to the first item of the adjacent section.
func (s *Screen) jumpSection(delta int) {
	target := s.rows[s.cursor].section + delta
	if target < 0 || target >= len(s.sections) {
		return
	}
	for i, r := range s.rows {
		if r.kind == rowItem && r.section == target {
			s.cursor = i
			return
		}
	}
}

// adjustScroll keeps the cursor, and its section header when possible,
// inside the viewport.
func (s *Screen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowSectionHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *Screen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}
	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowSectionHeader:
			lines = append(lines, s.renderSectionHeader(s.sections[r.section], width))
		case rowItem:
			lines = append(lines, s.renderItemRow(r.item, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) renderSectionHeader(sec sections.Section, width int) string {
	n := s.ws.Progress.Section(sec)
	text := fmt.Sprintf("%s  %d/%d", strings.ToUpper(sec.Name), n.Answered, n.Total)
	if s.ws.Session.HasSectionNote(sec.Key.String()) {
		text += "  ✎"
	}
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		PaddingLeft(2).
		Render(text)
}

func (s *Screen) renderItemRow(it catalog.Item, selected bool, width int) string {
	answer := "—"
	answered := false
	if v, ok := s.ws.Session.Response(s.instrument.ID, it.ID); ok {
		answer = s.instrument.Label(v)
		answered = true
	}
	noteMark := " "
	if s.ws.Session.HasItemNote(it.ID) {
		noteMark = "✎"
	}

	// Column widths
	padding := 4
	noteWidth := 2
	answerWidth := 22
	spacing := 2
	textWidth := width - padding - noteWidth - answerWidth - spacing
	if textWidth < 10 {
		textWidth = 10
	}

	text := it.Text
	if r := []rune(text); len(r) > textWidth {
		text = string(r[:textWidth-1]) + "…"
	}

	var textStyle, answerStyle lipgloss.Style
	switch {
	case selected:
		textStyle = theme.Selected
		answerStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case answered:
		textStyle = lipgloss.NewStyle().Foreground(theme.Text)
		answerStyle = lipgloss.NewStyle().Foreground(theme.Success)
	default:
		textStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		answerStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	prefix := "    "
	if selected {
		prefix = "  ▸ "
	}
	return prefix +
		lipgloss.NewStyle().Foreground(theme.Accent).Width(noteWidth).Render(noteMark) +
		textStyle.Width(textWidth).Render(text) +
		strings.Repeat(" ", spacing) +
		answerStyle.Render(answer)
}
