// Package questionnaire is the item-by-item answering screen for one
// instrument.
package questionnaire

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/screens/info"
	"github.com/abhisek/ndscreen/internal/screens/note"
	"github.com/abhisek/ndscreen/internal/screens/overview"
	"github.com/abhisek/ndscreen/internal/sections"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/workspace"
)

// Screen walks the items of one instrument in section order.
type Screen struct {
	ws         *workspace.Workspace
	instrument catalog.Instrument
	sections   []sections.Section
	items      []catalog.Item
	pos        int
	selector   components.ScaleSelector
	// finished is set once an answer leaves no unanswered item.
	finished bool
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Revealer = (*Screen)(nil)

// New opens instrumentID at startItemID, or at the first unanswered item
// when startItemID is empty.
func New(ws *workspace.Workspace, instrumentID, startItemID string) (*Screen, error) {
	in, ok := ws.Catalog.Get(instrumentID)
	if !ok {
		return nil, fmt.Errorf("unknown instrument %q", instrumentID)
	}
	secs, err := ws.Sections.Sections(instrumentID)
	if err != nil {
		return nil, err
	}
	items, err := ws.Sections.Ordered(instrumentID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("instrument %q has no items", instrumentID)
	}

	s := &Screen{
		ws:         ws,
		instrument: in,
		sections:   secs,
		items:      items,
	}

	if startItemID == "" {
		if next, ok := ws.Sections.NextUnanswered(instrumentID, "", ws.Session.Answered(instrumentID)); ok {
			startItemID = next.ID
		}
	}
	s.jumpTo(startItemID)
	return s, nil
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return s.instrument.Title }

// Revealed re-reads the current answer, which an overview jump may have
// changed while this screen was covered.
func (s *Screen) Revealed() tea.Cmd {
	s.resetSelector()
	return nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: fmt.Sprintf("1-%d", s.instrument.ScaleSize()), Description: "Answer"},
		{Key: "←→", Description: "Item"},
		{Key: "[ ]", Description: "Section"},
		{Key: "x", Description: "Clear"},
		{Key: "n/s", Description: "Note"},
		{Key: "o", Description: "Overview"},
		{Key: "i", Description: "Info"},
		{Key: "Esc", Description: "Back"},
	}
}

// Current returns the item on screen.
func (s *Screen) Current() catalog.Item {
	return s.items[s.pos]
}

// Section returns the section of the item on screen.
func (s *Screen) Section() sections.Section {
	id := s.Current().ID
	for _, sec := range s.sections {
		for _, it := range sec.Items {
			if it.ID == id {
				return sec
			}
		}
	}
	return sections.Section{}
}

func (s *Screen) jumpTo(itemID string) {
	s.pos = 0
	for i, it := range s.items {
		if it.ID == itemID {
			s.pos = i
			break
		}
	}
	s.resetSelector()
}

func (s *Screen) move(delta int) {
	p := s.pos + delta
	if p < 0 || p >= len(s.items) {
		return
	}
	s.pos = p
	s.resetSelector()
}

// moveSection jumps to the first item of the adjacent section.
func (s *Screen) moveSection(delta int) {
	cur := s.Section().Key
	for i, sec := range s.sections {
		if sec.Key != cur {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(s.sections) || len(s.sections[j].Items) == 0 {
			return
		}
		s.jumpTo(s.sections[j].Items[0].ID)
		return
	}
}

func (s *Screen) resetSelector() {
	labels := make([]string, len(s.instrument.Scale))
	for i, lv := range s.instrument.Scale {
		labels[i] = lv.Label
	}
	current := -1
	if v, ok := s.ws.Session.Response(s.instrument.ID, s.Current().ID); ok {
		current = v
	}
	s.selector = components.NewScaleSelector(labels, current)
	s.errMsg = ""
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.move(-1)
		return s, nil
	case "right", "l":
		s.move(1)
		return s, nil
	case "[":
		s.moveSection(-1)
		return s, nil
	case "]":
		s.moveSection(1)
		return s, nil
	case "x", "backspace", "delete":
		s.ws.Session.ClearResponse(s.instrument.ID, s.Current().ID)
		s.finished = false
		s.resetSelector()
		return s, nil
	case "n":
		return s, s.editItemNote()
	case "s":
		return s, s.editSectionNote()
	case "o":
		list := overview.New(s.ws, s.instrument, s.sections, s.Current().ID, func(itemID string) tea.Cmd {
			s.jumpTo(itemID)
			return func() tea.Msg { return router.PopScreenMsg{} }
		})
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: list} }
	case "i":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: info.New(s.instrument, s.sections)}
		}
	}

	s.selector, _ = s.selector.Update(msg)
	if s.selector.Submitted {
		return s, s.answer(s.selector.Chosen)
	}
	return s, nil
}

// answer stores idx for the current item and advances to the next
// unanswered item, or to the next item when none follows.
func (s *Screen) answer(idx int) tea.Cmd {
	item := s.Current()
	wasComplete := s.ws.Progress.Count(s.instrument.ID).Complete()
	if err := s.ws.Session.SetResponse(s.instrument.ID, item.ID, idx); err != nil {
		s.resetSelector()
		s.errMsg = err.Error()
		return nil
	}

	answered := s.ws.Session.Answered(s.instrument.ID)
	if next, ok := s.ws.Sections.NextUnanswered(s.instrument.ID, item.ID, answered); ok {
		s.jumpTo(next.ID)
		return nil
	}

	if s.ws.Progress.Count(s.instrument.ID).Complete() {
		s.finished = true
		s.resetSelector()
		if wasComplete {
			return nil
		}
		return components.ShowToast(s.instrument.Title+" complete", false)
	}

	// Unanswered items remain earlier in the instrument.
	if s.pos < len(s.items)-1 {
		s.move(1)
	} else {
		s.resetSelector()
	}
	return nil
}

func (s *Screen) editItemNote() tea.Cmd {
	item := s.Current()
	current, _ := s.ws.Session.ItemNote(item.ID)
	editor := note.New("Item note", item.Text, current, func(text string) {
		s.ws.Session.SetItemNote(item.ID, text)
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: editor} }
}

func (s *Screen) editSectionNote() tea.Cmd {
	sec := s.Section()
	key := sec.Key.String()
	current, _ := s.ws.Session.SectionNote(key)
	editor := note.New("Section note", s.instrument.Title+" · "+sec.Name, current, func(text string) {
		s.ws.Session.SetSectionNote(key, text)
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: editor} }
}
