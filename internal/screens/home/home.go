package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/screens/backups"
	"github.com/abhisek/ndscreen/internal/screens/confirm"
	"github.com/abhisek/ndscreen/internal/screens/info"
	"github.com/abhisek/ndscreen/internal/screens/onboarding"
	"github.com/abhisek/ndscreen/internal/screens/questionnaire"
	"github.com/abhisek/ndscreen/internal/screens/transfer"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/workspace"
)

// HomeScreen lists the instruments with their progress, followed by the
// session actions.
type HomeScreen struct {
	ws          *workspace.Workspace
	menu        components.Menu
	instruments []string
	now         func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(ws *workspace.Workspace) *HomeScreen {
	h := &HomeScreen{
		ws:          ws,
		instruments: ws.Catalog.IDs(),
		now:         time.Now,
	}

	var items []components.MenuItem
	for _, in := range ws.Catalog.All() {
		id := in.ID
		items = append(items, components.MenuItem{
			Label:  in.Title,
			Action: func() tea.Cmd { return h.openInstrument(id) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "Edit profile", Action: h.push(func() screen.Screen {
			return onboarding.NewEdit(ws.Session)
		})},
		components.MenuItem{Label: "Export responses", Action: h.push(func() screen.Screen {
			return transfer.NewExport(ws, h.now())
		})},
		components.MenuItem{Label: "Import responses", Action: h.push(func() screen.Screen {
			return transfer.NewImport(ws)
		})},
		components.MenuItem{Label: "Backups", Action: h.push(func() screen.Screen {
			return backups.New(ws)
		})},
		components.MenuItem{Label: "Reset everything", Action: h.push(h.resetDialog)},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) openInstrument(id string) tea.Cmd {
	q, err := questionnaire.New(h.ws, id, "")
	if err != nil {
		return components.ShowToast(err.Error(), true)
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: q} }
}

func (h *HomeScreen) resetDialog() screen.Screen {
	return confirm.New("Reset",
		"Erase your profile, answers, notes and backups?",
		"This cannot be undone. Export first if you want to keep a copy.",
		func() tea.Cmd {
			if err := h.ws.Reset(context.Background()); err != nil {
				return tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					components.ShowToast("Reset failed: "+err.Error(), true),
				)
			}
			ws := h.ws
			form := onboarding.New(ws.Session, func() screen.Screen { return New(ws) })
			return tea.Sequence(
				func() tea.Msg { return router.PopToRootMsg{} },
				func() tea.Msg { return router.ReplaceScreenMsg{Screen: form} },
			)
		})
}

// selectedInstrument returns the instrument under the cursor, if any.
func (h *HomeScreen) selectedInstrument() (string, bool) {
	if h.menu.Selected < len(h.instruments) {
		return h.instruments[h.menu.Selected], true
	}
	return "", false
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if _, ok := h.selectedInstrument(); ok {
		hints = append(hints, layout.KeyHint{Key: "i", Description: "About"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "i" {
		id, ok := h.selectedInstrument()
		if !ok {
			return h, nil
		}
		in, _ := h.ws.Catalog.Get(id)
		secs, err := h.ws.Sections.Sections(id)
		if err != nil {
			return h, components.ShowToast(err.Error(), true)
		}
		return h, func() tea.Msg { return router.PushScreenMsg{Screen: info.New(in, secs)} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height by adding
	// back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	content := joinSections(
		renderGreeting(h.ws, cw),
		renderOverall(h.ws, cw),
		renderInstruments(h.ws, h.menu.Selected, cw, compact),
		renderActions(h.menu, len(h.instruments), cw),
	)
	return components.Frame(content, width, height)
}
