package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/config"
	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/screens/home"
	"github.com/abhisek/ndscreen/internal/screens/onboarding"
	"github.com/abhisek/ndscreen/internal/screens/welcome"
	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
	"github.com/abhisek/ndscreen/internal/workspace"
)

// savedMsg is sent by the autosaver after a successful write.
type savedMsg struct {
	rev int64
}

// saveFailedMsg is sent by the autosaver when a write fails.
type saveFailedMsg struct {
	err error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ws     *workspace.Workspace
	toast  components.Toast
	width  int
	height int
}

// newAppModel starts on the welcome screen, which hands over to home when
// a profile exists and to onboarding otherwise.
func newAppModel(ws *workspace.Workspace) AppModel {
	return AppModel{
		router: router.New(welcome.New(entryScreen(ws), greeting(ws))),
		ws:     ws,
	}
}

func greeting(ws *workspace.Workspace) string {
	p := ws.Session.Profile()
	if p == nil {
		return ""
	}
	return fmt.Sprintf("Welcome back, %s. %d of %d complete.",
		p.Name, ws.Progress.CompletedCount(), ws.Catalog.Len())
}

func entryScreen(ws *workspace.Workspace) func() screen.Screen {
	return func() screen.Screen {
		if ws.Session.HasProfile() {
			return home.New(ws)
		}
		return onboarding.New(ws.Session, func() screen.Screen { return home.New(ws) })
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case savedMsg:
		return m, components.ShowToast("Saved", false)

	case saveFailedMsg:
		return m, components.ShowToast("Save failed: "+msg.err.Error(), true)
	}

	if toast, cmd, ok := m.toast.Update(msg); ok {
		m.toast = toast
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) status() string {
	if !m.ws.Session.HasProfile() {
		return ""
	}
	return fmt.Sprintf("%d of %d complete", m.ws.Progress.CompletedCount(), m.ws.Catalog.Len())
}

// footerHints uses the active screen's own hints when it provides them.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) renderToast() string {
	if !m.toast.Visible() {
		return ""
	}
	style := theme.Toast
	if m.toast.Error {
		style = theme.ToastError
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, style.Render(m.toast.Text))
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the breadcrumb header, the active screen and the footer,
// with any toast just above the footer.
func (m AppModel) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.router.Breadcrumb(), m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(m.router.Active()), m.width)
	if t := m.renderToast(); t != "" {
		footer = t + "\n" + footer
	}

	room := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	return layout.RenderFrame(header, m.router.View(m.width, room), footer, m.width, m.height)
}

// Run starts the Bubble Tea program over ws. Changes are autosaved while
// the program runs and flushed before Run returns.
func Run(ws *workspace.Workspace, cfg config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	saver := session.NewAutosaver(ws.Store.Entries(), cfg.AutosaveDelay, logger)
	p := tea.NewProgram(newAppModel(ws))
	saver.OnSaved = func(rev int64) { p.Send(savedMsg{rev: rev}) }
	saver.OnError = func(err error) { p.Send(saveFailedMsg{err: err}) }
	saver.Watch(ws.Session)

	_, err := p.Run()
	if err != nil {
		logger.Error("program exited", "error", err)
	}

	if cerr := saver.Close(context.Background()); cerr != nil {
		logger.Error("final save", "error", cerr)
		if err == nil {
			err = fmt.Errorf("final save: %w", cerr)
		}
	}
	return err
}
