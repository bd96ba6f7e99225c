package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
	"github.com/abhisek/ndscreen/internal/workspace"
)

// ExportScreen writes the session to a file. The path is prefilled with
// the suggested file name in the working directory.
type ExportScreen struct {
	ws     *workspace.Workspace
	input  components.TextInput
	data   []byte
	errMsg string
}

var _ screen.Screen = (*ExportScreen)(nil)
var _ screen.KeyHintProvider = (*ExportScreen)(nil)

// NewExport encodes the session as of now and creates the export screen.
func NewExport(ws *workspace.Workspace, now time.Time) *ExportScreen {
	s := &ExportScreen{
		ws:    ws,
		input: components.NewTextInput("path/to/file.json", 4096),
	}
	data, name, err := ws.Export(now)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.data = data
	if wd, err := os.Getwd(); err == nil {
		name = filepath.Join(wd, name)
	}
	s.input.SetValue(name)
	return s
}

func (s *ExportScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ExportScreen) Title() string {
	return "Export"
}

func (s *ExportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Write file"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *ExportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, s.write()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ExportScreen) write() tea.Cmd {
	if s.data == nil {
		return nil
	}
	path, err := expandPath(strings.TrimSpace(s.input.Value()))
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := os.WriteFile(path, s.data, 0o600); err != nil {
		s.errMsg = fmt.Sprintf("write %s: %v", path, err)
		return nil
	}
	return tea.Batch(
		func() tea.Msg { return router.PopScreenMsg{} },
		components.ShowToast("Exported to "+filepath.Base(path), false),
	)
}

func (s *ExportScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Export your responses"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("The file holds your profile, answers and notes."))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(cw - 4).Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw, false))
}
