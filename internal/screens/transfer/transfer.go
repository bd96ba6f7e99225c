// Package transfer implements the import flow: pick a file, preview what
// it replaces, confirm.
package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/store"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
	"github.com/abhisek/ndscreen/internal/workspace"
)

// ImportScreen reads a snapshot file and applies it after confirmation.
type ImportScreen struct {
	ws      *workspace.Workspace
	input   components.TextInput
	raw     []byte
	preview *store.Snapshot
	errMsg  string
}

var _ screen.Screen = (*ImportScreen)(nil)
var _ screen.KeyHintProvider = (*ImportScreen)(nil)

// NewImport creates the import screen.
func NewImport(ws *workspace.Workspace) *ImportScreen {
	return &ImportScreen{
		ws:    ws,
		input: components.NewTextInput("path/to/screening.json", 4096),
	}
}

func (s *ImportScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ImportScreen) Title() string {
	return "Import"
}

func (s *ImportScreen) KeyHints() []layout.KeyHint {
	if s.preview != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "Replace"},
			{Key: "N", Description: "Choose another file"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Preview"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if ok && s.preview != nil {
		switch kmsg.String() {
		case "y", "Y":
			return s, s.apply()
		case "n", "N":
			s.preview, s.raw = nil, nil
			return s, s.input.Focus()
		}
		return s, nil
	}
	if ok && kmsg.String() == "enter" {
		s.load()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// load reads and validates the file named in the input.
func (s *ImportScreen) load() {
	s.errMsg = ""
	path, err := expandPath(strings.TrimSpace(s.input.Value()))
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	snap, err := s.ws.PreviewImport(raw)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.raw, s.preview = raw, snap
	s.input.Blur()
}

func (s *ImportScreen) apply() tea.Cmd {
	b, err := s.ws.Import(context.Background(), s.raw)
	if err != nil {
		s.preview, s.raw = nil, nil
		s.errMsg = err.Error()
		return s.input.Focus()
	}
	text := "Imported"
	if b != nil {
		text = "Imported. Previous state kept as a backup"
	}
	return tea.Sequence(
		func() tea.Msg { return router.PopToRootMsg{} },
		components.ShowToast(text, false),
	)
}

func expandPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("enter a file path")
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p, nil
}

func (s *ImportScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Import a screening file"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw - 4).Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n")
	}

	if s.preview != nil {
		b.WriteString("\n")
		changes := workspace.ImportChanges(s.preview)
		if len(changes) == 0 {
			b.WriteString(theme.Hint.Render("The file contains nothing to import."))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("This replaces:"))
			b.WriteString("\n")
			for _, c := range changes {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  • " + c))
				b.WriteString("\n")
			}
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("Anything the file omits is kept. A backup is taken first."))
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Replace   "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Choose another file"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw, false))
}
