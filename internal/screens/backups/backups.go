// Package backups lists the automatic pre-import backups and restores them.
package backups

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/router"
	"github.com/abhisek/ndscreen/internal/screen"
	"github.com/abhisek/ndscreen/internal/screens/confirm"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/layout"
	"github.com/abhisek/ndscreen/internal/ui/theme"
	"github.com/abhisek/ndscreen/internal/workspace"
)

const listLimit = 50

type backupsLoadedMsg struct {
	Backups []workspace.BackupSummary
	Err     error
}

// Screen lists backups newest first.
type Screen struct {
	ws       *workspace.Workspace
	backups  []workspace.BackupSummary
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the backups screen.
func New(ws *workspace.Workspace) *Screen {
	return &Screen{ws: ws}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		list, err := s.ws.Backups(context.Background(), listLimit)
		return backupsLoadedMsg{Backups: list, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Backups"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Restore"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case backupsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.backups = msg.Backups
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.backups)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.backups) && s.backups[s.selected].Err == nil {
				return s, s.confirmRestore(s.backups[s.selected])
			}
		}
	}
	return s, nil
}

func (s *Screen) confirmRestore(b workspace.BackupSummary) tea.Cmd {
	detail := fmt.Sprintf("Your current answers and notes are replaced with the backup from %s. "+
		"The current state is backed up first.", b.CreatedAt.Local().Format("Jan 02, 2006 15:04"))
	dialog := confirm.New("Restore Backup", "Restore this backup?", detail, func() tea.Cmd {
		if _, err := s.ws.RestoreBackup(context.Background(), b.ID); err != nil {
			return tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				components.ShowToast("Restore failed: "+err.Error(), true),
			)
		}
		return tea.Sequence(
			func() tea.Msg { return router.PopToRootMsg{} },
			components.ShowToast("Backup restored", false),
		)
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: dialog} }
}

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading backups...")
	}
	if len(s.backups) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No backups yet. One is kept automatically before every import.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, bk := range s.backups {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		var line string
		if bk.Err != nil {
			line = fmt.Sprintf("%s%s  %-8s  unreadable",
				prefix, bk.CreatedAt.Local().Format("Jan 02, 2006 15:04"), bk.Reason)
		} else {
			name := bk.ProfileName
			if name == "" {
				name = "no profile"
			}
			line = fmt.Sprintf("%s%s  %-8s  %-20s %3d answers  %2d notes",
				prefix, bk.CreatedAt.Local().Format("Jan 02, 2006 15:04"), bk.Reason,
				name, bk.Answered, bk.Notes)
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case bk.Err != nil:
			style = style.Foreground(theme.TextDim)
		case i == s.selected:
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
