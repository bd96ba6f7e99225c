package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/progress"
	"github.com/abhisek/ndscreen/internal/ui/components"
	"github.com/abhisek/ndscreen/internal/ui/theme"
	"github.com/abhisek/ndscreen/internal/workspace"
)

func joinSections(parts ...string) string {
	return strings.Join(parts, "\n\n")
}

func renderGreeting(ws *workspace.Workspace, cw int) string {
	name := "there"
	if p := ws.Session.Profile(); p != nil {
		name = p.Name
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Hello, " + name)
}

// renderOverall shows overall completion and the completed-instrument count.
func renderOverall(ws *workspace.Workspace, cw int) string {
	done := ws.Progress.CompletedCount()
	total := ws.Catalog.Len()
	bar := components.ProgressBar("Overall", ws.Progress.Overall(), cw-4)
	count := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d tests complete", done, total))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(bar + "\n" + count)
}

func statusStyle(s progress.Status) lipgloss.Style {
	switch s {
	case progress.Complete:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case progress.InProgress:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}

// renderInstruments renders one card per instrument, or one line each in
// compact mode.
func renderInstruments(ws *workspace.Workspace, selected, cw int, compact bool) string {
	var blocks []string
	for i, in := range ws.Catalog.All() {
		count := ws.Progress.Count(in.ID)
		status := ws.Progress.Status(in.ID)
		badge := statusStyle(status).Render(status.String())

		if compact {
			prefix := "  "
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if i == selected {
				prefix = "▸ "
				style = theme.Selected
			}
			left := style.Render(prefix + in.Title)
			right := fmt.Sprintf("%3d%%  ", count.Percent()) + badge
			gap := max(1, cw-lipgloss.Width(left)-lipgloss.Width(right))
			blocks = append(blocks, left+strings.Repeat(" ", gap)+right)
			continue
		}

		title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(in.Title)
		head := title + strings.Repeat(" ", max(1, cw-4-lipgloss.Width(title)-lipgloss.Width(badge))) + badge
		desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 4).Render(in.Description)
		bar := components.ProgressBar(
			fmt.Sprintf("%d/%d", count.Answered, count.Total), count.Percent(), cw-4)

		body := head + "\n" + desc + "\n" + bar
		blocks = append(blocks, components.Card(body, cw, i == selected))
	}
	return strings.Join(blocks, "\n")
}

// renderActions renders the menu entries after the instruments.
func renderActions(menu components.Menu, offset, cw int) string {
	var lines []string
	for i := offset; i < len(menu.Items); i++ {
		label := menu.Items[i].Label
		if i == menu.Selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
