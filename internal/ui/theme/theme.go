// Package theme holds the palette and the shared lipgloss styles. Colors
// are kept muted and high-contrast for long answering sessions.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#7C83FD")
	Secondary = lipgloss.Color("#2DD4BF")
	Accent    = lipgloss.Color("#FBBF24")
	Highlight = lipgloss.Color("#FDE68A")
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#FB7185")

	Text    = lipgloss.Color("#E2E8F0")
	TextDim = lipgloss.Color("#8B9BB4")

	BgDark = lipgloss.Color("#111827")
	BgCard = lipgloss.Color("#1F2937")
	Border = lipgloss.Color("#374151")
)

// Text styles.
var (
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
)

// Answer and form states.
var (
	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Answered = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Invalid  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Buttons share padding; only the inactive one has a border.
var (
	button         = lipgloss.NewStyle().Padding(0, 2)
	ButtonActive   = button.Background(Primary).Foreground(Text).Bold(true)
	ButtonInactive = button.Foreground(TextDim).Border(lipgloss.RoundedBorder()).BorderForeground(Border)
)

// Toasts.
var (
	toast      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	Toast      = toast.Foreground(BgDark).Background(Secondary)
	ToastError = toast.Foreground(Text).Background(Error)
)
