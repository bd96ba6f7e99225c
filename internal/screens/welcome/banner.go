package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ndscreen/internal/ui/theme"
)

const bannerArt = `
 ███╗   ██╗██████╗ ███████╗ ██████╗██████╗ ███████╗███████╗███╗   ██╗
 ████╗  ██║██╔══██╗██╔════╝██╔════╝██╔══██╗██╔════╝██╔════╝████╗  ██║
 ██╔██╗ ██║██║  ██║███████╗██║     ██████╔╝█████╗  █████╗  ██╔██╗ ██║
 ██║╚██╗██║██║  ██║╚════██║██║     ██╔══██╗██╔══╝  ██╔══╝  ██║╚██╗██║
 ██║ ╚████║██████╔╝███████║╚██████╗██║  ██║███████╗███████╗██║ ╚████║
 ╚═╝  ╚═══╝╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝  ╚═══╝`

const bannerCompact = "N D S C R E E N"

// bannerMinWidth is the narrowest terminal the full banner fits in.
const bannerMinWidth = 72

// RenderBanner returns the banner styled in the primary color, with a
// compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
