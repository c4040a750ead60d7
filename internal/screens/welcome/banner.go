package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/repaso/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗██████╗  █████╗ ███████╗ ██████╗
 ██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔════╝██╔═══██╗
 ██████╔╝█████╗  ██████╔╝███████║███████╗██║   ██║
 ██╔══██╗██╔══╝  ██╔═══╝ ██╔══██║╚════██║██║   ██║
 ██║  ██║███████╗██║     ██║  ██║███████║╚██████╔╝
 ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝  ╚═╝╚══════╝ ╚═════╝`

const bannerCompact = "R E P A S O"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 54

// RenderBanner returns the banner in the primary color, or a compact
// one-line version on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
