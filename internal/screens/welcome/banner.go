package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/ui/theme"
)

const bannerArt = `
 ████████╗ █████╗  ██████╗██╗████████╗
 ╚══██╔══╝██╔══██╗██╔════╝██║╚══██╔══╝
    ██║   ███████║██║     ██║   ██║
    ██║   ██╔══██║██║     ██║   ██║
    ██║   ██║  ██║╚██████╗██║   ██║
    ╚═╝   ╚═╝  ╚═╝ ╚═════╝╚═╝   ╚═╝`

const bannerCompact = "T A C I T"

// RenderBanner returns the TACIT banner in the primary color, or a compact
// fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
