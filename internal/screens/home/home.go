package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/router"
	"github.com/abhisek/tacit/internal/screen"
	"github.com/abhisek/tacit/internal/screens/annotate"
	"github.com/abhisek/tacit/internal/screens/guide"
	"github.com/abhisek/tacit/internal/screens/welcome"
	"github.com/abhisek/tacit/internal/ui/components"
	"github.com/abhisek/tacit/internal/ui/layout"
	"github.com/abhisek/tacit/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu       components.Menu
	opts       annotate.Options
	serviceURL string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Each "Start annotating" opens a fresh
// session built from opts. serviceURL is shown for orientation only.
func New(opts annotate.Options, serviceURL string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START ANNOTATING", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: annotate.New(opts)}
			}
		}},
		{Label: "LABEL GUIDE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: guide.New()}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		opts:       opts,
		serviceURL: serviceURL,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, welcome.RenderBanner(cw))
	}

	sections = append(sections, renderStatus(h.serviceURL, h.opts.Explainer != nil, cw))
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(h.menu.View()))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func renderStatus(serviceURL string, explain bool, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := []string{dim.Render("Sentence service: ") + lipgloss.NewStyle().Foreground(theme.Secondary).Render(serviceURL)}
	if explain {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Render("Explanations on"))
	} else {
		lines = append(lines, dim.Render("Explanations off (set an LLM API key to enable)"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
