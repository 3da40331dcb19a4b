// Package guide lists the label taxonomy with a short description of each
// category.
package guide

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/screen"
	"github.com/abhisek/tacit/internal/taxonomy"
	"github.com/abhisek/tacit/internal/ui/components"
	"github.com/abhisek/tacit/internal/ui/theme"
)

var descriptions = map[taxonomy.Label]string{
	"Attainment":   "Goals reached or credentials earned",
	"Aspirational": "Hopes and dreams held despite barriers",
	"Navigational": "Skill at moving through institutions",
	"Perseverant":  "Persistence through hardship",
	"Resistance":   "Challenging inequality",
	"Familial":     "Knowledge and support from family",
	"Filial Piety": "Duty and respect toward parents and elders",
	"First Gen":    "Being first in the family to attend college",
	"Social":       "Networks of peers and contacts",
	"Community":    "Belonging to and drawing on a community",
	"Spiritual":    "Faith or spirituality as a resource",
	"Class 0":      "None of the categories apply",
}

// Description returns the one-line description of l, or "" if none.
func Description(l taxonomy.Label) string {
	return descriptions[l]
}

// Screen shows the taxonomy in display order.
type Screen struct{}

var _ screen.Screen = (*Screen)(nil)

// New creates the guide screen.
func New() *Screen {
	return &Screen{}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *Screen) Title() string {
	return "Label Guide"
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	for i, l := range taxonomy.All() {
		name := theme.Selected.Render(fmt.Sprintf("%2d. %-13s", i+1, l))
		b.WriteString(name + " " + lipgloss.NewStyle().Foreground(theme.Text).Render(Description(l)))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(strings.TrimRight(b.String(), "\n"), cw))
}
