package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/ui/theme"
)

// Spinner wraps the bubbles spinner with a caption.
type Spinner struct {
	Model   spinner.Model
	Caption string
}

// NewSpinner creates a themed spinner.
func NewSpinner(caption string) Spinner {
	return Spinner{
		Model: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
		Caption: caption,
	}
}

// Tick starts the animation.
func (s Spinner) Tick() tea.Msg {
	return s.Model.Tick()
}

// Update advances the animation on its own tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner and caption.
func (s Spinner) View() string {
	return s.Model.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Caption)
}
