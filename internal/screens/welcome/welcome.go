package welcome

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tacit/internal/router"
	"github.com/abhisek/tacit/internal/screen"
	"github.com/abhisek/tacit/internal/ui/components"
	"github.com/abhisek/tacit/internal/ui/theme"
)

// WakeFunc pings the sentence service so a cold host starts up while the
// splash is shown.
type WakeFunc func(ctx context.Context) error

type wakeDoneMsg struct {
	err error
}

// WelcomeScreen shows the banner while the sentence service wakes up, then
// hands over to the home screen on a key press.
type WelcomeScreen struct {
	homeFactory func() screen.Screen
	wake        WakeFunc

	ctx    context.Context
	cancel context.CancelFunc

	spinner      components.Spinner
	waking       bool
	wakeErr      error
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.Disposer = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. wake may be nil to skip the ping.
func New(homeFactory func() screen.Screen, wake WakeFunc) *WelcomeScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &WelcomeScreen{
		homeFactory: homeFactory,
		wake:        wake,
		ctx:         ctx,
		cancel:      cancel,
		spinner:     components.NewSpinner("Waking the sentence service..."),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	if w.wake == nil {
		return nil
	}
	w.waking = true
	wake, ctx := w.wake, w.ctx
	return tea.Batch(w.spinner.Tick, func() tea.Msg {
		return wakeDoneMsg{err: wake(ctx)}
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wakeDoneMsg:
		w.waking = false
		w.wakeErr = msg.err
		return w, nil

	case spinner.TickMsg:
		if !w.waking {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

// Dispose stops a wake ping still in flight.
func (w *WelcomeScreen) Dispose() {
	w.cancel()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Practice Community Cultural Wealth annotation"),
		"",
	}

	switch {
	case w.waking:
		sections = append(sections, w.spinner.View())
	case w.wakeErr != nil:
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("Sentence service did not answer; questions may fail to load."))
	}

	sections = append(sections, "", lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("press any key to continue"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
