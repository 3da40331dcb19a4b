package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tacit/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns a stack of them.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a short status on the
// right of the header.
type StatusProvider interface {
	Status() string
}

// Disposer is implemented by screens that hold resources. The router calls
// Dispose when the screen leaves the stack.
type Disposer interface {
	Dispose()
}
