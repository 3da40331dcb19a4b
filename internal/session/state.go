package session

import (
	"errors"

	"github.com/abhisek/tacit/internal/annotation"
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle     Phase = iota // Created, nothing requested yet
	PhaseLoading               // A fetch is in flight
	PhaseReady                 // Question shown, accepting toggles
	PhaseGraded                // Grade result held
	PhaseDisposed              // Torn down, all operations rejected
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseGraded:
		return "graded"
	case PhaseDisposed:
		return "disposed"
	}
	return "unknown"
}

// EmptySelectionWarning is the user-facing text for ErrEmptySelection.
const EmptySelectionWarning = "Please select at least one option before submitting."

var (
	// ErrNotReady is returned when no question is loaded or a load is in flight.
	ErrNotReady = errors.New("no question ready")

	// ErrEmptySelection is returned by Submit when nothing is selected.
	ErrEmptySelection = errors.New("empty selection")

	// ErrUnknownLabel is returned when toggling a label outside the taxonomy.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrDisposed is returned by every operation after Dispose.
	ErrDisposed = errors.New("session disposed")
)

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	SessionID string
	Phase     Phase

	// Question is the current record; HasQuestion is false before the first
	// load resolves.
	Question    annotation.QuestionRecord
	HasQuestion bool

	Selection annotation.LabelSet

	// Grade is nil unless a result is held.
	Grade *annotation.GradeResult

	// LastError is the cause of the current degraded record, if any.
	LastError error

	HistoryLen int
}

// CanInteract reports whether toggles and submits are accepted.
func (s Snapshot) CanInteract() bool {
	return s.HasQuestion && (s.Phase == PhaseReady || s.Phase == PhaseGraded)
}

var errNilQuestion = errors.New("empty response")
