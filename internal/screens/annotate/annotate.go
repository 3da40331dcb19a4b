// Package annotate is the quiz screen: one sentence, a label checklist, and
// the graded result.
package annotate

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/phuslu/log"

	"github.com/abhisek/tacit/internal/explain"
	"github.com/abhisek/tacit/internal/logging"
	"github.com/abhisek/tacit/internal/screen"
	"github.com/abhisek/tacit/internal/sentence"
	"github.com/abhisek/tacit/internal/session"
	"github.com/abhisek/tacit/internal/taxonomy"
	"github.com/abhisek/tacit/internal/ui/components"
	"github.com/abhisek/tacit/internal/ui/layout"
)

const explainPollInterval = 150 * time.Millisecond

// Options configures a new annotation screen.
type Options struct {
	Client sentence.Client

	// Explainer is optional; without it the explain key is hidden.
	Explainer *explain.Service

	Logger      *log.Logger
	HistorySize int
}

// Screen runs one annotation session. The session is created with the
// screen and disposed when the screen leaves the router stack.
type Screen struct {
	ctrl      *session.Controller
	explainer *explain.Service

	ctx    context.Context
	cancel context.CancelFunc

	list    components.Checklist
	spinner components.Spinner

	warning     string
	explaining  bool
	explanation *explain.Explanation
	explainErr  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ screen.Disposer = (*Screen)(nil)

// New creates the screen and its session.
func New(opts Options) *Screen {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Silent()
	}
	sessOpts := []session.Option{session.WithLogger(logger)}
	if opts.HistorySize > 0 {
		sessOpts = append(sessOpts, session.WithHistorySize(opts.HistorySize))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Screen{
		ctrl:      session.New(opts.Client, sessOpts...),
		explainer: opts.Explainer,
		ctx:       ctx,
		cancel:    cancel,
		list:      components.NewChecklist(),
		spinner:   components.NewSpinner("Fetching a sentence..."),
	}
}

// Controller exposes the session, mainly for tests.
func (s *Screen) Controller() *session.Controller {
	return s.ctrl
}

func (s *Screen) Init() tea.Cmd {
	return s.loadNext()
}

func (s *Screen) Title() string {
	return "Annotate"
}

// Status shows the session phase in the header.
func (s *Screen) Status() string {
	return s.ctrl.Phase().String()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	snap := s.ctrl.Snapshot()
	if !snap.CanInteract() {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space/1-=", Description: "Toggle"},
		{Key: "Enter", Description: "Submit"},
		{Key: "N", Description: "Next"},
		{Key: "P", Description: "Previous"},
	}
	if s.canExplain(snap) {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Dispose ends the session and cancels anything in flight.
func (s *Screen) Dispose() {
	s.cancel()
	if s.explainer != nil {
		s.explainer.Cancel()
	}
	s.ctrl.Dispose()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionLoadedMsg:
		s.ctrl.ResolveLoad(msg.seq, msg.question, msg.err)
		return s, nil

	case explainPollMsg:
		return s, s.pollExplanation()

	case spinner.TickMsg:
		if s.ctrl.Phase() != session.PhaseLoading && !s.explaining {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// N and P start over even while a load is in flight; the newer load wins.
	switch key {
	case "n":
		return s, s.loadNext()
	case "p":
		return s, s.previous()
	}

	snap := s.ctrl.Snapshot()
	if !snap.CanInteract() {
		return s, nil
	}

	switch key {
	case "up", "k":
		s.list.Up()
		return s, nil
	case "down", "j":
		s.list.Down()
		return s, nil
	case "space", " ", "x":
		if l, ok := s.list.Current(); ok {
			s.toggle(l)
		}
		return s, nil
	case "enter":
		s.submit()
		return s, nil
	case "e":
		return s, s.requestExplanation(snap)
	}

	if l, ok := s.list.Shortcut(key); ok {
		s.toggle(l)
	}
	return s, nil
}

func (s *Screen) toggle(l taxonomy.Label) {
	if err := s.ctrl.ToggleLabel(l); err != nil {
		s.warning = err.Error()
		return
	}
	s.warning = ""
}

func (s *Screen) submit() {
	_, err := s.ctrl.Submit()
	switch {
	case errors.Is(err, session.ErrEmptySelection):
		s.warning = session.EmptySelectionWarning
	case err != nil:
		s.warning = err.Error()
	default:
		s.warning = ""
	}
}

// loadNext starts a fetch. BeginLoad runs here on the update loop so the
// sequence number is fixed before the fetch goroutine starts.
func (s *Screen) loadNext() tea.Cmd {
	seq := s.ctrl.BeginLoad()
	if seq == 0 {
		return nil
	}
	s.resetQuestionState()
	s.spinner.Caption = "Fetching a sentence..."

	client, ctx := s.ctrl.Client(), s.ctx
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		q, err := client.FetchQuestion(ctx)
		return questionLoadedMsg{seq: seq, question: q, err: err}
	})
}

// previous replays the last question, or fetches a new one when there is
// no history.
func (s *Screen) previous() tea.Cmd {
	if s.ctrl.HistoryLen() == 0 {
		return s.loadNext()
	}
	s.resetQuestionState()
	if err := s.ctrl.Previous(s.ctx); err != nil {
		s.warning = err.Error()
	}
	return nil
}

func (s *Screen) resetQuestionState() {
	s.warning = ""
	s.explaining = false
	s.explanation = nil
	s.explainErr = ""
	if s.explainer != nil {
		s.explainer.Cancel()
	}
}

func (s *Screen) canExplain(snap session.Snapshot) bool {
	return s.explainer != nil &&
		snap.Grade != nil &&
		snap.Phase == session.PhaseGraded &&
		!snap.Question.Degraded
}

func (s *Screen) requestExplanation(snap session.Snapshot) tea.Cmd {
	if !s.canExplain(snap) || s.explaining {
		return nil
	}
	s.explaining = true
	s.spinner.Caption = "Asking for an explanation..."
	s.explanation = nil
	s.explainErr = ""
	s.explainer.Request(s.ctx, explain.Input{
		Sentence: snap.Question.Sentence,
		Grade:    *snap.Grade,
		Correct:  snap.Question.CorrectLabels,
	})
	return tea.Batch(s.spinner.Tick, pollCmd())
}

func (s *Screen) pollExplanation() tea.Cmd {
	if !s.explaining || s.explainer == nil {
		return nil
	}
	r, ok := s.explainer.Consume()
	if !ok {
		return pollCmd()
	}
	s.explaining = false
	if r.Err != nil {
		s.explainErr = r.Err.Error()
		return nil
	}
	s.explanation = r.Explanation
	return nil
}

func pollCmd() tea.Cmd {
	return tea.Tick(explainPollInterval, func(t time.Time) tea.Msg {
		return explainPollMsg(t)
	})
}
