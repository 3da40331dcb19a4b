// Package session drives one annotation quiz: fetching questions, tracking
// the user's selection and grading it against the answer key.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/abhisek/tacit/internal/annotation"
	"github.com/abhisek/tacit/internal/logging"
	"github.com/abhisek/tacit/internal/sentence"
	"github.com/abhisek/tacit/internal/taxonomy"
)

// Controller owns the question, selection and grade for one quiz session.
// All methods are safe for concurrent use; transitions are serialized.
type Controller struct {
	mu sync.Mutex

	client      sentence.Client
	now         func() time.Time
	logger      *log.Logger
	placeholder string
	id          string

	phase     Phase
	seq       uint64 // latest issued load
	question  *annotation.QuestionRecord
	selection annotation.LabelSet
	grade     *annotation.GradeResult
	lastErr   error
	history   *history
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for FetchedAt and GradedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithHistorySize bounds the Previous stack. Zero disables it.
func WithHistorySize(n int) Option {
	return func(c *Controller) {
		c.history = newHistory(n)
	}
}

// WithPlaceholder overrides the sentence shown when a fetch fails.
func WithPlaceholder(text string) Option {
	return func(c *Controller) {
		c.placeholder = text
	}
}

// New creates a Controller in PhaseIdle. Nothing is fetched until LoadNext
// or BeginLoad.
func New(client sentence.Client, opts ...Option) *Controller {
	c := &Controller{
		client:      client,
		now:         time.Now,
		logger:      logging.Silent(),
		placeholder: annotation.UnavailableSentence,
		id:          uuid.New().String(),
		phase:       PhaseIdle,
		history:     newHistory(DefaultHistorySize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wake pings the service root and then waits delay, so a cold host is up
// before the first fetch. Failures are logged and ignored.
func (c *Controller) Wake(ctx context.Context, delay time.Duration) {
	if err := c.client.Wake(ctx); err != nil {
		c.logger.Debug().Str("session_id", c.id).Err(err).Msg("wake ping failed")
	}
	if delay <= 0 {
		return
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// LoadNext fetches a new question and applies it. Fetch failures produce
// the degraded placeholder record, not an error; the only error is
// ErrDisposed.
func (c *Controller) LoadNext(ctx context.Context) error {
	seq, err := c.beginLoad()
	if err != nil {
		return err
	}
	q, fetchErr := c.client.FetchQuestion(ctx)
	c.ResolveLoad(seq, q, fetchErr)
	return nil
}

// BeginLoad issues a new sequence number and moves to PhaseLoading. The
// caller performs the fetch and passes the result to ResolveLoad with the
// returned sequence number. Returns 0 once disposed.
func (c *Controller) BeginLoad() uint64 {
	seq, _ := c.beginLoad()
	return seq
}

func (c *Controller) beginLoad() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseDisposed {
		return 0, ErrDisposed
	}
	c.seq++
	c.phase = PhaseLoading
	c.logger.Debug().Str("session_id", c.id).Uint64("seq", c.seq).Msg("load started")
	return c.seq, nil
}

// Client returns the sentence client, for callers that drive BeginLoad and
// ResolveLoad themselves.
func (c *Controller) Client() sentence.Client {
	return c.client
}

// ResolveLoad applies the outcome of the fetch started by BeginLoad(seq).
// Results for anything but the latest sequence number are discarded and
// false is returned.
func (c *Controller) ResolveLoad(seq uint64, q *sentence.Question, fetchErr error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseDisposed {
		return false
	}
	if seq != c.seq {
		c.logger.Debug().Str("session_id", c.id).
			Uint64("seq", seq).Uint64("latest", c.seq).
			Msg("discarding stale load result")
		return false
	}

	if c.question != nil && !c.question.Degraded {
		c.history.push(*c.question)
	}

	now := c.now()
	var rec annotation.QuestionRecord
	if fetchErr == nil && q == nil {
		fetchErr = &sentence.MalformedResponseError{Err: errNilQuestion}
	}
	if fetchErr != nil {
		c.logger.Warn().Str("session_id", c.id).Err(fetchErr).Msg("question fetch failed")
		rec = annotation.DegradedRecord(c.placeholder, now)
		c.lastErr = fetchErr
	} else {
		rec = annotation.QuestionRecord{
			Sentence:      q.Sentence,
			CorrectLabels: c.answerKey(q.CorrectLabels),
			FetchedAt:     now,
		}
		c.lastErr = nil
	}

	c.question = &rec
	c.selection.Clear()
	c.grade = nil
	c.phase = PhaseReady
	return true
}

// answerKey converts wire labels. Labels outside the taxonomy are kept as-is
// so they surface as missed, with a warning.
func (c *Controller) answerKey(labels []string) annotation.LabelSet {
	key := annotation.NewLabelSet()
	for _, raw := range labels {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		l := taxonomy.Label(name)
		if !taxonomy.Contains(l) {
			c.logger.Warn().Str("session_id", c.id).Str("label", name).Msg("answer key label not in taxonomy")
		}
		if !key.Contains(l) {
			key.Toggle(l)
		}
	}
	return key
}

// ToggleLabel flips membership of label in the selection. A held grade is
// kept, but the phase returns to Ready.
func (c *Controller) ToggleLabel(label taxonomy.Label) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.interactable(); err != nil {
		return err
	}
	if !taxonomy.Contains(label) {
		return ErrUnknownLabel
	}
	c.selection.Toggle(label)
	if c.phase == PhaseGraded {
		c.phase = PhaseReady
	}
	return nil
}

// Submit grades the current selection. With an empty selection it returns
// ErrEmptySelection and leaves any held result untouched.
func (c *Controller) Submit() (annotation.GradeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.interactable(); err != nil {
		return annotation.GradeResult{}, err
	}
	if c.selection.IsEmpty() {
		return annotation.GradeResult{}, ErrEmptySelection
	}

	result := annotation.Grade(c.selection, c.question.CorrectLabels)
	result.GradedAt = c.now()
	c.grade = &result
	c.phase = PhaseGraded

	c.logger.Info().Str("session_id", c.id).
		Int("correct", result.CorrectSelected.Len()).
		Int("incorrect", result.IncorrectSelected.Len()).
		Int("missed", result.MissedCorrect.Len()).
		Msg("selection graded")
	return result.Clone(), nil
}

// Previous returns to the most recent earlier question with a fresh
// selection. The question being left is not kept, so history is a back
// stack only. Any fetch in flight is invalidated. With no history it falls
// back to LoadNext.
func (c *Controller) Previous(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == PhaseDisposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	rec, ok := c.history.pop()
	if !ok {
		c.mu.Unlock()
		return c.LoadNext(ctx)
	}
	defer c.mu.Unlock()

	c.seq++
	c.question = &rec
	c.selection.Clear()
	c.grade = nil
	c.lastErr = nil
	c.phase = PhaseReady
	c.logger.Debug().Str("session_id", c.id).Int("history", c.history.len()).Msg("returned to previous question")
	return nil
}

// Dispose ends the session. Later operations return ErrDisposed and pending
// load results are dropped. Safe to call more than once.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseDisposed {
		return
	}
	c.phase = PhaseDisposed
	c.seq++
	c.history.clear()
	c.logger.Debug().Str("session_id", c.id).Msg("session disposed")
}

func (c *Controller) interactable() error {
	switch {
	case c.phase == PhaseDisposed:
		return ErrDisposed
	case c.phase == PhaseLoading, c.question == nil:
		return ErrNotReady
	}
	return nil
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Question returns a copy of the current record.
func (c *Controller) Question() (annotation.QuestionRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.question == nil {
		return annotation.QuestionRecord{}, false
	}
	return c.question.Clone(), true
}

// Selection returns a copy of the current selection.
func (c *Controller) Selection() annotation.LabelSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Clone()
}

// Grade returns the held result, if any.
func (c *Controller) Grade() (annotation.GradeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grade == nil {
		return annotation.GradeResult{}, false
	}
	return c.grade.Clone(), true
}

// LastError returns why the current record is degraded, or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SessionID returns the UUID identifying this session in logs.
func (c *Controller) SessionID() string {
	return c.id
}

// HistoryLen returns how many earlier questions Previous can revisit.
func (c *Controller) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.len()
}

// Snapshot returns a consistent copy of the whole state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		SessionID:  c.id,
		Phase:      c.phase,
		Selection:  c.selection.Clone(),
		LastError:  c.lastErr,
		HistoryLen: c.history.len(),
	}
	if c.question != nil {
		s.Question = c.question.Clone()
		s.HasQuestion = true
	}
	if c.grade != nil {
		g := c.grade.Clone()
		s.Grade = &g
	}
	return s
}
