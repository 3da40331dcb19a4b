package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/tacit/internal/llm"
	"github.com/abhisek/tacit/internal/taxonomy"
)

// Service generates explanations, either synchronously or in the background
// with Request and Consume.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	gen     uint64
	pending *Explanation
	err     error
	ready   bool
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Request starts generation in the background. A newer request supersedes
// any in flight; only the latest result is kept for Consume.
func (s *Service) Request(ctx context.Context, in Input) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending, s.err, s.ready = nil, nil, false
	s.mu.Unlock()

	go func() {
		exp, err := s.Explain(ctx, in)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending, s.err, s.ready = exp, err, true
	}()
}

// Result is the outcome of a background request.
type Result struct {
	Explanation *Explanation
	Err         error
}

// Consume returns the latest finished result and clears it. ok is false
// while nothing is ready.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	r := Result{Explanation: s.pending, Err: s.err}
	s.pending, s.err, s.ready = nil, nil, false
	return r, true
}

// Cancel drops whatever is in flight or waiting.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.pending, s.err, s.ready = nil, nil, false
}

type explanationOutput struct {
	Summary string `json:"summary"`
	Labels  []struct {
		Label  string `json:"label"`
		Reason string `json:"reason"`
	} `json:"labels"`
}

// Explain generates an explanation and waits for it.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, "explain")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	exp := &Explanation{
		Sentence: in.Sentence,
		Summary:  strings.TrimSpace(out.Summary),
	}
	// Keep only labels from the answer key, in display order.
	reasons := make(map[taxonomy.Label]string, len(out.Labels))
	for _, l := range out.Labels {
		reasons[taxonomy.Label(strings.TrimSpace(l.Label))] = strings.TrimSpace(l.Reason)
	}
	for _, l := range in.Correct.Labels() {
		if r, ok := reasons[l]; ok {
			exp.Labels = append(exp.Labels, LabelReason{Label: l, Reason: r})
		}
	}
	return exp, nil
}
