package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/phuslu/log"

	"github.com/abhisek/tacit/internal/config"
	"github.com/abhisek/tacit/internal/explain"
	"github.com/abhisek/tacit/internal/llm"
	"github.com/abhisek/tacit/internal/logging"
	"github.com/abhisek/tacit/internal/sentence"
)

// newLogger builds the process logger. The TUI only logs when a file is
// configured so the alt screen stays clean.
func newLogger(cfg *config.Config, tui bool) (*log.Logger, io.Closer, error) {
	if tui && cfg.Logging.File == "" {
		return logging.Silent(), nopCloser{}, nil
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
}

// newSentenceClient builds the HTTP client for the configured service,
// wrapped with request logging.
func newSentenceClient(cfg *config.Config, logger *log.Logger) (sentence.Client, *sentence.HTTPClient) {
	hc := sentence.NewHTTPClient(cfg.Service.BaseURL,
		sentence.WithTimeout(cfg.Service.GetTimeout()),
		sentence.WithRateLimit(cfg.Service.RateLimit),
		sentence.WithLogger(logger),
	)
	return sentence.WithLogging(hc, logger), hc
}

// newExplainer returns nil when no LLM provider is configured; explanations
// are optional.
func newExplainer(ctx context.Context, logger *log.Logger, warn io.Writer) *explain.Service {
	llmCfg, ok := llm.ResolveConfig()
	if !ok {
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, logger)
	if err != nil {
		if warn != nil {
			fmt.Fprintln(warn, "LLM provider not configured:", err)
			fmt.Fprintln(warn, "Explanations will be unavailable.")
		}
		logger.Warn().Err(err).Msg("LLM provider unavailable")
		return nil
	}
	return explain.NewService(provider, explain.DefaultConfig())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
