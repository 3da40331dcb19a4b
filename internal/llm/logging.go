package llm

import (
	"context"
	"time"

	"github.com/phuslu/log"
)

// LoggingProvider logs every request with purpose, latency, token usage and
// estimated cost.
type LoggingProvider struct {
	inner  Provider
	logger *log.Logger
}

// WithLogging wraps p with request logging.
func WithLogging(p Provider, logger *log.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	var entry *log.Entry
	if err != nil {
		entry = l.logger.Warn().Err(err)
	} else {
		entry = l.logger.Info()
	}
	entry = entry.
		Str("purpose", PurposeFrom(ctx)).
		Str("model", l.inner.ModelID()).
		Dur("latency", time.Since(start))
	if req.Schema != nil {
		entry = entry.Str("schema", req.Schema.Name)
	}
	if resp != nil {
		entry = entry.
			Str("served_by", resp.Model).
			Int("input_tokens", resp.Usage.InputTokens).
			Int("output_tokens", resp.Usage.OutputTokens)
		if cost := LookupCost(resp.Model); cost != nil {
			entry = entry.Float64("cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
	}
	entry.Msg("llm request")

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
