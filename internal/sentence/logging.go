package sentence

import (
	"context"
	"time"

	"github.com/phuslu/log"
)

// LoggingClient is a decorator that logs every fetch with its latency and
// outcome.
type LoggingClient struct {
	inner  Client
	logger *log.Logger
}

// WithLogging wraps a Client with request logging.
func WithLogging(c Client, logger *log.Logger) Client {
	return &LoggingClient{inner: c, logger: logger}
}

func (l *LoggingClient) FetchQuestion(ctx context.Context) (*Question, error) {
	start := time.Now()
	q, err := l.inner.FetchQuestion(ctx)
	latency := time.Since(start)

	if err != nil {
		l.logger.Warn().Err(err).Dur("latency", latency).Msg("fetch question failed")
		return nil, err
	}

	entry := l.logger.Info().
		Dur("latency", latency).
		Int("labels", len(q.CorrectLabels))
	if q.Legacy {
		entry = entry.Bool("legacy", true)
	}
	entry.Msg("question fetched")
	return q, nil
}

func (l *LoggingClient) Wake(ctx context.Context) error {
	err := l.inner.Wake(ctx)
	if err != nil {
		l.logger.Debug().Err(err).Msg("wake ping failed")
	}
	return err
}
