// Package logging builds the structured loggers shared by the CLI, the
// TUI and the reference server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
)

// Options selects level, format and destination.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Unknown values mean info.
	Level string

	// Format is "console" or "json".
	Format string

	// File, when set, receives the output instead of stderr. The TUI always
	// logs to a file (or nowhere) so the alt screen stays clean.
	File string
}

// New creates a logger per opts. The returned closer releases the log file,
// if one was opened.
func New(opts Options) (*log.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}

	return NewWithWriter(opts, out), closer, nil
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(opts Options, w io.Writer) *log.Logger {
	logger := &log.Logger{
		Level:      parseLevel(opts.Level),
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	if opts.Format == "json" {
		logger.Writer = &log.IOWriter{Writer: w}
	} else {
		logger.Writer = &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: w == os.Stderr,
			QuoteString: true,
		}
	}
	return logger
}

// Silent returns a logger that discards everything.
func Silent() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

func parseLevel(level string) log.Level {
	switch level {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
