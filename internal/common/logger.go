package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LoggerOptions controls how SetupLogger builds the default logger.
type LoggerOptions struct {
	// Output overrides the destination. When nil, File or stderr is used.
	Output io.Writer
	Level  string
	Format string
	File   string
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: invalid log level %q", ErrInvalidConfig, level)
	}
}

// SetupLogger configures the global logger. The returned closer releases the
// log file when one was opened; it is always safe to call.
func SetupLogger(opts LoggerOptions) (func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return noopClose, err
	}

	closer := noopClose
	out := opts.Output
	if out == nil {
		out = os.Stderr
		if opts.File != "" {
			if mkErr := os.MkdirAll(filepath.Dir(opts.File), 0750); mkErr != nil {
				return noopClose, fmt.Errorf("failed to create log directory: %w", mkErr)
			}
			f, openErr := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
			if openErr != nil {
				return noopClose, fmt.Errorf("failed to open log file: %w", openErr)
			}
			out = f
			closer = f.Close
		}
	}

	handler, err := newHandler(out, level, opts.Format)
	if err != nil {
		_ = closer()
		return noopClose, err
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

func newHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch format {
	case "console", "":
		return slog.NewTextHandler(w, handlerOpts), nil
	case "json":
		return slog.NewJSONHandler(w, handlerOpts), nil
	default:
		return nil, fmt.Errorf("%w: invalid log format %q", ErrInvalidConfig, format)
	}
}

func noopClose() error { return nil }
