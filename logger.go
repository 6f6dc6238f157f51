package hups

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with hups-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// DefaultLogger receives diagnostics from package-level helpers that have no
// logger of their own (for example AddRandomShift on a point set without
// shift support).
var DefaultLogger = NewTextLogger(slog.LevelWarn)

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", countString(dim)),
	}
}

// WithNumPoints adds a num_points field to the logger.
func (l *Logger) WithNumPoints(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("num_points", countString(n)),
	}
}

// WithSource adds a source field (resource location) to the logger.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source),
	}
}

// LogLoad logs a resource load.
func (l *Logger) LogLoad(ctx context.Context, source string, bytes int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"source", source,
			"duration", duration,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "load completed",
		"source", source,
		"bytes", bytes,
		"duration", duration,
	)
}

// LogRandomize logs a randomization of a point set.
func (l *Logger) LogRandomize(ctx context.Context, kind string, d1, d2 int, err error) {
	if err != nil {
		l.WarnContext(ctx, "randomize failed",
			"kind", kind,
			"from", d1,
			"to", d2,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "randomize completed",
		"kind", kind,
		"from", d1,
		"to", d2,
	)
}

// LogReplication logs the outcome of one randomized replication.
func (l *Logger) LogReplication(ctx context.Context, rep int, estimate float64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "replication failed",
			"replication", rep,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "replication completed",
		"replication", rep,
		"estimate", estimate,
		"duration", duration,
	)
}
