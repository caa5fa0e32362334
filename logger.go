package recgo

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with recgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSession adds a session identifier to the logger.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("session", id),
	}
}

// LogSearch logs a first-turn search operation.
func (l *Logger) LogSearch(ctx context.Context, bufferK, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"buffer_k", bufferK,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"buffer_k", bufferK,
			"results", resultsFound,
		)
	}
}

// LogRerank logs a follow-up rerank operation.
func (l *Logger) LogRerank(ctx context.Context, candidates, dropped int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "rerank failed",
			"candidates", candidates,
			"error", err,
		)
	} else if dropped > 0 {
		l.WarnContext(ctx, "rerank completed with dropped candidates",
			"candidates", candidates,
			"dropped", dropped,
		)
	} else {
		l.DebugContext(ctx, "rerank completed",
			"candidates", candidates,
		)
	}
}

// LogSummary logs a summary generation operation.
func (l *Logger) LogSummary(ctx context.Context, productName string, cached bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "summary failed",
			"product", productName,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "summary completed",
			"product", productName,
			"cached", cached,
		)
	}
}

// LogEviction logs a cache retention sweep.
func (l *Logger) LogEviction(ctx context.Context, removed int) {
	if removed > 0 {
		l.InfoContext(ctx, "cache eviction completed",
			"removed", removed,
		)
	} else {
		l.DebugContext(ctx, "cache eviction completed",
			"removed", 0,
		)
	}
}
