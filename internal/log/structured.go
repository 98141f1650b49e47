package log

import (
	"context"
	"log/slog"
	"net/http"
)

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogHTTPStart logs the start of an HTTP request
func (sl *StructuredLogger) LogHTTPStart(ctx context.Context, r *http.Request, clientIP string) {
	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")).
		WithClientIP(clientIP).
		WithComponent(ComponentHTTP)

	sl.logger.For(ctx).InfoContext(ctx, "HTTP request started", fields.ToSlice()...)
}

// LogHTTPEnd logs the completion of an HTTP request
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64, clientIP string) {
	level := slog.LevelInfo
	if statusCode >= 400 && statusCode < 500 {
		level = slog.LevelWarn
	} else if statusCode >= 500 {
		level = slog.LevelError
	}

	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "").
		WithHTTPResponse(statusCode, durationMs, statusCode < 400).
		WithClientIP(clientIP).
		WithComponent(ComponentHTTP)

	sl.logger.For(ctx).Logger.Log(ctx, level, "HTTP request completed", fields.ToSlice()...)
}

// LogCommand logs a dispatched command and its outcome
func (sl *StructuredLogger) LogCommand(ctx context.Context, name string, durationMs int64, err error) {
	fields := NewFields().
		WithCommand(name).
		WithOperation(OpDispatch).
		WithComponent(ComponentApp).
		WithError(err)
	fields[FieldDuration] = durationMs

	if err != nil {
		sl.logger.For(ctx).WarnContext(ctx, "Command failed", fields.ToSlice()...)
		return
	}
	sl.logger.For(ctx).InfoContext(ctx, "Command handled", fields.ToSlice()...)
}
