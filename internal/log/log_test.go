package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewText(&buf, slog.LevelDebug, ComponentGateway)

	logger.Debug("call", FieldEndpoint, "/profiles")

	out := buf.String()
	assert.Contains(t, out, "component=gateway")
	assert.Contains(t, out, "endpoint=/profiles")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(NewText(&buf, slog.LevelDebug, ComponentApp))

	sl.LogCommand(context.Background(), "select_profile", 12, nil)
	assert.Contains(t, buf.String(), "command=select_profile")
	assert.Contains(t, buf.String(), "level=INFO")

	buf.Reset()
	sl.LogCommand(context.Background(), "delete_card", 3, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().WithSlot("dashboard", 4).WithGatewayCall("GET", "/dashboard/1", 200, 7).WithError(nil)

	assert.Equal(t, "dashboard", f[FieldSlot])
	assert.Equal(t, uint64(4), f[FieldSeq])
	assert.Equal(t, 200, f[FieldStatusCode])
	assert.NotContains(t, f, FieldError)
	assert.Len(t, f.ToSlice(), len(f)*2)
}

func TestForAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewText(&buf, slog.LevelInfo, ComponentGateway)

	logger.For(context.Background()).Info("no id")
	assert.NotContains(t, buf.String(), FieldRequestID)

	buf.Reset()
	ctx := ContextWithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	logger.For(ctx).Info("with id")
	assert.Contains(t, buf.String(), "request_id=req-1")
	assert.Contains(t, buf.String(), "component=gateway")

	buf.Reset()
	NewStructuredLogger(logger).LogCommand(ctx, "reload", 1, nil)
	assert.Contains(t, buf.String(), "request_id=req-1")
}
