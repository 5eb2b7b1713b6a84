package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level string) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, level), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufferLogger("debug")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_LevelFilters(t *testing.T) {
	log, buf := newBufferLogger("warn")
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_WithAndRequestID(t *testing.T) {
	log, buf := newBufferLogger("info")
	ctx := WithRequestID(context.Background(), "req-42")

	log.With("component", "store").Info(ctx, "hello", "k", "v")

	out := buf.String()
	for _, want := range []string{"component=store", "request_id=req-42", "k=v"} {
		assert.True(t, strings.Contains(out, want), "missing %q in %s", want, out)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	ctx := WithRequestID(context.Background(), "")
	assert.Equal(t, "", RequestIDFromContext(ctx))
}
