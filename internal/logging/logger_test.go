package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewPrettyHandler(buf, &Options{Level: level, NoColor: true, StackTraces: true}))
}

func TestPrettyHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug)

	log.Info("record added", "surname", "ivanov", "phoneLength", 3)

	line := buf.String()
	assert.Contains(t, line, "INFO  record added surname=ivanov phoneLength=3")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestPrettyHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelWarn)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN  shown")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo).With("device", "phonedb-0").WithGroup("read")

	log.Info("served", "nbytes", 3)

	assert.Contains(t, buf.String(), "served device=phonedb-0 read.nbytes=3")
}

func TestPrettyHandler_GroupAppliesOnlyToLaterAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo).
		With("device", "phonedb-0").
		WithGroup("read").
		With("handle", "h1").
		WithGroup("chunk")

	log.Info("served", "nbytes", 3)

	line := buf.String()
	assert.Contains(t, line, "served device=phonedb-0 read.handle=h1 read.chunk.nbytes=3")
	assert.NotContains(t, line, "read.device")
}

func TestPrettyHandler_StackOnlyForErrors(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug)

	log.Warn("command failed", "error", errors.New("malformed"))
	assert.NotContains(t, buf.String(), "goroutine")

	buf.Reset()
	log.Error("transport failed", "error", errors.New("boom"))
	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "goroutine")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("nonsense"))
}
