package diag

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogFailure(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	LogFailure("clip", "rect", errors.New("boom"))
	out := buf.String()
	assert.Contains(t, out, "component=clip")
	assert.Contains(t, out, "op=rect")
	assert.Contains(t, out, "err=boom")
}

func TestLogFailureNilError(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	LogFailure("clip", "rect", nil)
	assert.Empty(t, buf.String())
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
