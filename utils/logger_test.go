package utils

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	defer SetLogger(nil)

	// Silent by default
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("refined", "elem", 3)
	assert.Contains(t, buf.String(), "elem=3")

	SetLogger(nil)
	buf.Reset()
	Logger().Warn("dropped")
	assert.Empty(t, buf.String())
}
