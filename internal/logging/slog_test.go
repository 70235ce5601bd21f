package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufLogger(buf *bytes.Buffer) *SlogLogger {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h))
}

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newBufLogger(&buf)
	ctx := context.Background()

	l.Debug(ctx, "d1")
	l.Info(ctx, "i1", "k", "v")
	l.Warn(ctx, "w1")
	l.Error(ctx, "e1")

	out := buf.String()
	require.Contains(t, out, "level=DEBUG")
	require.Contains(t, out, "msg=i1")
	require.Contains(t, out, "k=v")
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "level=ERROR")
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := newBufLogger(&buf)

	child := l.With("task", "abc")
	child.Info(context.Background(), "hello")

	require.Contains(t, buf.String(), "task=abc")
}
