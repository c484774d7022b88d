package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultLevels(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	log := NewDefault(&buf, "warn")

	log.Info(ctx, "should be filtered")
	require.Empty(t, buf.String())

	log.Warn(ctx, "kept", "k", "v")
	require.Contains(t, buf.String(), "kept")
	require.Contains(t, buf.String(), "k=v")
}

func TestNewDefaultUnknownLevelFallsBackToInfo(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	log := NewDefault(&buf, "banana")

	log.Debug(ctx, "filtered")
	require.Empty(t, buf.String())

	log.Info(ctx, "visible")
	require.Contains(t, buf.String(), "visible")
}

func TestWithAddsPersistentAttrs(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	log := NewDefault(&buf, "info").With("component", "api")

	log.Info(ctx, "hello")
	require.Contains(t, buf.String(), "component=api")
}
