package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New("loud", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edstyle.log")
	l, err := New("info", path)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("shown", zap.Int("n", 3))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "shown"))
	assert.False(t, strings.Contains(string(data), "hidden"))
}

func TestContextRoundTrip(t *testing.T) {
	assert.NotNil(t, L(context.Background()))

	core, logs := observer.New(zap.DebugLevel)
	ctx := NewContext(context.Background(), zap.New(core))
	L(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)
}

func TestFaultHook(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	FaultHook(zap.New(core))("go", errors.New("bad"), 3)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "go", fields["language"])
	assert.Equal(t, int64(3), fields["spans"])
	assert.Equal(t, "bad", fields["error"])
}
