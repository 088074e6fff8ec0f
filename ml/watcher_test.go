package ml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatchArtifactsWarnsOnChange(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(model, []byte(`{}`), 0o600))

	core, logs := observer.New(zap.WarnLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, WatchArtifacts(ctx, zap.New(core), model))

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(model, []byte(`{"changed":true}`), 0o600))

	assert.Eventually(t, func() bool {
		return logs.FilterField(zap.String("path", model)).Len() > 0
	}, 2*time.Second, 20*time.Millisecond)
	assert.Zero(t, logs.FilterField(zap.String("path", other)).Len())
}

func TestWatchArtifactsMissingDirectory(t *testing.T) {
	err := WatchArtifacts(context.Background(), zap.NewNop(), filepath.Join(t.TempDir(), "gone", "model.json"))
	assert.Error(t, err)
}
