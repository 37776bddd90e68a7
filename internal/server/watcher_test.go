package server

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func TestReloadWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	var reloads atomic.Int32
	w, err := newReloadWatcher(schema.SourceFromFile(path), 100*time.Millisecond, func(context.Context) error {
		reloads.Add(1)
		return nil
	}, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"type":"object"}`), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600))

	assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())
}

func TestReloadWatcherRequiresFileSource(t *testing.T) {
	_, err := newReloadWatcher(schema.SourceInline("x"), 0, func(context.Context) error { return nil }, zap.NewNop())
	require.Error(t, err)
}
