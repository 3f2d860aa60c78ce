package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(target, []byte("simulation:\n  seed: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
		assert.True(t, IsTuningFile(name))
	case <-time.After(2 * time.Second):
		t.Fatal("no event for tuning.yaml")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := w.Poll()
	assert.False(t, ok)
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile("a/b/level.YAML"))
	assert.True(t, isConfigFile("x.yml"))
	assert.True(t, isConfigFile("map.tmx"))
	assert.False(t, isConfigFile("image.png"))
}
