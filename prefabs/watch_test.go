package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsSpecAndScriptEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	tuning := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(tuning, []byte("ship_speed: 10\n"), 0644))

	select {
	case got := <-w.Events:
		assert.Equal(t, tuning, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for tuning.yaml")
	}

	script := filepath.Join(dir, "orbit.tengo")
	require.NoError(t, os.WriteFile(script, []byte("x := 0\n"), 0644))

	select {
	case got := <-w.Events:
		assert.Equal(t, script, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for orbit.tengo")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestIsTuningFile(t *testing.T) {
	assert.True(t, IsTuningFile("prefabs/tuning.yaml", ""))
	assert.True(t, IsTuningFile("/tmp/x/fast.yaml", "fast"))
	assert.False(t, IsTuningFile("prefabs/battle.yaml", ""))
	assert.True(t, IsScriptFile("prefabs/scripts/orbit.tengo"))
	assert.False(t, IsScriptFile("prefabs/scripts/orbit.lua"))
}
