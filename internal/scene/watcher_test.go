package scene

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextPatch(t *testing.T, w *Watcher) Patch {
	t.Helper()
	select {
	case p := <-w.Patches():
		return p
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for patch")
	}
	return Patch{}
}

func TestWatchDeliversExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gradient: 7\n"), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	p := nextPatch(t, w)
	require.NotNil(t, p.GradientSteps)
	assert.Equal(t, 7, *p.GradientSteps)
}

func TestWatchPicksUpEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("edge: false\nfilter: NEAREST\n"), 0644))

	// Create and write may arrive as separate events; wait for a complete patch.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		p := nextPatch(t, w)
		if p.EdgeEnabled != nil && p.FilterMode != nil {
			assert.False(t, *p.EdgeEnabled)
			assert.Equal(t, FilterNearest, *p.FilterMode)
			return
		}
	}
	t.Fatal("no complete patch received")
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(filepath.Join(dir, "params.yaml"))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("gradient: 5\n"), 0644))

	select {
	case p := <-w.Patches():
		t.Fatalf("unexpected patch %+v", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "missing", "params.yaml"))
	assert.Error(t, err)
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "params.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "params.yaml", filepath.Base(w.Path()))
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
