package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcompare/internal/core/backup"
	"transcompare/internal/core/charset"
)

func waitForChange(t *testing.T, w *Watcher, path string, kind ChangeKind) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c, ok := <-w.Changes():
			require.True(t, ok, "changes channel closed")
			if c.Path == path && c.Kind == kind {
				return
			}
		case <-timeout:
			t.Fatalf("no %s change for %s", kind, path)
		}
	}
}

func TestWatcher_ReportsModification(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	require.NoError(t, w.Add(path))
	assert.True(t, w.Watching(path))

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	waitForChange(t, w, path, Modified)

	require.NoError(t, os.Remove(path))
	waitForChange(t, w, path, Removed)
}

func TestWatcher_IgnoresOtherFilesInDirectory(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))
	require.NoError(t, w.Add(watched))

	require.NoError(t, os.WriteFile(other, []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("c"), 0o644))

	c := <-w.Changes()
	assert.Equal(t, watched, c.Path)
}

func TestWatcher_ReferenceCounting(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(t.TempDir(), "t.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.NoError(t, w.Add(path))
	require.NoError(t, w.Add(path))
	require.NoError(t, w.Remove(path))
	assert.True(t, w.Watching(path))
	require.NoError(t, w.Remove(path))
	assert.False(t, w.Watching(path))
	require.NoError(t, w.Remove(path), "removing an unwatched path is a no-op")
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestWorkspace_WatchesTargets(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("1"), 0o644))

	fs := charset.Local
	ws := New(Options{FS: fs, Backup: backup.NewWriter(fs, filepath.Join(dir, "Backup")), Watcher: w})
	tab := ws.NewTab()

	require.NoError(t, tab.OpenTarget(first, nil))
	assert.True(t, w.Watching(first))

	require.NoError(t, tab.Save(second, ""))
	assert.False(t, w.Watching(first))
	assert.True(t, w.Watching(second))

	require.NoError(t, ws.CloseCurrent())
	assert.False(t, w.Watching(second))
}
