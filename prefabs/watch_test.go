package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyChange(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/tuning.yaml", ChangeTuning, true},
		{"prefabs/bird.yaml", ChangePrefab, true},
		{"prefabs/extra.yml", ChangePrefab, true},
		{"prefabs/scripts/bird.tengo", ChangeScript, true},
		{"prefabs/README.md", 0, false},
		{"prefabs/.tuning.yaml.swp", 0, false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			kind, ok := ClassifyChange(c.path)
			assert.Equal(t, c.ok, ok)
			if ok {
				assert.Equal(t, c.kind, kind)
			}
		})
	}
}

func TestWatcherReportsTuningWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(10*time.Millisecond, dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, TuningFile)
	require.NoError(t, os.WriteFile(path, []byte("world:\n  tile_size: 32\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case change := <-w.Changes:
		assert.Equal(t, ChangeTuning, change.Kind)
		assert.Equal(t, TuningFile, filepath.Base(change.Path))
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(DefaultDebounce, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, open := <-w.Changes
	assert.False(t, open)
}
