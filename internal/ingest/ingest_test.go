package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestAllowedExt(t *testing.T) {
	assert.True(t, AllowedExt(".DOCX"))
	assert.True(t, AllowedExt("json"))
	assert.False(t, AllowedExt(".pdf"))
	assert.True(t, IsLockFile("/a/~$report.docx"))
	assert.True(t, IsHidden("/a/.cache"))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.docx"))
	touch(t, filepath.Join(root, "a.json"))
	touch(t, filepath.Join(root, "sub", "c.docx"))
	touch(t, filepath.Join(root, "done.docx"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "~$b.docx"))
	touch(t, filepath.Join(root, ".hidden", "d.docx"))

	paths, stats, err := Scan(context.Background(), root, ScanConfig{
		SkipHidden: true,
		Done:       func(p string) bool { return strings.HasSuffix(p, "done.docx") },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.json"),
		filepath.Join(root, "b.docx"),
		filepath.Join(root, "sub", "c.docx"),
	}, paths)
	assert.Equal(t, uint32(4), stats.Matched)
	assert.Equal(t, uint32(1), stats.Skipped)
	assert.Zero(t, stats.Failed)
}

func TestScanRequiresRoot(t *testing.T) {
	_, _, err := Scan(context.Background(), " ", ScanConfig{})
	assert.Error(t, err)
}

func TestWatcherEmitsNewReports(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "old.docx"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	next := func() string {
		select {
		case p := <-events:
			return p
		case <-time.After(2 * time.Second):
			t.Fatal("no watcher event")
			return ""
		}
	}
	assert.Equal(t, filepath.Join(root, "old.docx"), next())

	touch(t, filepath.Join(root, "skip.txt"))
	touch(t, filepath.Join(root, "new.docx"))
	assert.Equal(t, filepath.Join(root, "new.docx"), next())
}

func TestWatcherNeedsRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}

func TestMoveTo(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "bad.docx")
	touch(t, src)
	dst, err := MoveTo(src, filepath.Join(root, "error"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "error", "bad.docx"), dst)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}
