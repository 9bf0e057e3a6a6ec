package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnPackageChange(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changes := make(chan []string, 1)
	go w.Run(ctx, func(changed []string) {
		select {
		case changes <- changed:
		default:
		}
	})

	// Give the watch goroutine a moment to come up before writing.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "new_load.dtsx")
	require.NoError(t, os.WriteFile(path, []byte("<x/>"), 0o644))

	select {
	case changed := <-changes:
		assert.Contains(t, changed, path)
	case <-ctx.Done():
		t.Fatal("watcher never fired for a package write")
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 1)
	go w.Run(ctx, func(changed []string) {
		select {
		case changes <- changed:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case changed := <-changes:
		t.Fatalf("unexpected callback for %v", changed)
	case <-time.After(1 * time.Second):
	}
}

func TestWatcherMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := New([]string{filepath.Join(t.TempDir(), "gone")})
	assert.Error(t, err)
}
