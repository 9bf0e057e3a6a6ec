package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, path := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestCorpusFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	touch(t,
		filepath.Join(dir, "load.dtsx"),
		filepath.Join(dir, "etl", "orders.dtsx"),
		filepath.Join(dir, "etl", "notes.txt"),
		filepath.Join(dir, "bin", "old.dtsx"),
	)

	corpus, err := New([]string{dir}, nil, []string{"bin/**"})
	require.NoError(t, err)

	files, err := corpus.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "etl", "orders.dtsx"),
		filepath.Join(dir, "load.dtsx"),
	}, files)
}

func TestCorpusFileRootPassesThrough(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "anything.xml")
	touch(t, path)

	corpus, err := New([]string{path}, nil, nil)
	require.NoError(t, err)

	files, err := corpus.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files, "explicit files bypass glob matching")
}

func TestCorpusMissingRoot(t *testing.T) {
	t.Parallel()

	corpus, err := New([]string{filepath.Join(t.TempDir(), "gone")}, nil, nil)
	require.NoError(t, err)
	_, err = corpus.Files()
	assert.Error(t, err)
}

func TestBadPattern(t *testing.T) {
	t.Parallel()

	_, err := New([]string{"."}, []string{"[unterminated"}, nil)
	assert.Error(t, err)
}
