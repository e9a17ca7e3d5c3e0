package fileutils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAndDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))

	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(file))
}

func TestEnsureDirectoryExists(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDirectoryExists(nested))
	assert.True(t, DirectoryExists(nested))
	require.NoError(t, EnsureDirectoryExists(nested))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.csv")
	require.NoError(t, WriteFile(path, []byte("hello"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteAtomic_FailureLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	err := WriteAtomic(path, 0644, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("encoder failed")
	})
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(data))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "temporary file must be cleaned up")
}
