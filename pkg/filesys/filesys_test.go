package filesys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateDirCreatesMissingPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, CreateDir(dir, 0755, true))

	stat, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, stat.IsDir())
}

func TestCreateDirWithoutForceFailsIfExists(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, CreateDir(dir, 0755, false))
}

func TestCreateDirWithForceSucceedsIfExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CreateDir(dir, 0755, true))
}

func TestCreateDirRejectsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := CreateDir(path, 0755, true)
	require.ErrorIs(t, err, ErrIsNotDir)
}
