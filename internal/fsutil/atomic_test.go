package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesNewFile(t *testing.T) {
	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "out.js")

	// --- Act ---
	err := WriteFileAtomic(path, []byte("const x = 1;\n"), 0o644)

	// --- Assert ---
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\n", string(data))
}

func TestWriteFileAtomic_PreservesExistingMode(t *testing.T) {
	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "out.sh")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o755))

	// --- Act ---
	err := WriteFileAtomic(path, []byte("new"), 0o644)

	// --- Assert ---
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileAtomic_LeavesNoTempFileBehind(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "out.js")

	// --- Act ---
	require.NoError(t, WriteFileAtomic(path, []byte("content"), 0o644))

	// --- Assert ---
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.js", entries[0].Name())
}
