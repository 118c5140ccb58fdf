package diskspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeOnDirectory(t *testing.T) {
	free, err := Free(t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}

func TestFreeOnFileUsesContainingVolume(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.bin")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	free, err := Free(file)
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}

func TestFreeOnMissingPathUsesParent(t *testing.T) {
	free, err := Free(filepath.Join(t.TempDir(), "not-created-yet"))
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}
