// Package diskspace answers free-space queries for the volume holding a path.
package diskspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Free returns the number of bytes available on the volume containing path.
// If path is a file (or does not exist yet), the containing directory is
// queried instead.
func Free(path string) (uint64, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve path: %w", err)
	}

	dir := absPath
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	free, err := freeBytes(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to query free space for %s: %w", dir, err)
	}
	return free, nil
}
