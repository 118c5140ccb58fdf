package partset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SplitDirName derives the part directory for a source file: the final
// extension is lifted out and _split is wedged in front of it, so game.nsp
// becomes game_split.nsp.
func SplitDirName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + dirSuffix + ext
}

// CombinedName reverses SplitDirName: given a part directory it returns the
// path the joined file should be written to, next to the directory. A
// directory that does not carry the _split marker is rejected rather than
// guessed at.
func CombinedName(dir string) (string, error) {
	dir = filepath.Clean(dir)
	base := filepath.Base(dir)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := strings.TrimSuffix(stem, dirSuffix)
	if name == stem || name == "" {
		return "", fmt.Errorf("%w: %s", ErrNotSplitDir, base)
	}

	return filepath.Join(filepath.Dir(dir), name+ext), nil
}

// Part is one entry found in a split directory.
type Part struct {
	Index int
	Name  string
	Size  int64
}

// ScanParts lists the part files of dir in ascending index order and returns
// them with their total size. Entries that are not exactly two digits are
// ignored. Indexes must be contiguous from 00; a gap means a part is missing
// and the set cannot be joined.
func ScanParts(dir string) ([]Part, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var parts []Part
	for _, entry := range entries {
		if entry.IsDir() || !IsPartName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		index, _ := strconv.Atoi(entry.Name())
		parts = append(parts, Part{
			Index: index,
			Name:  entry.Name(),
			Size:  info.Size(),
		})
	}

	if len(parts) == 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoParts, dir)
	}

	// Zero-padded names sort the same lexicographically and numerically.
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].Name < parts[j].Name
	})

	var total int64
	for i, part := range parts {
		if part.Index != i {
			return nil, 0, fmt.Errorf("%w: expected %s, found %s", ErrMissingPart, PartName(i), part.Name)
		}
		total += part.Size
	}

	return parts, total, nil
}
