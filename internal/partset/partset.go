// Package partset owns the on-disk layout of a split file: the fixed part
// size, the two-digit part names, the _split directory naming convention and
// the arithmetic that decides part boundaries.
package partset

import (
	"errors"
	"fmt"
	"regexp"
)

// SplitSize keeps every full part under the 4 GiB single-file ceiling of
// FAT32 volumes.
const SplitSize int64 = 0xFFFF0000 // 4,294,901,760 bytes

// MaxParts is the ceiling imposed by the two-digit part names, 00 through 99.
const MaxParts = 100

const dirSuffix = "_split"

const partNamePattern = "^[0-9]{2}$"

var partNameRegex = regexp.MustCompile(partNamePattern)

var (
	ErrTooManyParts = errors.New("file needs more parts than the two-digit naming supports")
	ErrNotSplitDir  = errors.New("directory name does not follow the _split convention")
	ErrNoParts      = errors.New("directory contains no part files")
	ErrMissingPart  = errors.New("part file missing from sequence")
)

// Plan is the decided layout of one split: the size of every part in index
// order. Concatenating parts of these sizes reproduces FileSize exactly.
type Plan struct {
	FileSize  int64
	SplitSize int64
	Parts     []int64
}

// NewPlan computes part boundaries for a file of fileSize bytes. A file an
// exact multiple of splitSize gets only full parts and no zero-byte
// remainder. A file smaller than splitSize yields a single-part plan, which
// NeedsSplit reports as not worth splitting.
func NewPlan(fileSize, splitSize int64) (*Plan, error) {
	if splitSize <= 0 {
		return nil, fmt.Errorf("invalid split size: %d", splitSize)
	}
	if fileSize < 0 {
		return nil, fmt.Errorf("invalid file size: %d", fileSize)
	}

	splitNum := fileSize / splitSize
	remainder := fileSize - splitSize*splitNum

	if splitNum == 0 {
		return &Plan{
			FileSize:  fileSize,
			SplitSize: splitSize,
			Parts:     []int64{fileSize},
		}, nil
	}

	parts := make([]int64, 0, splitNum+1)
	for i := int64(0); i < splitNum; i++ {
		parts = append(parts, splitSize)
	}
	if remainder > 0 {
		parts = append(parts, remainder)
	}
	if len(parts) > MaxParts {
		return nil, fmt.Errorf("%w: %d parts for %d bytes", ErrTooManyParts, len(parts), fileSize)
	}

	return &Plan{
		FileSize:  fileSize,
		SplitSize: splitSize,
		Parts:     parts,
	}, nil
}

// NeedsSplit reports whether the file is large enough to split at all.
func (p *Plan) NeedsSplit() bool {
	return p.FileSize >= p.SplitSize
}

// PartName formats a part index as its fixed-width file name.
func PartName(index int) string {
	return fmt.Sprintf("%02d", index)
}

// IsPartName reports whether name is exactly two ASCII digits. The strict
// check keeps unrelated files in a split directory out of a join.
func IsPartName(name string) bool {
	return partNameRegex.MatchString(name)
}
