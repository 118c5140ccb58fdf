package splitter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"nspsplit/internal/partset"
	"nspsplit/pkg/progress"
)

// SplitQuick splits without a full copy: the source is renamed into the part
// directory as part 00, then every later part is peeled off its tail, highest
// index first, truncating after each copy. Only one part's worth of free
// space is needed, at the price of destroying the original file.
//
// Each step is copy-then-truncate with the truncate strictly last. A crash
// between the two leaves the tail duplicated but never lost; a crash during
// the copy leaves a short part file that must be discarded, with the source
// still intact.
func (s *Service) SplitQuick(ctx context.Context, path string, meter *progress.Meter) (*Result, error) {
	plan, err := s.plan(path)
	if err != nil {
		return nil, err
	}
	if !plan.NeedsSplit() {
		s.logger.Info("File is under the split size and does not need splitting", slog.String("path", path))
		return &Result{NoOp: true, Bytes: plan.FileSize}, nil
	}

	free, err := s.config.FreeBytes(path)
	if err != nil {
		return nil, err
	}
	if free < uint64(s.config.SplitSize) {
		return nil, fmt.Errorf("%w: quick mode needs %s of working space, volume has %s",
			ErrInsufficientSpace, progress.HumanBytes(s.config.SplitSize), progress.HumanBytes(int64(free)))
	}

	dir := partset.SplitDirName(path)
	s.logger.Info("Splitting file in place",
		slog.String("path", path),
		slog.Int("parts", len(plan.Parts)),
		slog.String("dir", dir))

	if err := recreateDir(dir); err != nil {
		return nil, err
	}

	head := filepath.Join(dir, partset.PartName(0))
	if err := os.Rename(path, head); err != nil {
		return nil, fmt.Errorf("failed to move source into %s: %w", dir, err)
	}

	src, err := os.OpenFile(head, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen source: %w", err)
	}
	defer src.Close()

	end := plan.FileSize
	for i := len(plan.Parts) - 1; i >= 1; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		size := plan.Parts[i]
		name := partset.PartName(i)
		s.logger.Info("Starting part", slog.String("part", name), slog.Int64("size", size))
		meter.StartStage("part "+name, size)

		if _, err := src.Seek(-size, io.SeekEnd); err != nil {
			return nil, fmt.Errorf("failed to seek to part %s: %w", name, err)
		}
		if err := s.writePart(filepath.Join(dir, name), src, size, meter, true); err != nil {
			return nil, fmt.Errorf("part %s: %w", name, err)
		}

		end -= size
		if err := src.Truncate(end); err != nil {
			return nil, fmt.Errorf("failed to trim source after part %s: %w", name, err)
		}
		s.logger.Info("Part complete", slog.String("part", name))
	}

	// What is left of the moved source is exactly part 00.
	s.logger.Info("Starting part", slog.String("part", partset.PartName(0)), slog.Int64("size", plan.Parts[0]))
	s.logger.Info("Part complete", slog.String("part", partset.PartName(0)))
	s.logger.Info("File successfully split", slog.String("dir", dir))
	return &Result{Dir: dir, Parts: len(plan.Parts), Bytes: plan.FileSize}, nil
}
