package splitter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nspsplit/internal/partset"
	"nspsplit/pkg/progress"
)

// SplitCopy reads the source once, front to back, and writes each part into
// a fresh directory. The source is never modified, which is why the free
// space demanded up front is a conservative twice the file size.
func (s *Service) SplitCopy(ctx context.Context, path, outputDir string, meter *progress.Meter) (*Result, error) {
	plan, err := s.plan(path)
	if err != nil {
		return nil, err
	}
	if !plan.NeedsSplit() {
		s.logger.Info("File is under the split size and does not need splitting", slog.String("path", path))
		return &Result{NoOp: true, Bytes: plan.FileSize}, nil
	}

	dir := outputDirOrDefault(path, outputDir)

	free, err := s.config.FreeBytes(dir)
	if err != nil {
		return nil, err
	}
	if need := 2 * uint64(plan.FileSize); free < need {
		return nil, fmt.Errorf("%w: copy mode needs %s, volume has %s",
			ErrInsufficientSpace, progress.HumanBytes(2*plan.FileSize), progress.HumanBytes(int64(free)))
	}

	s.logger.Info("Splitting file",
		slog.String("path", path),
		slog.Int("parts", len(plan.Parts)),
		slog.String("dir", dir))

	if err := recreateDir(dir); err != nil {
		return nil, err
	}

	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	for i, size := range plan.Parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := partset.PartName(i)
		s.logger.Info("Starting part", slog.String("part", name), slog.Int64("size", size))
		meter.StartStage("part "+name, size)

		if err := s.writePart(filepath.Join(dir, name), src, size, meter, false); err != nil {
			return nil, fmt.Errorf("part %s: %w", name, err)
		}
		s.logger.Info("Part complete", slog.String("part", name))
	}

	s.logger.Info("File successfully split", slog.String("dir", dir))
	return &Result{Dir: dir, Parts: len(plan.Parts), Bytes: plan.FileSize}, nil
}
