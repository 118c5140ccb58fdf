// Package joiner reassembles a split directory back into the original file.
package joiner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"nspsplit/internal/partset"
	"nspsplit/pkg/diskspace"
	"nspsplit/pkg/progress"
	"nspsplit/pkg/transfer"
)

var (
	ErrDirMissing        = errors.New("split directory not found")
	ErrInsufficientSpace = errors.New("not enough free space")
)

type Config struct {
	FreeBytes func(path string) (uint64, error)
}

func NewConfig() *Config {
	return &Config{
		FreeBytes: diskspace.Free,
	}
}

type Service struct {
	config *Config
	logger *slog.Logger
}

func NewService(config *Config, logger *slog.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Result summarizes a finished join. NoOp means the combined file already
// existed at the expected size and nothing was written.
type Result struct {
	NoOp   bool
	Output string
	Parts  int
	Bytes  int64
}

// Join concatenates the parts of dir, ascending, into the file the directory
// was split from. The parts are only read. The output is built in a hidden
// staging file and renamed into place once complete, so an interrupted join
// never leaves a half-written file at the destination path.
func (s *Service) Join(ctx context.Context, dir string, meter *progress.Meter) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirMissing, dir)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirMissing, dir)
	}

	output, err := partset.CombinedName(dir)
	if err != nil {
		return nil, err
	}

	parts, total, err := partset.ScanParts(dir)
	if err != nil {
		return nil, err
	}

	if existing, err := os.Stat(output); err == nil && existing.Size() == total {
		s.logger.Info("Combined file already exists at the expected size, nothing to do",
			slog.String("output", output))
		return &Result{NoOp: true, Output: output, Parts: len(parts), Bytes: total}, nil
	}

	free, err := s.config.FreeBytes(output)
	if err != nil {
		return nil, err
	}
	if free < uint64(total) {
		return nil, fmt.Errorf("%w: joining needs %s, volume has %s",
			ErrInsufficientSpace, progress.HumanBytes(total), progress.HumanBytes(int64(free)))
	}

	s.logger.Info("Joining parts",
		slog.String("dir", dir),
		slog.Int("parts", len(parts)),
		slog.String("output", output))

	staging := filepath.Join(filepath.Dir(output), "."+filepath.Base(output)+"."+uuid.NewString()+".partial")
	out, err := os.Create(staging)
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	defer func() {
		out.Close()
		os.Remove(staging) // gone already if the rename went through
	}()

	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Info("Appending part", slog.String("part", part.Name), slog.Int64("size", part.Size))
		meter.StartStage("part "+part.Name, part.Size)

		if err := s.appendPart(out, filepath.Join(dir, part.Name), part.Size, meter); err != nil {
			return nil, fmt.Errorf("part %s: %w", part.Name, err)
		}
	}

	if err := out.Sync(); err != nil {
		return nil, fmt.Errorf("failed to flush combined file: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close combined file: %w", err)
	}
	if err := os.Rename(staging, output); err != nil {
		return nil, fmt.Errorf("failed to finalize combined file: %w", err)
	}

	s.logger.Info("Parts successfully joined",
		slog.String("output", output),
		slog.String("size", progress.HumanBytes(total)))
	return &Result{Output: output, Parts: len(parts), Bytes: total}, nil
}

func (s *Service) appendPart(dst io.Writer, path string, size int64, meter *progress.Meter) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open part: %w", err)
	}
	defer f.Close()

	if _, err := transfer.Copy(meter.TeeWriter(dst), f, size); err != nil {
		return fmt.Errorf("failed to append part: %w", err)
	}
	return nil
}
