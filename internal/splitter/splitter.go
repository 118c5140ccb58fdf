// Package splitter cuts an oversized file into FAT32-compatible parts,
// either by copying it out part by part or by trimming it in place.
package splitter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nspsplit/internal/partset"
	"nspsplit/pkg/diskspace"
	"nspsplit/pkg/fsutil"
	"nspsplit/pkg/progress"
	"nspsplit/pkg/transfer"
)

var (
	ErrSourceMissing     = errors.New("source file not found")
	ErrInsufficientSpace = errors.New("not enough free space")
)

type Config struct {
	SplitSize int64
	FreeBytes func(path string) (uint64, error)
}

func NewConfig() *Config {
	return &Config{
		SplitSize: partset.SplitSize,
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

// Result summarizes a finished split. NoOp means the file was already small
// enough and nothing was touched.
type Result struct {
	NoOp  bool
	Dir   string
	Parts int
	Bytes int64
}

func (s *Service) plan(path string) (*partset.Plan, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("failed to stat source file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source %s is a directory, not a file", path)
	}
	return partset.NewPlan(info.Size(), s.config.SplitSize)
}

// outputDirOrDefault resolves the part directory, following the naming
// convention unless the caller picked a location. An explicit location still
// gets the source extension appended so joining can find its way back.
func outputDirOrDefault(path, outputDir string) string {
	if outputDir == "" {
		return partset.SplitDirName(path)
	}
	if ext := filepath.Ext(path); ext != "" && !strings.HasSuffix(outputDir, ext) {
		outputDir += ext
	}
	return outputDir
}

// recreateDir makes dir fresh and empty. A leftover directory from an
// earlier run is destroyed, not merged into.
func recreateDir(dir string) error {
	if fsutil.IsDir(dir) {
		if err := fsutil.RemoveAllRetry(dir); err != nil {
			return fmt.Errorf("failed to remove existing directory %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// writePart fills one part file from src. With durable set the part is
// fsynced before close, which quick mode needs before it may truncate the
// source.
func (s *Service) writePart(path string, src io.Reader, size int64, meter *progress.Meter, durable bool) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create part file: %w", err)
	}

	if _, err := transfer.Copy(meter.TeeWriter(out), src, size); err != nil {
		out.Close()
		return fmt.Errorf("failed to fill part file: %w", err)
	}
	if durable {
		if err := out.Sync(); err != nil {
			out.Close()
			return fmt.Errorf("failed to flush part file: %w", err)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close part file: %w", err)
	}
	return nil
}
