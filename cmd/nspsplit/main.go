package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"nspsplit/internal/joiner"
	"nspsplit/internal/splitter"
	"nspsplit/pkg/config"
	"nspsplit/pkg/logger"
	"nspsplit/pkg/progress"
)

var usage = func() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <file|split-dir>\n\nSplit files into FAT32-compatible parts, or join them back.\n\n", path.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	quick := flag.Bool("q", false, "split in place without a full copy; needs only 4GiB of free space")
	outputDir := flag.String("o", "", "alternative output directory (copy mode only)")
	join := flag.Bool("j", false, "join a split directory back into one file")
	noProgress := flag.Bool("no-progress", config.GetEnvBool("NO_PROGRESS", false), "disable the progress meter")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return 2
	}
	if *join && (*quick || *outputDir != "") {
		fmt.Fprintln(os.Stderr, "-j cannot be combined with -q or -o")
		return 2
	}
	if *quick && *outputDir != "" {
		fmt.Fprintln(os.Stderr, "-q cannot be combined with -o")
		return 2
	}
	target := flag.Arg(0)

	lg := logger.GetLogger()

	ctx, cancel := context.WithCancelCause(context.Background())
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		lg.Warn("Terminating on signal")
		cancel(errors.New("terminated by signal"))
	}()

	meter := progress.NewMeter()
	interval := time.Duration(config.GetEnvInt("PROGRESS_INTERVAL_MS", 200)) * time.Millisecond

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	renderCtx, stopRender := context.WithCancel(context.Background())

	g.Go(func() error {
		defer stopRender()
		return dispatch(gctx, lg, meter, target, *join, *quick, *outputDir)
	})
	if !*noProgress {
		g.Go(func() error {
			progress.NewRenderer(meter, os.Stdout, interval).Run(renderCtx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lg.Error("Operation failed", slog.Any("error", err))
		return 1
	}

	lg.Info("Done", slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return 0
}

func dispatch(ctx context.Context, lg *slog.Logger, meter *progress.Meter, target string, join, quick bool, outputDir string) error {
	switch {
	case join:
		_, err := joiner.NewService(joiner.NewConfig(), lg).Join(ctx, target, meter)
		return err
	case quick:
		_, err := splitter.NewService(splitter.NewConfig(), lg).SplitQuick(ctx, target, meter)
		return err
	default:
		_, err := splitter.NewService(splitter.NewConfig(), lg).SplitCopy(ctx, target, outputDir, meter)
		return err
	}
}
