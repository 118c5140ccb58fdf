package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

const DefaultInterval = 200 * time.Millisecond

// Renderer repaints the meter line until its context is cancelled, then
// paints one final state and moves to a fresh line.
type Renderer struct {
	meter         *Meter
	out           io.Writer
	interval      time.Duration
	lastLineWidth int
	painted       bool
}

func NewRenderer(meter *Meter, out io.Writer, interval time.Duration) *Renderer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Renderer{
		meter:    meter,
		out:      out,
		interval: interval,
	}
}

func (r *Renderer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.paint()
			if r.painted {
				fmt.Fprintln(r.out)
			}
			return
		case <-ticker.C:
			r.paint()
		}
	}
}

func (r *Renderer) paint() {
	stage, current, total := r.meter.Snapshot()
	if stage == "" {
		return
	}

	line := renderLine(stage, current, total)
	padding := ""
	if r.lastLineWidth > len(line) {
		padding = strings.Repeat(" ", r.lastLineWidth-len(line))
	}
	r.lastLineWidth = len(line)
	r.painted = true

	fmt.Fprintf(r.out, "\r%s%s", line, padding)
}
