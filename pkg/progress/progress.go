// Package progress tracks bytes moved by a running operation and renders a
// single-line meter on a terminal. The operation updates a Meter inline; a
// Renderer owned by the caller repaints the line on a fixed interval.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const barWidth = 24

// Meter accumulates byte counts for the stage currently in flight. All
// methods are safe on a nil receiver so pipelines can run without one.
type Meter struct {
	mu      sync.Mutex
	stage   string
	current int64
	total   int64
}

func NewMeter() *Meter {
	return &Meter{}
}

// StartStage resets the meter for a new unit of work, typically one part.
func (m *Meter) StartStage(stage string, total int64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stage = stage
	m.current = 0
	m.total = total
}

func (m *Meter) Add(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current += n
}

// Snapshot returns the stage label and byte counts at this instant.
func (m *Meter) Snapshot() (stage string, current, total int64) {
	if m == nil {
		return "", 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage, m.current, m.total
}

// TeeWriter wraps w so every write is counted against the meter.
func (m *Meter) TeeWriter(w io.Writer) io.Writer {
	if m == nil {
		return w
	}
	return &countingWriter{meter: m, inner: w}
}

type countingWriter struct {
	meter *Meter
	inner io.Writer
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.inner.Write(p)
	c.meter.Add(int64(n))
	return n, err
}

func renderLine(stage string, current, total int64) string {
	var builder strings.Builder
	builder.WriteString(stage)
	builder.WriteByte(' ')

	if total > 0 {
		ratio := float64(current) / float64(total)
		if ratio > 1 {
			ratio = 1
		}
		filled := int(ratio*float64(barWidth) + 0.5)
		if filled > barWidth {
			filled = barWidth
		}
		builder.WriteByte('[')
		builder.WriteString(strings.Repeat("=", filled))
		builder.WriteString(strings.Repeat(" ", barWidth-filled))
		builder.WriteString("] ")
		builder.WriteString(fmt.Sprintf("%3d%% ", int(ratio*100+0.5)))
		builder.WriteString(HumanBytes(current))
		builder.WriteByte('/')
		builder.WriteString(HumanBytes(total))
	} else {
		builder.WriteString(HumanBytes(current))
		builder.WriteString(" transferred")
	}

	return builder.String()
}

// HumanBytes formats v with a binary-scaled unit suffix.
func HumanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
