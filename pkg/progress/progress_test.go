package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeterSnapshot(t *testing.T) {
	m := NewMeter()
	m.StartStage("part 01", 100)
	m.Add(30)
	m.Add(20)

	stage, current, total := m.Snapshot()
	assert.Equal(t, "part 01", stage)
	assert.Equal(t, int64(50), current)
	assert.Equal(t, int64(100), total)

	m.StartStage("part 02", 64)
	_, current, total = m.Snapshot()
	assert.Equal(t, int64(0), current, "a new stage resets the count")
	assert.Equal(t, int64(64), total)
}

func TestMeterIgnoresNonPositive(t *testing.T) {
	m := NewMeter()
	m.StartStage("x", 10)
	m.Add(0)
	m.Add(-5)

	_, current, _ := m.Snapshot()
	assert.Equal(t, int64(0), current)
}

func TestTeeWriterCounts(t *testing.T) {
	m := NewMeter()
	m.StartStage("x", 10)

	var buf bytes.Buffer
	w := m.TeeWriter(&buf)
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", buf.String())

	_, current, _ := m.Snapshot()
	assert.Equal(t, int64(5), current)
}

func TestNilMeterIsSafe(t *testing.T) {
	var m *Meter
	m.StartStage("x", 10)
	m.Add(5)

	stage, current, total := m.Snapshot()
	assert.Equal(t, "", stage)
	assert.Equal(t, int64(0), current)
	assert.Equal(t, int64(0), total)

	var buf bytes.Buffer
	w := m.TeeWriter(&buf)
	_, err := w.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", buf.String())
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		value    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{4294901760, "4.0 GB"},
		{1 << 40, "1.0 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HumanBytes(tt.value), "value %d", tt.value)
	}
}

func TestRenderLine(t *testing.T) {
	line := renderLine("part 03", 50, 100)
	assert.Contains(t, line, "part 03")
	assert.Contains(t, line, "50%")

	line = renderLine("scan", 2048, 0)
	assert.Contains(t, line, "2.0 KB transferred")
}
