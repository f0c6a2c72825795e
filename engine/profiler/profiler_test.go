package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFrameCounterSteadyRate(t *testing.T) {
	fc := NewFrameCounter()
	assert.Equal(t, 0, fc.FPS())

	now := time.Unix(0, 0)
	for range 120 {
		now = now.Add(time.Second / 60)
		fc.Tick(now, 1.0/60.0)
	}
	assert.Equal(t, 60, fc.FPS())
}

func TestFrameCounterAveragesAfterRateChange(t *testing.T) {
	fc := NewFrameCounter()
	now := time.Unix(0, 0)
	for range 60 {
		now = now.Add(time.Second / 60)
		fc.Tick(now, 1.0/60.0)
	}
	for range 60 {
		now = now.Add(time.Second / 30)
		fc.Tick(now, 1.0/30.0)
	}
	assert.Equal(t, 30, fc.FPS())
}

func TestFrameCounterIgnoresZeroFrameTime(t *testing.T) {
	fc := NewFrameCounter()
	assert.Equal(t, 0, fc.Tick(time.Unix(1, 0), 0))
}

func TestFrameCounterThrottlesSamples(t *testing.T) {
	fc := NewFrameCounter()
	now := time.Unix(0, 0)
	first := fc.Tick(now, 1.0/60.0)
	// a sample less than 1/60 s later is ignored
	assert.Equal(t, first, fc.Tick(now.Add(time.Millisecond), 1.0/10.0))
}

func TestProfilerLogsOncePerInterval(t *testing.T) {
	var out bytes.Buffer
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := NewProfiler(
		WithLogger(zerolog.New(&out)),
		WithClock(clock.now),
		WithInterval(time.Second),
	)

	for range 49 {
		clock.advance(20 * time.Millisecond)
		require.False(t, p.Tick())
	}
	clock.advance(20 * time.Millisecond)
	require.True(t, p.Tick())

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "profiler", line["component"])
	assert.InDelta(t, 50, line["fps"], 0.01)
	assert.Contains(t, line, "heap_mb")

	clock.advance(20 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestProfilerExtraFields(t *testing.T) {
	var out bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithLogger(zerolog.New(&out)),
		WithClock(clock.now),
		WithFields(func(e *zerolog.Event) {
			e.Int("cubes_drawn", 4).Int("cubes_culled", 1)
		}),
	)

	clock.advance(time.Second)
	require.True(t, p.Tick())

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.EqualValues(t, 4, line["cubes_drawn"])
	assert.EqualValues(t, 1, line["cubes_culled"])
}
