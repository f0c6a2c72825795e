package profiler

import (
	"math"
	"time"
)

const (
	// fpsCaptureFrames is the number of frame time samples averaged into the displayed FPS.
	fpsCaptureFrames = 30
	// fpsAverageWindow is the wall time the samples cover.
	fpsAverageWindow = 500 * time.Millisecond
	fpsSampleStep    = fpsAverageWindow / fpsCaptureFrames
)

// FrameCounter computes a smoothed frames-per-second value for on-screen display.
// A frame time sample is taken at most every 1/60 s, and the FPS is the inverse of the
// average of the last 30 samples, so the readout covers roughly half a second.
type FrameCounter struct {
	history [fpsCaptureFrames]float64
	index   int
	filled  int
	sum     float64
	last    time.Time
	fps     int
}

// NewFrameCounter creates an empty FrameCounter that reports 0 until the first sample.
func NewFrameCounter() *FrameCounter {
	return &FrameCounter{}
}

// Tick records the duration of the frame that just ended.
//
// Parameters:
//   - now: the current time
//   - frameTime: the duration of the previous frame in seconds
//
// Returns:
//   - int: the smoothed frames per second
func (f *FrameCounter) Tick(now time.Time, frameTime float32) int {
	if frameTime <= 0 {
		return f.fps
	}
	if !f.last.IsZero() && now.Sub(f.last) <= fpsSampleStep {
		return f.fps
	}
	f.last = now

	f.sum -= f.history[f.index]
	f.history[f.index] = float64(frameTime)
	f.sum += f.history[f.index]
	f.index = (f.index + 1) % fpsCaptureFrames
	if f.filled < fpsCaptureFrames {
		f.filled++
	}

	f.fps = int(math.Round(float64(f.filled) / f.sum))
	return f.fps
}

// FPS returns the last computed frames per second.
func (f *FrameCounter) FPS() int {
	return f.fps
}
