package engine

import (
	"context"
	"errors"
	"time"

	"github.com/Carmen-Shannon/mini-jeu-3d/engine/profiler"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/scene"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/window"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Surface is the drawing target the engine renders the scene to.
// renderer.Renderer implements it.
type Surface interface {
	scene.Drawer

	// Resize reconfigures the target after a framebuffer size change.
	Resize(width, height int) error
}

// engine implements the Engine interface.
// Everything runs on the calling goroutine, which must be the main OS thread for GLFW.
type engine struct {
	window  window.Window
	scene   scene.Scene
	surface Surface

	profiler         *profiler.Profiler
	profilingEnabled bool
	frames           *profiler.FrameCounter

	targetFPS int
	limiter   *rate.Limiter

	tickCallback func(deltaTime float32)

	now func() time.Time
}

// Engine is the main entry point for the engine.
// It owns the frame loop: poll window events, update the scene, draw it, then wait for the next frame.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene updated and drawn each frame.
	//
	// Returns:
	//   - scene.Scene: the scene, or nil if none was set
	Scene() scene.Scene

	// SetTargetFPS changes the frame rate cap. Takes effect on the next frame.
	//
	// Parameters:
	//   - fps: target frames per second, 0 or less for uncapped
	SetTargetFPS(fps int)

	// TargetFPS returns the frame rate cap, 0 when uncapped.
	TargetFPS() int

	// SetTickCallback registers a function called each frame before the scene update.
	//
	// Parameters:
	//   - callback: function receiving the previous frame's duration in seconds
	SetTickCallback(callback func(deltaTime float32))

	// FPS returns the smoothed frame rate shown by the overlay.
	FPS() int

	// Run drives the frame loop until the window closes or ctx is cancelled.
	//
	// Parameters:
	//   - ctx: cancelling it stops the loop after the current frame
	//
	// Returns:
	//   - error: error if the engine has no window
	Run(ctx context.Context) error
}

// NewEngine creates a new Engine instance with the provided options.
// The frame rate defaults to 60 FPS.
//
// Parameters:
//   - options: functional options for engine configuration (window, scene, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler:  profiler.NewProfiler(),
		frames:    profiler.NewFrameCounter(),
		targetFPS: 60,
		now:       time.Now,
	}

	for _, opt := range options {
		opt(e)
	}
	e.limiter = rate.NewLimiter(frameLimit(e.targetFPS), 1)

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

// frameLimit converts a target FPS into a limiter rate.
func frameLimit(fps int) rate.Limit {
	if fps <= 0 {
		return rate.Inf
	}
	return rate.Limit(fps)
}

// resize propagates a framebuffer size change to the surface and the camera aspect ratio.
func (e *engine) resize(width, height int) {
	log.Debug().Int("width", width).Int("height", height).Msg("window resized")
	if e.surface != nil {
		if err := e.surface.Resize(width, height); err != nil {
			log.Error().Err(err).Msg("surface resize failed")
		}
	}
	if e.scene != nil && width > 0 && height > 0 {
		e.scene.Camera().SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Run(ctx context.Context) error {
	if e.window == nil {
		return errors.New("engine has no window")
	}

	last := e.now()
	var dt float32

	for e.window.IsRunning() && ctx.Err() == nil {
		e.window.PollEvents()
		if !e.window.IsRunning() {
			break
		}

		if e.tickCallback != nil {
			e.tickCallback(dt)
		}
		if e.scene != nil {
			e.scene.Update(e.window, dt)
			if e.surface != nil {
				if err := e.scene.Draw(e.surface, e.frames.FPS()); err != nil {
					log.Warn().Err(err).Msg("frame skipped")
				}
			}
		}

		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick()
		}

		if err := e.limiter.Wait(ctx); err != nil {
			break
		}

		now := e.now()
		dt = float32(now.Sub(last).Seconds())
		last = now
		e.frames.Tick(now, dt)
	}
	return nil
}

func (e *engine) SetTargetFPS(fps int) {
	e.targetFPS = max(fps, 0)
	e.limiter.SetLimit(frameLimit(e.targetFPS))
}

func (e *engine) TargetFPS() int {
	return e.targetFPS
}

// SetTickCallback registers the function called each frame before the scene update.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) FPS() int {
	return e.frames.FPS()
}
