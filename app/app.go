// Package app assembles the demo programs: configuration, window, renderer, scene and engine.
package app

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/mini-jeu-3d/config"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/game_object"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/profiler"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/scene"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Variant selects which of the two demo programs runs.
type Variant int

const (
	// VariantFixed looks at the platform from a fixed point; WASD moves the cube along the world axes.
	VariantFixed Variant = iota
	// VariantOrbit orbits the cube with the mouse; WASD moves relative to the camera heading.
	VariantOrbit
)

// Name returns the short program name used on the command line.
func (v Variant) Name() string {
	switch v {
	case VariantOrbit:
		return "orbit"
	default:
		return "fixed"
	}
}

// Title returns the program's window title.
func (v Variant) Title() string {
	switch v {
	case VariantOrbit:
		return "Mini-Jeu 3D - Contrôle de la caméra"
	default:
		return "Mini-Jeu 3D"
	}
}

// title returns the configured title override, or the variant's own title.
func title(v Variant, cfg *config.Config) string {
	if cfg.Window.Title != "" {
		return cfg.Window.Title
	}
	return v.Title()
}

// NewScene builds the variant's scene from the configuration.
// The camera aspect ratio is taken from the configured window size.
//
// Parameters:
//   - v: the program variant
//   - cfg: a validated configuration
//
// Returns:
//   - scene.Scene: the scene, camera already aimed
//   - error: error if the key bindings cannot be resolved
func NewScene(v Variant, cfg *config.Config) (scene.Scene, error) {
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, fmt.Errorf("could not resolve key bindings: %w", err)
	}

	player := game_object.NewGameObject(
		game_object.WithName("player"),
		game_object.WithPosition(cfg.Player.Start.Vec()),
		game_object.WithSize(cfg.Player.Size.Vec()),
		game_object.WithColor(cfg.Player.Color.Color),
		game_object.WithWireColor(cfg.Player.WireColor.Color),
	)
	platform := game_object.NewGameObject(
		game_object.WithName("platform"),
		game_object.WithPosition(cfg.Platform.Position.Vec()),
		game_object.WithSize(cfg.Platform.Size.Vec()),
		game_object.WithColor(cfg.Platform.Color.Color),
		game_object.WithWireColor(cfg.Platform.WireColor.Color),
	)

	opts := []scene.SceneBuilderOption{
		scene.WithName(v.Name()),
		scene.WithPlatform(platform),
		scene.WithPlayer(player),
		scene.WithSpeed(cfg.Player.Speed),
		scene.WithBindings(bindings),
		scene.WithBackground(cfg.Scene.Background.Color),
		scene.WithFPSLabel(cfg.HUD.ShowFPS, cfg.HUD.FPSX, cfg.HUD.FPSY),
	}

	var ctrl camera.CameraController
	switch v {
	case VariantOrbit:
		orbit := camera.NewOrbitController(
			camera.WithDistance(cfg.Camera.Orbit.Distance),
			camera.WithYaw(mgl32.DegToRad(cfg.Camera.Orbit.Yaw)),
			camera.WithPitch(mgl32.DegToRad(cfg.Camera.Orbit.Pitch)),
			camera.WithPitchLimit(mgl32.DegToRad(cfg.Camera.Orbit.PitchLimit)),
			camera.WithSensitivity(cfg.Camera.Orbit.Sensitivity),
			camera.WithTarget(player.Position()),
		)
		ctrl = orbit
		opts = append(opts, scene.WithMovement(scene.NewViewRelativeMovement(orbit)))
	default:
		ctrl = camera.NewFixedController(cfg.Camera.Fixed.Position.Vec(), cfg.Camera.Fixed.Target.Vec())
		opts = append(opts, scene.WithMovement(scene.AxisMovement{}))
	}

	opts = append(opts, scene.WithCamera(newCamera(cfg, ctrl)))
	return scene.NewScene(opts...), nil
}

func newCamera(cfg *config.Config, ctrl camera.CameraController) camera.Camera {
	projection := camera.ProjectionPerspective
	fovy := mgl32.DegToRad(cfg.Camera.Fovy)
	if cfg.Camera.Projection == "orthographic" {
		projection = camera.ProjectionOrthographic
		fovy = cfg.Camera.Fovy
	}
	return camera.NewCamera(
		camera.WithProjection(projection),
		camera.WithFovy(fovy),
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithController(ctrl),
	)
}

// applyConfig pushes the settings that can change while running onto a live engine:
// player speed, key bindings, mouse sensitivity and frame rate cap.
func applyConfig(e engine.Engine, cfg *config.Config) error {
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	if s := e.Scene(); s != nil {
		s.SetSpeed(cfg.Player.Speed)
		s.SetBindings(bindings)
		if orbit, ok := s.Camera().Controller().(camera.OrbitController); ok {
			orbit.SetSensitivity(cfg.Camera.Orbit.Sensitivity)
		}
	}
	e.SetTargetFPS(cfg.Window.TargetFPS)
	return nil
}

// presentModeSetter is the part of the renderer a reload can reconfigure.
type presentModeSetter interface {
	SetPresentMode(mode renderer.PresentMode) error
}

// presentMode maps renderer.vsync onto a present mode.
func presentMode(cfg *config.Config) renderer.PresentMode {
	if cfg.Renderer.VSync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}

// reloader re-reads the configuration files whenever the watcher reports a change.
type reloader struct {
	watcher *config.Watcher
	paths   []string
	engine  engine.Engine

	// presenter, when set, follows renderer.vsync.
	presenter presentModeSetter
	// vsync is the --vsync flag, which wins over the files.
	vsync bool
}

func (r *reloader) tick(float32) {
	changed, err := r.watcher.Poll()
	if err != nil {
		log.Warn().Err(err).Msg("config watcher error")
	}
	if len(changed) == 0 {
		return
	}

	cfg, err := config.Load(r.paths...)
	if err != nil {
		log.Error().Err(err).Strs("files", changed).Msg("config reload rejected, keeping current settings")
		return
	}
	cfg.Renderer.VSync = cfg.Renderer.VSync || r.vsync
	if err := applyConfig(r.engine, cfg); err != nil {
		log.Error().Err(err).Msg("config reload failed")
		return
	}
	if r.presenter != nil {
		if err := r.presenter.SetPresentMode(presentMode(cfg)); err != nil {
			log.Error().Err(err).Msg("could not change present mode")
		}
	}
	log.Info().
		Strs("files", changed).
		Float32("speed", cfg.Player.Speed).
		Int("target_fps", cfg.Window.TargetFPS).
		Bool("vsync", cfg.Renderer.VSync).
		Msg("config reloaded")
}

// captureCursor locks the cursor to the window for the orbit variant.
// The returned function gives the cursor back and must run before the window closes.
func captureCursor(v Variant, win window.Window) (restore func()) {
	if v != VariantOrbit {
		return func() {}
	}
	win.DisableCursor()
	return win.EnableCursor
}

// Options carries the command line switches that are not part of the configuration files.
type Options struct {
	// ConfigPaths are the overlay files, re-read on change when Watch is set.
	ConfigPaths []string
	Profile     bool
	Watch       bool
	// VSync is set when the command line forced vsync on.
	VSync bool
}

// Run opens the window and runs the variant until the window closes or ctx is cancelled.
//
// Parameters:
//   - ctx: cancelling it ends the frame loop
//   - v: the program variant
//   - cfg: a validated configuration
//   - opts: profiling and hot reload switches
//
// Returns:
//   - error: error if the window, GPU, scene or config watcher cannot be set up
func Run(ctx context.Context, v Variant, cfg *config.Config, opts Options) error {
	win, err := window.NewWindow(
		window.WithTitle(title(v, cfg)),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, 0, 0),
		window.WithResizable(cfg.Window.Resizable),
	)
	if err != nil {
		return fmt.Errorf("could not open window: %w", err)
	}
	defer func() {
		if err := win.Close(); err != nil {
			log.Warn().Err(err).Msg("window close failed")
		}
	}()

	msaa, err := renderer.ParseMSAA(cfg.Renderer.MSAA)
	if err != nil {
		return err
	}
	mode := presentMode(cfg)
	rend, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithFrustumCulling(cfg.Renderer.Cull),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
		renderer.WithFontScale(cfg.HUD.FontScale),
	)
	if err != nil {
		return fmt.Errorf("could not initialize renderer: %w", err)
	}
	defer rend.Release()

	s, err := NewScene(v, cfg)
	if err != nil {
		return err
	}
	if w, h := win.Width(), win.Height(); w > 0 && h > 0 {
		s.Camera().SetAspect(float32(w) / float32(h))
	}

	prof := profiler.NewProfiler(profiler.WithFields(func(ev *zerolog.Event) {
		stats := rend.Stats()
		ev.Int("cubes_drawn", stats.Drawn).Int("cubes_culled", stats.Culled)
	}))
	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(s),
		engine.WithSurface(rend),
		engine.WithTargetFPS(cfg.Window.TargetFPS),
		engine.WithProfiler(prof),
		engine.WithProfiling(opts.Profile),
	)

	if opts.Watch && len(opts.ConfigPaths) > 0 {
		watcher, err := config.NewWatcher(opts.ConfigPaths...)
		if err != nil {
			return fmt.Errorf("could not watch config files: %w", err)
		}
		defer watcher.Close()
		r := &reloader{watcher: watcher, paths: opts.ConfigPaths, engine: e, presenter: rend, vsync: opts.VSync}
		e.SetTickCallback(r.tick)
		log.Info().Strs("files", opts.ConfigPaths).Msg("watching config files")
	}

	defer captureCursor(v, win)()

	log.Info().
		Str("title", title(v, cfg)).
		Int("width", win.Width()).
		Int("height", win.Height()).
		Int("target_fps", cfg.Window.TargetFPS).
		Stringer("present_mode", mode).
		Msg("starting")

	err = e.Run(ctx)
	log.Info().Msg("shutting down")
	return err
}
