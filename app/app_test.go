package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/config"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleInput struct{}

func (idleInput) IsKeyDown(common.Key) bool      { return false }
func (idleInput) MouseDelta() (float32, float32) { return 0, 0 }
func (idleInput) Focused() bool                  { return true }

// cursorWindow records cursor mode changes.
type cursorWindow struct {
	window.Window
	calls []string
}

func (w *cursorWindow) DisableCursor() { w.calls = append(w.calls, "disable") }
func (w *cursorWindow) EnableCursor()  { w.calls = append(w.calls, "enable") }

// recordingPresenter records the present modes a reload asks for.
type recordingPresenter struct {
	modes []renderer.PresentMode
}

func (p *recordingPresenter) SetPresentMode(mode renderer.PresentMode) error {
	p.modes = append(p.modes, mode)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assertVec(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d", i)
	}
}

func TestVariantTitles(t *testing.T) {
	assert.Equal(t, "Mini-Jeu 3D", VariantFixed.Title())
	assert.Equal(t, "Mini-Jeu 3D - Contrôle de la caméra", VariantOrbit.Title())
	assert.Equal(t, "fixed", VariantFixed.Name())
	assert.Equal(t, "orbit", VariantOrbit.Name())

	cfg, err := config.Default()
	require.NoError(t, err)
	assert.Equal(t, VariantOrbit.Title(), title(VariantOrbit, cfg))
	cfg.Window.Title = "custom"
	assert.Equal(t, "custom", title(VariantOrbit, cfg))
}

func TestParseArgsDefaults(t *testing.T) {
	cli, err := ParseArgs(VariantFixed, nil)
	require.NoError(t, err)
	assert.Equal(t, &CLI{}, cli)
}

func TestParseArgsFlags(t *testing.T) {
	cli, err := ParseArgs(VariantOrbit, []string{
		"-c", "a.yaml", "--config", "b.yaml",
		"--debug", "--profile", "--watch", "--vsync", "--msaa", "1",
	})
	require.NoError(t, err)

	a, err := filepath.Abs("a.yaml")
	require.NoError(t, err)
	b, err := filepath.Abs("b.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, cli.Config)
	assert.True(t, cli.Debug)
	assert.True(t, cli.Profile)
	assert.True(t, cli.Watch)
	assert.True(t, cli.VSync)
	assert.Equal(t, 1, cli.MSAA)
}

func TestParseArgsRejectsUnknownFlags(t *testing.T) {
	_, err := ParseArgs(VariantFixed, []string{"--fullscreen"})
	assert.Error(t, err)

	_, err = ParseArgs(VariantFixed, []string{"--msaa", "many"})
	assert.Error(t, err)
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fast.yaml", "player:\n  speed: 7\n")

	cfg, err := LoadConfig(&CLI{Config: []string{path}, VSync: true, MSAA: 1})
	require.NoError(t, err)
	assert.Equal(t, float32(7), cfg.Player.Speed)
	assert.True(t, cfg.Renderer.VSync)
	assert.Equal(t, 1, cfg.Renderer.MSAA)

	cfg, err = LoadConfig(&CLI{})
	require.NoError(t, err)
	assert.False(t, cfg.Renderer.VSync)
	assert.Equal(t, 4, cfg.Renderer.MSAA)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(&CLI{MSAA: 3})
	assert.ErrorContains(t, err, "renderer.msaa")

	_, err = LoadConfig(&CLI{Config: []string{filepath.Join(t.TempDir(), "missing.yaml")}})
	assert.Error(t, err)
}

func TestNewSceneFixed(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	s, err := NewScene(VariantFixed, cfg)
	require.NoError(t, err)

	cam := s.Camera()
	assertVec(t, mgl32.Vec3{0, 10, 10}, cam.Position(), 1e-6)
	assertVec(t, mgl32.Vec3{0, 0, 0}, cam.Target(), 1e-6)
	assert.InDelta(t, mgl32.DegToRad(45), cam.Fovy(), 1e-6)
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-6)
	assert.Equal(t, camera.ProjectionPerspective, cam.Projection())

	assertVec(t, mgl32.Vec3{0, 1, 0}, s.Player().Position(), 1e-6)
	assertVec(t, mgl32.Vec3{1, 1, 1}, s.Player().Size(), 1e-6)
	assert.Equal(t, common.Red, s.Player().Color())
	assert.Equal(t, common.Maroon, s.Player().WireColor())
	assertVec(t, mgl32.Vec3{20, 1, 20}, s.Platform().Size(), 1e-6)
	assert.Equal(t, common.LightGray, s.Platform().Color())
	assert.Equal(t, common.DarkGray, s.Platform().WireColor())
	assert.Equal(t, float32(5), s.Speed())

	// the fixed camera ignores the player
	s.Update(idleInput{}, 1.0/60)
	assertVec(t, mgl32.Vec3{0, 10, 10}, cam.Position(), 1e-6)
}

func TestNewSceneOrbitFirstFrame(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	s, err := NewScene(VariantOrbit, cfg)
	require.NoError(t, err)

	ctrl, ok := s.Camera().Controller().(camera.OrbitController)
	require.True(t, ok)
	assert.InDelta(t, 0, ctrl.Yaw(), 1e-6)
	assert.InDelta(t, mgl32.DegToRad(20), ctrl.Pitch(), 1e-6)

	s.Update(idleInput{}, 1.0/60)
	assertVec(t, mgl32.Vec3{0, 1, 0}, s.Camera().Target(), 1e-6)
	assertVec(t, mgl32.Vec3{0, 4.42, 9.40}, s.Camera().Position(), 1e-2)
}

func TestNewSceneOrthographic(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Camera.Projection = "orthographic"
	cfg.Camera.Fovy = 25

	s, err := NewScene(VariantFixed, cfg)
	require.NoError(t, err)
	assert.Equal(t, camera.ProjectionOrthographic, s.Camera().Projection())
	assert.Equal(t, float32(25), s.Camera().Fovy())
}

func TestApplyConfig(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	s, err := NewScene(VariantOrbit, cfg)
	require.NoError(t, err)
	e := engine.NewEngine(engine.WithScene(s))

	cfg.Player.Speed = 9
	cfg.Camera.Orbit.Sensitivity = 0.01
	cfg.Window.TargetFPS = 30
	cfg.Keys = map[string][]string{"forward": {"Z"}, "back": {"S"}, "left": {"Q"}, "right": {"D"}}
	require.NoError(t, applyConfig(e, cfg))

	assert.Equal(t, float32(9), s.Speed())
	assert.Equal(t, 30, e.TargetFPS())
	assert.Equal(t, []common.Key{common.KeyZ}, s.Bindings()["forward"])
	ctrl := s.Camera().Controller().(camera.OrbitController)
	assert.Equal(t, float32(0.01), ctrl.Sensitivity())

	cfg.Keys = map[string][]string{"jump": {"Space"}}
	assert.Error(t, applyConfig(e, cfg))
	assert.Equal(t, float32(9), s.Speed())
}

func TestReloaderAppliesRewrites(t *testing.T) {
	path := writeFile(t, t.TempDir(), "live.yaml", "player:\n  speed: 5\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	s, err := NewScene(VariantFixed, cfg)
	require.NoError(t, err)
	e := engine.NewEngine(engine.WithScene(s))

	watcher, err := config.NewWatcher(path)
	require.NoError(t, err)
	defer watcher.Close()
	presenter := &recordingPresenter{}
	r := &reloader{watcher: watcher, paths: []string{path}, engine: e, presenter: presenter}

	require.NoError(t, os.WriteFile(path, []byte("player:\n  speed: 8\nwindow:\n  target_fps: 120\nrenderer:\n  vsync: true\n"), 0644))
	require.Eventually(t, func() bool {
		r.tick(0)
		return s.Speed() == 8
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, 120, e.TargetFPS())
	require.NotEmpty(t, presenter.modes)
	assert.Equal(t, renderer.PresentModeVSync, presenter.modes[len(presenter.modes)-1])

	// an invalid rewrite keeps the running settings
	require.NoError(t, os.WriteFile(path, []byte("player:\n  speed: -1\n"), 0644))
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		r.tick(0)
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, float32(8), s.Speed())
}

func TestReloaderKeepsVSyncFlag(t *testing.T) {
	path := writeFile(t, t.TempDir(), "live.yaml", "renderer:\n  vsync: false\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	s, err := NewScene(VariantFixed, cfg)
	require.NoError(t, err)

	watcher, err := config.NewWatcher(path)
	require.NoError(t, err)
	defer watcher.Close()
	presenter := &recordingPresenter{}
	r := &reloader{
		watcher:   watcher,
		paths:     []string{path},
		engine:    engine.NewEngine(engine.WithScene(s)),
		presenter: presenter,
		vsync:     true,
	}

	require.NoError(t, os.WriteFile(path, []byte("renderer:\n  vsync: false\nplayer:\n  speed: 6\n"), 0644))
	require.Eventually(t, func() bool {
		r.tick(0)
		return len(presenter.modes) > 0
	}, 2*time.Second, 20*time.Millisecond)
	for _, mode := range presenter.modes {
		assert.Equal(t, renderer.PresentModeVSync, mode)
	}
}

func TestCaptureCursor(t *testing.T) {
	w := &cursorWindow{}
	restore := captureCursor(VariantFixed, w)
	restore()
	assert.Empty(t, w.calls, "the fixed camera leaves the cursor alone")

	restore = captureCursor(VariantOrbit, w)
	assert.Equal(t, []string{"disable"}, w.calls)
	restore()
	assert.Equal(t, []string{"disable", "enable"}, w.calls)
}

func TestPresentMode(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	assert.Equal(t, renderer.PresentModeUncapped, presentMode(cfg))
	cfg.Renderer.VSync = true
	assert.Equal(t, renderer.PresentModeVSync, presentMode(cfg))
}
