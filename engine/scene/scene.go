package scene

import (
	"sync"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/game_object"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Drawer is the immediate-mode drawing surface a Scene renders through.
// The renderer implements it; tests record the calls instead.
type Drawer interface {
	BeginDrawing() error
	ClearBackground(c common.Color)
	BeginMode3D(cam camera.Camera)
	DrawCube(position, size mgl32.Vec3, c common.Color)
	DrawCubeWires(position, size mgl32.Vec3, c common.Color)
	EndMode3D()
	DrawFPS(x, y, fps int)
	EndDrawing() error
}

// Scene holds a static platform, a player cube moved by the keyboard and the camera looking at them.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Platform returns the static ground box.
	Platform() game_object.GameObject

	// Player returns the controllable cube.
	Player() game_object.GameObject

	// Speed returns the player speed in units per second.
	Speed() float32

	// SetSpeed changes the player speed.
	//
	// Parameters:
	//   - speed: units per second
	SetSpeed(speed float32)

	// Bindings returns the action to key mapping.
	Bindings() input.Bindings

	// SetBindings replaces the action to key mapping.
	//
	// Parameters:
	//   - bindings: the new mapping
	SetBindings(bindings input.Bindings)

	// SetBackground changes the clear color.
	//
	// Parameters:
	//   - c: the background color
	SetBackground(c common.Color)

	// Update advances the scene by one frame. With an orbit camera and a focused window the
	// mouse delta first rotates the orbit. The player then moves by the held actions scaled by
	// speed * dt, and an orbit camera re-targets the player. Camera matrices are recomputed last.
	//
	// Parameters:
	//   - in: the input snapshot of the frame
	//   - dt: the elapsed time of the previous frame in seconds
	Update(in input.State, dt float32)

	// Draw renders one frame: background, platform and player (solid then outlined) in 3D,
	// then the FPS label when enabled.
	//
	// Parameters:
	//   - d: the Drawer to issue calls on
	//   - fps: the frame rate shown by the label
	//
	// Returns:
	//   - error: the first error returned by BeginDrawing or EndDrawing
	Draw(d Drawer, fps int) error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name       string
	camera     camera.Camera
	platform   game_object.GameObject
	player     game_object.GameObject
	speed      float32
	movement   Movement
	bindings   input.Bindings
	background common.Color

	showFPS bool
	fpsX    int
	fpsY    int
}

var _ Scene = &scene{}

// NewScene creates a Scene. Defaults: a 20x1x20 LightGray platform outlined in DarkGray at the
// origin, a unit Red player outlined in Maroon at (0, 1, 0), speed 5, axis movement with the
// default bindings, a RayWhite background and the FPS label at (10, 10). Without WithCamera the
// camera is fixed at (0, 10, 10) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:   &sync.Mutex{},
		name: "main",
		platform: game_object.NewGameObject(
			game_object.WithName("platform"),
			game_object.WithSize(mgl32.Vec3{20, 1, 20}),
			game_object.WithColor(common.LightGray),
			game_object.WithWireColor(common.DarkGray),
		),
		player: game_object.NewGameObject(
			game_object.WithName("player"),
			game_object.WithPosition(mgl32.Vec3{0, 1, 0}),
			game_object.WithColor(common.Red),
			game_object.WithWireColor(common.Maroon),
		),
		speed:      5,
		movement:   AxisMovement{},
		bindings:   input.DefaultBindings(),
		background: common.RayWhite,
		showFPS:    true,
		fpsX:       10,
		fpsY:       10,
	}
	for _, option := range options {
		option(s)
	}
	if s.camera == nil {
		s.camera = camera.NewCamera(
			camera.WithController(camera.NewFixedController(mgl32.Vec3{0, 10, 10}, mgl32.Vec3{})),
		)
	}
	s.followPlayer()
	s.camera.Update()
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Platform() game_object.GameObject {
	return s.platform
}

func (s *scene) Player() game_object.GameObject {
	return s.player
}

func (s *scene) Speed() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

func (s *scene) SetSpeed(speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = speed
}

func (s *scene) Bindings() input.Bindings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bindings
}

func (s *scene) SetBindings(bindings input.Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings = bindings
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Update(in input.State, dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if orbit, ok := s.camera.Controller().(camera.OrbitController); ok && in.Focused() {
		orbit.ApplyMouseDelta(in.MouseDelta())
	}

	s.player.Translate(s.movement.Displacement(in, s.bindings, s.speed*dt))

	s.followPlayer()
	s.camera.Update()
}

// followPlayer moves the orbit pivot onto the player. A fixed camera keeps its own target.
func (s *scene) followPlayer() {
	if orbit, ok := s.camera.Controller().(camera.OrbitController); ok {
		orbit.SetTarget(s.player.Position())
	}
}

func (s *scene) Draw(d Drawer, fps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := d.BeginDrawing(); err != nil {
		return err
	}
	d.ClearBackground(s.background)

	d.BeginMode3D(s.camera)
	for _, obj := range []game_object.GameObject{s.platform, s.player} {
		if !obj.Enabled() {
			continue
		}
		d.DrawCube(obj.Position(), obj.Size(), obj.Color())
		if obj.Wired() {
			d.DrawCubeWires(obj.Position(), obj.Size(), obj.WireColor())
		}
	}
	d.EndMode3D()

	if s.showFPS {
		d.DrawFPS(s.fpsX, s.fpsY, fps)
	}
	return d.EndDrawing()
}
