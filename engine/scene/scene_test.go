package scene

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	down    map[common.Key]bool
	dx, dy  float32
	focused bool
}

func newFakeInput(keys ...common.Key) *fakeInput {
	in := &fakeInput{down: make(map[common.Key]bool), focused: true}
	for _, k := range keys {
		in.down[k] = true
	}
	return in
}

func (f *fakeInput) IsKeyDown(key common.Key) bool  { return f.down[key] }
func (f *fakeInput) MouseDelta() (float32, float32) { return f.dx, f.dy }
func (f *fakeInput) Focused() bool                  { return f.focused }

var _ input.State = &fakeInput{}

func newOrbitScene() (Scene, camera.OrbitController) {
	ctrl := camera.NewOrbitController()
	s := NewScene(
		WithCamera(camera.NewCamera(camera.WithController(ctrl))),
		WithMovement(NewViewRelativeMovement(ctrl)),
	)
	return s, ctrl
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestAxisMovement(t *testing.T) {
	cases := []struct {
		name string
		keys []common.Key
		want mgl32.Vec3
	}{
		{name: "none", want: mgl32.Vec3{0, 1, 0}},
		{name: "W", keys: []common.Key{common.KeyW}, want: mgl32.Vec3{0, 1, 5}},
		{name: "S", keys: []common.Key{common.KeyS}, want: mgl32.Vec3{0, 1, -5}},
		{name: "A", keys: []common.Key{common.KeyA}, want: mgl32.Vec3{5, 1, 0}},
		{name: "D", keys: []common.Key{common.KeyD}, want: mgl32.Vec3{-5, 1, 0}},
		{name: "W+D", keys: []common.Key{common.KeyW, common.KeyD}, want: mgl32.Vec3{-5, 1, 5}},
		{name: "W+S cancel", keys: []common.Key{common.KeyW, common.KeyS}, want: mgl32.Vec3{0, 1, 0}},
		{name: "arrow alias", keys: []common.Key{common.KeyUp}, want: mgl32.Vec3{0, 1, 5}},
		{name: "alias and key count once", keys: []common.Key{common.KeyW, common.KeyUp}, want: mgl32.Vec3{0, 1, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScene()
			s.Update(newFakeInput(tc.keys...), 1)
			assertVec3(t, tc.want, s.Player().Position())
		})
	}
}

func TestDiagonalIsFasterThanCardinal(t *testing.T) {
	cardinal := NewScene()
	cardinal.Update(newFakeInput(common.KeyW), 1)
	diagonal := NewScene()
	diagonal.Update(newFakeInput(common.KeyW, common.KeyA), 1)

	start := mgl32.Vec3{0, 1, 0}
	c := cardinal.Player().Position().Sub(start).Len()
	d := diagonal.Player().Position().Sub(start).Len()
	assert.InDelta(t, math.Sqrt2, float64(d/c), 1e-5)
}

func TestDisplacementScalesWithDt(t *testing.T) {
	for _, mk := range []func() Scene{
		func() Scene { return NewScene() },
		func() Scene { s, _ := newOrbitScene(); return s },
	} {
		one, two := mk(), mk()
		in := newFakeInput(common.KeyS, common.KeyD)
		one.Update(in, 0.1)
		two.Update(in, 0.2)

		start := mgl32.Vec3{0, 1, 0}
		d1 := one.Player().Position().Sub(start)
		d2 := two.Player().Position().Sub(start)
		assertVec3(t, d1.Mul(2), d2)
	}
}

func TestFixedCameraStaysPut(t *testing.T) {
	s := NewScene()
	in := newFakeInput(common.KeyW)
	in.dx, in.dy = 50, 50
	for range 10 {
		s.Update(in, 1.0/60)
	}
	assertVec3(t, mgl32.Vec3{0, 10, 10}, s.Camera().Position())
	assertVec3(t, mgl32.Vec3{}, s.Camera().Target())
}

func TestViewRelativeMovement(t *testing.T) {
	cases := []struct {
		name string
		key  common.Key
		want mgl32.Vec3
	}{
		{name: "S adds forward", key: common.KeyS, want: mgl32.Vec3{0, 1, 5}},
		{name: "W subtracts forward", key: common.KeyW, want: mgl32.Vec3{0, 1, -5}},
		{name: "A subtracts right", key: common.KeyA, want: mgl32.Vec3{-5, 1, 0}},
		{name: "D adds right", key: common.KeyD, want: mgl32.Vec3{5, 1, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newOrbitScene()
			s.Update(newFakeInput(tc.key), 1)
			assertVec3(t, tc.want, s.Player().Position())
		})
	}
}

func TestViewRelativeMovementFollowsYaw(t *testing.T) {
	s, ctrl := newOrbitScene()
	in := newFakeInput(common.KeyS)
	// yaw -= dx * 0.003, so dx = -pi/2 / 0.003 turns the orbit by +90 degrees
	in.dx = -float32(math.Pi/2) / 0.003
	s.Update(in, 1)

	assert.InDelta(t, math.Pi/2, float64(ctrl.Yaw()), 1e-4)
	assertVec3(t, mgl32.Vec3{5, 1, 0}, s.Player().Position())
}

func TestOrbitMouseOrder(t *testing.T) {
	s, ctrl := newOrbitScene()
	in := newFakeInput()
	in.dx, in.dy = 100, 10
	s.Update(in, 1.0/60)

	assert.InDelta(t, -0.3, float64(ctrl.Yaw()), 1e-5)
	assert.InDelta(t, float64(mgl32.DegToRad(20))+0.03, float64(ctrl.Pitch()), 1e-5)
}

func TestPitchStaysClamped(t *testing.T) {
	s, ctrl := newOrbitScene()
	limit := float64(mgl32.DegToRad(89))

	in := newFakeInput()
	in.dy = 1000
	for range 50 {
		s.Update(in, 1.0/60)
		assert.LessOrEqual(t, float64(ctrl.Pitch()), limit+1e-6)
	}
	assert.InDelta(t, limit, float64(ctrl.Pitch()), 1e-6)

	in.dy = -1000
	for range 50 {
		s.Update(in, 1.0/60)
		assert.GreaterOrEqual(t, float64(ctrl.Pitch()), -limit-1e-6)
	}
	assert.InDelta(t, -limit, float64(ctrl.Pitch()), 1e-6)
}

func TestOrbitFollowsPlayer(t *testing.T) {
	s, _ := newOrbitScene()
	in := newFakeInput(common.KeyW, common.KeyD)
	in.dx, in.dy = 7, -3

	for i := range 120 {
		s.Update(in, 1.0/60)
		cam := s.Camera()
		assertVec3(t, s.Player().Position(), cam.Target())
		assert.InDelta(t, 10, cam.Position().Sub(cam.Target()).Len(), 1e-4, "frame %d", i)
	}
}

func TestUnfocusedSkipsCameraRotation(t *testing.T) {
	s, ctrl := newOrbitScene()
	in := newFakeInput(common.KeyS)
	in.dx, in.dy = 100, 100
	in.focused = false
	s.Update(in, 1)

	assert.Zero(t, ctrl.Yaw())
	assert.InDelta(t, float64(mgl32.DegToRad(20)), float64(ctrl.Pitch()), 1e-6)
	// movement still applies
	assertVec3(t, mgl32.Vec3{0, 1, 5}, s.Player().Position())
}

func TestOrbitEndToEnd(t *testing.T) {
	s, _ := newOrbitScene()
	s.Update(newFakeInput(), 1.0/60)

	assertVec3(t, mgl32.Vec3{0, 1, 0}, s.Player().Position())
	pos := s.Camera().Position()
	assert.InDelta(t, 0, pos[0], 1e-3)
	assert.InDelta(t, 4.42, pos[1], 5e-3)
	assert.InDelta(t, 9.40, pos[2], 5e-3)
}

func TestSetters(t *testing.T) {
	s := NewScene(WithName("fixed"), WithSpeed(2))
	assert.Equal(t, "fixed", s.Name())
	assert.Equal(t, float32(2), s.Speed())

	s.SetSpeed(10)
	s.SetBindings(input.Bindings{input.ActionForward: {common.KeyZ}})
	s.Update(newFakeInput(common.KeyW), 1)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, s.Player().Position())
	s.Update(newFakeInput(common.KeyZ), 1)
	assertVec3(t, mgl32.Vec3{0, 1, 10}, s.Player().Position())
	assert.Equal(t, []common.Key{common.KeyZ}, s.Bindings()[input.ActionForward])
}

type recordingDrawer struct {
	calls    []string
	beginErr error
	endErr   error
}

func (r *recordingDrawer) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingDrawer) BeginDrawing() error {
	r.record("BeginDrawing")
	return r.beginErr
}

func (r *recordingDrawer) ClearBackground(c common.Color) { r.record("ClearBackground %v", c) }
func (r *recordingDrawer) BeginMode3D(cam camera.Camera)  { r.record("BeginMode3D") }
func (r *recordingDrawer) EndMode3D()                     { r.record("EndMode3D") }
func (r *recordingDrawer) DrawFPS(x, y, fps int)          { r.record("DrawFPS %d %d %d", x, y, fps) }

func (r *recordingDrawer) DrawCube(position, size mgl32.Vec3, c common.Color) {
	r.record("DrawCube %v %v %v", position, size, c)
}

func (r *recordingDrawer) DrawCubeWires(position, size mgl32.Vec3, c common.Color) {
	r.record("DrawCubeWires %v %v %v", position, size, c)
}

func (r *recordingDrawer) EndDrawing() error {
	r.record("EndDrawing")
	return r.endErr
}

func TestDrawOrder(t *testing.T) {
	s := NewScene()
	d := &recordingDrawer{}
	require.NoError(t, s.Draw(d, 60))

	platform := mgl32.Vec3{20, 1, 20}
	player := mgl32.Vec3{0, 1, 0}
	unit := mgl32.Vec3{1, 1, 1}
	assert.Equal(t, []string{
		"BeginDrawing",
		fmt.Sprintf("ClearBackground %v", common.RayWhite),
		"BeginMode3D",
		fmt.Sprintf("DrawCube %v %v %v", mgl32.Vec3{}, platform, common.LightGray),
		fmt.Sprintf("DrawCubeWires %v %v %v", mgl32.Vec3{}, platform, common.DarkGray),
		fmt.Sprintf("DrawCube %v %v %v", player, unit, common.Red),
		fmt.Sprintf("DrawCubeWires %v %v %v", player, unit, common.Maroon),
		"EndMode3D",
		"DrawFPS 10 10 60",
		"EndDrawing",
	}, d.calls)
}

func TestDrawOptions(t *testing.T) {
	s := NewScene(WithFPSLabel(false, 0, 0), WithBackground(common.Black))
	s.Player().SetEnabled(false)
	d := &recordingDrawer{}
	require.NoError(t, s.Draw(d, 60))

	assert.Contains(t, d.calls, fmt.Sprintf("ClearBackground %v", common.Black))
	assert.Len(t, d.calls, 7)
	for _, c := range d.calls {
		assert.NotContains(t, c, "DrawFPS")
	}
}

func TestDrawErrors(t *testing.T) {
	s := NewScene()

	d := &recordingDrawer{beginErr: errors.New("no surface")}
	assert.EqualError(t, s.Draw(d, 0), "no surface")
	assert.Equal(t, []string{"BeginDrawing"}, d.calls)

	d = &recordingDrawer{endErr: errors.New("lost device")}
	assert.EqualError(t, s.Draw(d, 0), "lost device")
}
