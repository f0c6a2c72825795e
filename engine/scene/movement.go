package scene

import (
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement turns the held actions of one frame into a player translation.
// Held actions add up without normalization, so diagonals move √2 times faster than cardinals.
type Movement interface {
	// Displacement computes the translation for one frame.
	//
	// Parameters:
	//   - in: the input snapshot of the frame
	//   - bindings: the action to key mapping
	//   - step: the distance covered by one held action (speed * dt)
	//
	// Returns:
	//   - mgl32.Vec3: the translation to apply to the player
	Displacement(in input.State, bindings input.Bindings, step float32) mgl32.Vec3
}

// AxisMovement moves along the world axes: forward is +Z, back is -Z, left is +X and right is -X.
type AxisMovement struct{}

var _ Movement = AxisMovement{}

func (AxisMovement) Displacement(in input.State, bindings input.Bindings, step float32) mgl32.Vec3 {
	var d mgl32.Vec3
	if bindings.Held(in, input.ActionForward) {
		d[2] += step
	}
	if bindings.Held(in, input.ActionBack) {
		d[2] -= step
	}
	if bindings.Held(in, input.ActionLeft) {
		d[0] += step
	}
	if bindings.Held(in, input.ActionRight) {
		d[0] -= step
	}
	return d
}

// Basis provides the horizontal direction vectors movement is expressed in.
// camera.OrbitController implements it.
type Basis interface {
	Forward() mgl32.Vec3
	Right() mgl32.Vec3
}

// ViewRelativeMovement moves relative to the camera heading. The back action adds the
// basis forward vector and the forward action subtracts it, so forward walks toward the camera's view.
type ViewRelativeMovement struct {
	Basis Basis
}

var _ Movement = ViewRelativeMovement{}

// NewViewRelativeMovement creates a ViewRelativeMovement reading directions from basis.
//
// Parameters:
//   - basis: the source of the forward and right vectors, usually the orbit controller
//
// Returns:
//   - ViewRelativeMovement: the movement strategy
func NewViewRelativeMovement(basis Basis) ViewRelativeMovement {
	return ViewRelativeMovement{Basis: basis}
}

func (m ViewRelativeMovement) Displacement(in input.State, bindings input.Bindings, step float32) mgl32.Vec3 {
	forward := m.Basis.Forward()
	right := m.Basis.Right()

	var d mgl32.Vec3
	if bindings.Held(in, input.ActionBack) {
		d = d.Add(forward.Mul(step))
	}
	if bindings.Held(in, input.ActionForward) {
		d = d.Sub(forward.Mul(step))
	}
	if bindings.Held(in, input.ActionLeft) {
		d = d.Sub(right.Mul(step))
	}
	if bindings.Held(in, input.ActionRight) {
		d = d.Add(right.Mul(step))
	}
	return d
}
