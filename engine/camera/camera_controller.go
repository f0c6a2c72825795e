package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController owns the positional state (position, target) of a camera.
// The Camera reads from its controller and computes view/projection matrices.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3
}

// FixedController is a controller with a static eye and target, changed only through explicit setters.
type FixedController interface {
	CameraController

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position mgl32.Vec3)

	// SetTarget sets the look-at point directly.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)
}

// OrbitController keeps the camera on a sphere around a target using yaw and pitch angles.
// The camera position is always target + distance * (cos(pitch)*sin(yaw), sin(pitch), cos(pitch)*cos(yaw)).
type OrbitController interface {
	CameraController

	// SetTarget moves the orbit pivot and recomputes the position.
	//
	// Parameters:
	//   - target: world-space pivot point
	SetTarget(target mgl32.Vec3)

	// ApplyMouseDelta rotates the orbit from a mouse movement: yaw decreases by dx * sensitivity,
	// then pitch increases by dy * sensitivity and is clamped to the pitch limit.
	//
	// Parameters:
	//   - dx, dy: mouse movement in screen pixels
	ApplyMouseDelta(dx, dy float32)

	// Yaw returns the horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: yaw in radians (0 = camera on the +Z side of the target)
	Yaw() float32

	// SetYaw sets the horizontal angle and recomputes the position.
	//
	// Parameters:
	//   - yaw: angle in radians
	SetYaw(yaw float32)

	// Pitch returns the vertical angle above the horizontal plane.
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// SetPitch sets the vertical angle, clamped to the pitch limit, and recomputes the position.
	//
	// Parameters:
	//   - pitch: angle in radians
	SetPitch(pitch float32)

	// PitchLimit returns the maximum absolute pitch.
	//
	// Returns:
	//   - float32: limit in radians
	PitchLimit() float32

	// Distance returns the orbit radius.
	//
	// Returns:
	//   - float32: distance between camera and target
	Distance() float32

	// Sensitivity returns the radians of rotation per pixel of mouse movement.
	//
	// Returns:
	//   - float32: mouse sensitivity
	Sensitivity() float32

	// SetSensitivity changes the mouse sensitivity.
	//
	// Parameters:
	//   - sensitivity: radians per pixel
	SetSensitivity(sensitivity float32)

	// Forward returns the horizontal unit vector (sin(yaw), 0, cos(yaw)).
	// It points from the target toward the camera's side of the orbit.
	//
	// Returns:
	//   - mgl32.Vec3: the forward basis vector
	Forward() mgl32.Vec3

	// Right returns the horizontal unit vector (cos(yaw), 0, -sin(yaw)).
	//
	// Returns:
	//   - mgl32.Vec3: the right basis vector
	Right() mgl32.Vec3
}
