package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithDistance sets the orbit radius (distance from target).
//
// Parameters:
//   - distance: distance from the orbit target
//
// Returns:
//   - OrbitControllerOption: functional option to set the distance
func WithDistance(distance float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.distance = distance
	}
}

// WithYaw sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - yaw: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - OrbitControllerOption: functional option to set the yaw
func WithYaw(yaw float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.yaw = yaw
	}
}

// WithPitch sets the initial vertical angle from the horizontal plane.
// The value is clamped to the pitch limit once all options are applied.
//
// Parameters:
//   - pitch: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - OrbitControllerOption: functional option to set the pitch
func WithPitch(pitch float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.pitch = pitch
	}
}

// WithPitchLimit sets the maximum absolute pitch.
//
// Parameters:
//   - limit: limit in radians, should stay below pi/2 so the view never flips
//
// Returns:
//   - OrbitControllerOption: functional option to set the pitch limit
func WithPitchLimit(limit float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.pitchLimit = limit
	}
}

// WithSensitivity sets the mouse sensitivity.
//
// Parameters:
//   - sensitivity: radians of rotation per pixel of mouse movement
//
// Returns:
//   - OrbitControllerOption: functional option to set the mouse sensitivity
func WithSensitivity(sensitivity float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.sensitivity = sensitivity
	}
}

// WithTarget sets the orbit pivot point.
//
// Parameters:
//   - target: world-space pivot
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(target mgl32.Vec3) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = target
	}
}
