package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption configures a camera in NewCamera. The controller, if any, is consulted
// only after every option has been applied.
type CameraBuilderOption func(*cameraImpl)

// WithProjection selects perspective or orthographic projection.
func WithProjection(projection Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = projection
	}
}

// WithFovy sets the vertical extent of the view volume: an angle in radians for a
// perspective camera, a height in world units for an orthographic one.
func WithFovy(fovy float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovy = fovy
	}
}

// WithAspect sets the width / height ratio of the viewport.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping distances.
//
// Parameters:
//   - near: distance to the near plane, > 0
//   - far: distance to the far plane, > near
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near, c.far = near, far
	}
}

// WithUp overrides the world up vector, +Y by default.
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithController attaches the controller that positions the camera each frame.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
