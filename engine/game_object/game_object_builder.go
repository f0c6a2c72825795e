package game_object

import (
	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the debug name of the GameObject.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial world-space center of the GameObject.
//
// Parameters:
//   - position: the center position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(position mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = position
	}
}

// WithSize sets the full extent of the GameObject along each axis.
//
// Parameters:
//   - size: width, height and length
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the size
func WithSize(size mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.size = size
	}
}

// WithColor sets the fill color of the GameObject.
//
// Parameters:
//   - color: the fill color
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the fill color
func WithColor(color common.Color) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = color
	}
}

// WithWireColor sets the outline color of the GameObject.
//
// Parameters:
//   - color: the outline color
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the outline color
func WithWireColor(color common.Color) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.wireColor = color
	}
}

// WithWired sets whether the GameObject's edges are outlined.
//
// Parameters:
//   - wired: true to draw the outline
//
// Returns:
//   - GameObjectBuilderOption: functional option to toggle the outline
func WithWired(wired bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.wired = wired
	}
}
