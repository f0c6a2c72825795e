package scene

import (
	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/game_object"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/input"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithCamera sets the scene's camera. An orbit controlled camera follows the player.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithPlatform replaces the default platform.
//
// Parameters:
//   - platform: the ground object
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPlatform(platform game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.platform = platform
	}
}

// WithPlayer replaces the default player cube.
//
// Parameters:
//   - player: the controllable object
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPlayer(player game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.player = player
	}
}

// WithSpeed sets the player speed in units per second.
//
// Parameters:
//   - speed: the speed
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSpeed(speed float32) SceneBuilderOption {
	return func(s *scene) {
		s.speed = speed
	}
}

// WithMovement sets how held actions translate the player.
//
// Parameters:
//   - m: the movement strategy
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMovement(m Movement) SceneBuilderOption {
	return func(s *scene) {
		s.movement = m
	}
}

// WithBindings sets the action to key mapping.
//
// Parameters:
//   - bindings: the mapping
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBindings(bindings input.Bindings) SceneBuilderOption {
	return func(s *scene) {
		s.bindings = bindings
	}
}

// WithBackground sets the clear color.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithFPSLabel sets whether the FPS label is drawn and where.
//
// Parameters:
//   - show: true to draw the label
//   - x, y: the label's top-left corner in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFPSLabel(show bool, x, y int) SceneBuilderOption {
	return func(s *scene) {
		s.showFPS = show
		s.fpsX, s.fpsY = x, y
	}
}
