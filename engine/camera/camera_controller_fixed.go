package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type fixedControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
}

var _ FixedController = &fixedControllerImpl{}

// NewFixedController creates a controller that keeps the camera at a fixed eye position looking at a fixed target.
//
// Parameters:
//   - position: world-space eye position
//   - target: world-space look-at point
//
// Returns:
//   - FixedController: the newly created controller
func NewFixedController(position, target mgl32.Vec3) FixedController {
	return &fixedControllerImpl{
		mu:       &sync.Mutex{},
		position: position,
		target:   target,
	}
}

func (fc *fixedControllerImpl) Position() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.position
}

func (fc *fixedControllerImpl) Target() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.target
}

func (fc *fixedControllerImpl) SetPosition(position mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.position = position
}

func (fc *fixedControllerImpl) SetTarget(target mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.target = target
}
