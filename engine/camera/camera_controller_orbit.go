package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// orbitControllerImpl is the spherical-coordinate implementation of OrbitController.
type orbitControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	distance float32
	yaw      float32
	pitch    float32

	pitchLimit  float32
	sensitivity float32
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a new orbit controller. Defaults: distance 10, yaw 0,
// pitch 20 degrees, pitch limit 89 degrees, sensitivity 0.003 radians per pixel, target at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu:          &sync.Mutex{},
		distance:    10.0,
		yaw:         0.0,
		pitch:       mgl32.DegToRad(20),
		pitchLimit:  mgl32.DegToRad(89),
		sensitivity: 0.003,
	}

	for _, option := range options {
		option(oc)
	}

	oc.pitch = oc.clampPitch(oc.pitch)
	oc.updatePosition()
	return oc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever distance, yaw, pitch, or target changes.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) updatePosition() {
	cosPitch := float32(math.Cos(float64(oc.pitch)))
	sinPitch := float32(math.Sin(float64(oc.pitch)))
	cosYaw := float32(math.Cos(float64(oc.yaw)))
	sinYaw := float32(math.Sin(float64(oc.yaw)))

	oc.position = oc.target.Add(mgl32.Vec3{
		cosPitch * sinYaw,
		sinPitch,
		cosPitch * cosYaw,
	}.Mul(oc.distance))
}

// clampPitch limits pitch to [-pitchLimit, pitchLimit].
func (oc *orbitControllerImpl) clampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, -oc.pitchLimit, oc.pitchLimit)
}

func (oc *orbitControllerImpl) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
	oc.updatePosition()
}

func (oc *orbitControllerImpl) ApplyMouseDelta(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.yaw -= dx * oc.sensitivity
	oc.pitch = oc.clampPitch(oc.pitch + dy*oc.sensitivity)
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Yaw() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.yaw
}

func (oc *orbitControllerImpl) SetYaw(yaw float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.yaw = yaw
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Pitch() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.pitch
}

func (oc *orbitControllerImpl) SetPitch(pitch float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.pitch = oc.clampPitch(pitch)
	oc.updatePosition()
}

func (oc *orbitControllerImpl) PitchLimit() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.pitchLimit
}

func (oc *orbitControllerImpl) Distance() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.distance
}

func (oc *orbitControllerImpl) Sensitivity() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.sensitivity
}

func (oc *orbitControllerImpl) SetSensitivity(sensitivity float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.sensitivity = sensitivity
}

func (oc *orbitControllerImpl) Forward() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return mgl32.Vec3{
		float32(math.Sin(float64(oc.yaw))),
		0,
		float32(math.Cos(float64(oc.yaw))),
	}
}

func (oc *orbitControllerImpl) Right() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return mgl32.Vec3{
		float32(math.Cos(float64(oc.yaw))),
		0,
		-float32(math.Sin(float64(oc.yaw))),
	}
}
