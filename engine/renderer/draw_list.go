package renderer

import (
	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// drawBatch identifies which cube pipeline an instance is drawn with.
type drawBatch int

const (
	batchSolid drawBatch = iota
	batchWire
	batchCount
)

// drawList collects the cubes queued between BeginMode3D and EndMode3D.
// Instances are grouped per batch so each batch becomes one instanced draw call.
type drawList struct {
	instances [batchCount][]model.GPUInstanceData

	culling bool
	frustum common.Frustum
	culled  int

	srgbTarget bool
}

// reset empties the list for a new frame, keeping the allocated capacity.
func (l *drawList) reset() {
	for i := range l.instances {
		l.instances[i] = l.instances[i][:0]
	}
	l.culled = 0
}

// setFrustum installs the camera frustum used to cull the cubes queued after it.
func (l *drawList) setFrustum(f common.Frustum, enabled bool) {
	l.frustum = f
	l.culling = enabled
}

// add queues one cube of the given size centered at position.
//
// Returns:
//   - bool: false if the cube was culled
func (l *drawList) add(batch drawBatch, position, size mgl32.Vec3, c common.Color) bool {
	if l.culling && !l.frustum.IntersectsAABB(position, size.Mul(0.5)) {
		l.culled++
		return false
	}
	l.instances[batch] = append(l.instances[batch], model.GPUInstanceData{
		Model: common.BuildModelMatrix(position, size),
		Color: shaderColor(c.Vec4(), l.srgbTarget),
	})
	return true
}

func (l *drawList) count(batch drawBatch) int {
	return len(l.instances[batch])
}

// marshal serializes every instance of a batch into one contiguous buffer.
func (l *drawList) marshal(batch drawBatch) []byte {
	insts := l.instances[batch]
	if len(insts) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(insts)*model.GPUInstanceDataSize)
	for _, inst := range insts {
		buf = inst.AppendTo(buf)
	}
	return buf
}

// instanceCapacity returns the number of instances a storage buffer must hold for n cubes.
// Capacity grows in powers of two from minInstanceCapacity so resizes stay rare.
func instanceCapacity(n int) int {
	c := minInstanceCapacity
	for c < n {
		c *= 2
	}
	return c
}
