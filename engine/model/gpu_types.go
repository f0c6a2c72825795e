package model

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSource declares the WGSL VertexInput struct for the cube pipelines.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUInstanceDataSource declares the WGSL InstanceData struct, one per drawn cube.
//
//go:embed assets/instance_data.wgsl
var GPUInstanceDataSource string

const (
	// GPUVertexSize is the stride of one GPUVertex: two tightly packed float32x3 attributes.
	GPUVertexSize = 24
	// GPUInstanceDataSize is the byte size of InstanceData: a mat4x4<f32> then a vec4<f32>.
	GPUInstanceDataSize = 80
)

// GPUVertex is one mesh vertex in model space.
type GPUVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// AppendTo packs the vertex onto buf.
func (g GPUVertex) AppendTo(buf []byte) []byte {
	buf = common.AppendFloats(buf, g.Position[:]...)
	return common.AppendFloats(buf, g.Normal[:]...)
}

// GPUInstanceData is one drawn cube: its transform and flat linear color.
type GPUInstanceData struct {
	Model mgl32.Mat4
	Color mgl32.Vec4
}

// AppendTo packs the instance onto buf, matrix column-major.
func (g GPUInstanceData) AppendTo(buf []byte) []byte {
	buf = common.AppendFloats(buf, g.Model[:]...)
	return common.AppendFloats(buf, g.Color[:]...)
}

// Marshal returns the instance as GPUInstanceDataSize bytes.
func (g GPUInstanceData) Marshal() []byte {
	return g.AppendTo(make([]byte, 0, GPUInstanceDataSize))
}

// MarshalVertices serializes a vertex slice into a single contiguous buffer.
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*GPUVertexSize)
	for _, v := range vertices {
		buf = v.AppendTo(buf)
	}
	return buf
}

// MarshalIndices serializes 32-bit indices into a little-endian buffer.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, 0, len(indices)*4)
	for _, idx := range indices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	return buf
}

// ComputeHalfExtents returns the half size of the axis-aligned box centered at the origin
// that encloses every vertex. Used by frustum culling.
//
// Parameters:
//   - vertices: the vertex data to measure
//
// Returns:
//   - mgl32.Vec3: the largest absolute coordinate on each axis
func ComputeHalfExtents(vertices []GPUVertex) mgl32.Vec3 {
	var ext mgl32.Vec3
	for _, v := range vertices {
		for i := range 3 {
			c := float32(math.Abs(float64(v.Position[i])))
			if c > ext[i] {
				ext[i] = c
			}
		}
	}
	return ext
}
