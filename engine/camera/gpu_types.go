package camera

import (
	_ "embed"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource declares the WGSL CameraUniform struct that GPUCameraUniform serializes to.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the byte size of CameraUniform: a mat4x4<f32> then a vec3<f32> padded to 16.
const GPUCameraUniformSize = 80

// GPUCameraUniform is the per-frame camera data bound to every 3D pipeline.
type GPUCameraUniform struct {
	ViewProj       mgl32.Mat4
	CameraPosition mgl32.Vec3
}

// Marshal packs the uniform into GPUCameraUniformSize bytes, column-major, trailing pad zeroed.
func (g GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, GPUCameraUniformSize)
	buf = common.AppendFloats(buf, g.ViewProj[:]...)
	buf = common.AppendFloats(buf, g.CameraPosition[:]...)
	return common.AppendFloats(buf, 0)
}
