// Package common holds the plain value types and helpers shared across the engine packages.
package common

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData is tightly packed RGBA8 pixel data waiting to be uploaded to a texture binding.
type TextureStagingData struct {
	Pixels        []byte
	Width, Height uint32
}

// SamplerStagingData describes a sampler binding. Zero fields take the backend defaults:
// repeat addressing, linear filtering and an LOD range of 0 to 32.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	MaxAnisotropy                            uint16
}

// NewTextureStagingData copies an RGBA image into staging data ready for upload.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - *TextureStagingData: tightly packed RGBA pixels with the image dimensions
func NewTextureStagingData(img *image.RGBA) *TextureStagingData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pixels[y*w*4:], img.Pix[off:off+w*4])
	}
	return &TextureStagingData{Pixels: pixels, Width: uint32(w), Height: uint32(h)}
}
