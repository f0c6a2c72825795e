package hud

import (
	_ "embed"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
)

// GPUOverlayParamsSource declares the WGSL OverlayParams struct.
//
//go:embed assets/overlay_params.wgsl
var GPUOverlayParamsSource string

// GPUOverlayParamsSize is the byte size of OverlayParams, two vec4<f32>.
const GPUOverlayParamsSize = 32

// GPUOverlayParams places a textured quad in screen space.
type GPUOverlayParams struct {
	// Rect is x, y, width and height in pixels from the top-left corner.
	Rect [4]float32
	// Screen is the framebuffer width and height; the last two lanes are padding.
	Screen [4]float32
}

// NewGPUOverlayParams builds the parameters for a quad of w×h pixels at (x, y) on a screen of the given size.
func NewGPUOverlayParams(x, y, w, h, screenW, screenH float32) GPUOverlayParams {
	return GPUOverlayParams{
		Rect:   [4]float32{x, y, w, h},
		Screen: [4]float32{screenW, screenH, 0, 0},
	}
}

func (g GPUOverlayParams) Marshal() []byte {
	buf := make([]byte, 0, GPUOverlayParamsSize)
	buf = common.AppendFloats(buf, g.Rect[:]...)
	return common.AppendFloats(buf, g.Screen[:]...)
}
