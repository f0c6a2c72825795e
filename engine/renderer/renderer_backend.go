package renderer

import (
	"fmt"
	"math"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// String returns the lowercase mode name used in logs.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4 only.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA converts a sample count from configuration into an MSAASampleCount.
//
// Parameters:
//   - samples: the requested sample count, 1 or 4
//
// Returns:
//   - MSAASampleCount: the matching sample count
//   - error: error if the value is not supported by every WebGPU adapter
func ParseMSAA(samples int) (MSAASampleCount, error) {
	switch samples {
	case 1:
		return MSAAOff, nil
	case 4:
		return MSAA4x, nil
	default:
		return 0, fmt.Errorf("unsupported msaa sample count %d (want 1 or 4)", samples)
	}
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// pickSurfaceFormat prefers a non-sRGB 8-bit format so palette colors reach the screen unchanged,
// falling back to the adapter's first preference.
func pickSurfaceFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, error) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, fmt.Errorf("surface reports no supported formats")
	}
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f, nil
		}
	}
	return formats[0], nil
}

// pickPresentMode returns requested when the surface supports it. An uncapped request falls back
// to Mailbox, and anything else to Fifo, which every surface supports.
func pickPresentMode(requested wgpu.PresentMode, supported []wgpu.PresentMode) wgpu.PresentMode {
	if slices.Contains(supported, requested) {
		return requested
	}
	if requested == wgpu.PresentModeImmediate && slices.Contains(supported, wgpu.PresentModeMailbox) {
		return wgpu.PresentModeMailbox
	}
	return wgpu.PresentModeFifo
}

// isSRGBFormat reports whether writes to the format are gamma-encoded by the hardware.
func isSRGBFormat(f wgpu.TextureFormat) bool {
	return f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb
}

// srgbToLinear decodes one normalized sRGB channel.
func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}

// shaderColor converts a normalized sRGB color into the space the render target expects.
// Alpha is never converted.
func shaderColor(c mgl32.Vec4, srgbTarget bool) mgl32.Vec4 {
	if !srgbTarget {
		return c
	}
	return mgl32.Vec4{srgbToLinear(c[0]), srgbToLinear(c[1]), srgbToLinear(c[2]), c[3]}
}
