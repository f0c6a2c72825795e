package common

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Color is an 8-bit per channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Palette colors used by the demo scenes.
var (
	RayWhite  = Color{245, 245, 245, 255}
	LightGray = Color{200, 200, 200, 255}
	DarkGray  = Color{80, 80, 80, 255}
	Red       = Color{230, 41, 55, 255}
	Maroon    = Color{190, 33, 55, 255}
	Lime      = Color{0, 158, 47, 255}
	Orange    = Color{255, 161, 0, 255}
	Black     = Color{0, 0, 0, 255}
	White     = Color{255, 255, 255, 255}
)

var colorNames = map[string]Color{
	"raywhite":  RayWhite,
	"lightgray": LightGray,
	"darkgray":  DarkGray,
	"red":       Red,
	"maroon":    Maroon,
	"lime":      Lime,
	"orange":    Orange,
	"black":     Black,
	"white":     White,
}

// Vec4 returns the color as normalized floats, in the layout expected by shader uniforms.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// WGPU returns the color as a render pass clear value.
func (c Color) WGPU() wgpu.Color {
	return wgpu.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}

// RGBA returns the color as an image/color value for CPU-side rasterization.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ParseColor resolves a palette name (case-insensitive) or a hex string in the form "#rrggbb" or "#rrggbbaa".
//
// Parameters:
//   - s: the color name or hex string
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is neither a palette name nor valid hex
func ParseColor(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)
	if c, ok := colorNames[strings.ToLower(trimmed)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(trimmed, "#") || (len(trimmed) != 7 && len(trimmed) != 9) {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(trimmed[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(trimmed) == 7 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
