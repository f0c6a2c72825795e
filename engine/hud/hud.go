// Package hud rasterizes the screen-space overlay text (the FPS counter) on the CPU
// and describes where the renderer should place it.
package hud

import (
	"fmt"
	"image"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FPSLabel formats a frame rate the way the overlay displays it.
func FPSLabel(fps int) string {
	return fmt.Sprintf("%2d FPS", fps)
}

// FPSColor picks the overlay color for a frame rate: Lime normally, Orange below 30 and Red below 15.
func FPSColor(fps int) common.Color {
	switch {
	case fps < 15:
		return common.Red
	case fps < 30:
		return common.Orange
	default:
		return common.Lime
	}
}

// RasterizeText draws text with the built-in 7x13 bitmap font onto a transparent RGBA image.
// The glyphs are upscaled by an integer factor with nearest-neighbor sampling so they stay crisp.
//
// Parameters:
//   - text: the string to draw
//   - color: the glyph color
//   - scale: integer upscale factor, values below 1 are treated as 1
//
// Returns:
//   - *image.RGBA: the rasterized text, sized to fit the string exactly
func RasterizeText(text string, color common.Color, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	face := basicfont.Face7x13
	metrics := face.Metrics()

	width := font.MeasureString(face, text).Ceil()
	height := metrics.Height.Ceil()
	if width == 0 {
		width = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, width, height))

	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(color.RGBA()),
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(text)

	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// FPSText caches the rasterized FPS label so the texture is only rebuilt when the shown value changes.
type FPSText struct {
	scale int
	label string
	image *image.RGBA
}

// NewFPSText creates an FPS label cache.
//
// Parameters:
//   - scale: integer upscale factor applied to the bitmap font
//
// Returns:
//   - *FPSText: an empty cache
func NewFPSText(scale int) *FPSText {
	return &FPSText{scale: scale}
}

// Update rasterizes the label for fps if it differs from the cached one.
//
// Parameters:
//   - fps: the frame rate to display
//
// Returns:
//   - *image.RGBA: the current label image
//   - bool: true if the image was rebuilt and must be uploaded again
func (f *FPSText) Update(fps int) (*image.RGBA, bool) {
	label := FPSLabel(fps)
	if f.image != nil && label == f.label {
		return f.image, false
	}
	f.label = label
	f.image = RasterizeText(label, FPSColor(fps), f.scale)
	return f.image, true
}

// Label returns the text of the cached image.
func (f *FPSText) Label() string {
	return f.label
}
