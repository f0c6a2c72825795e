package common

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerspectiveMapsDepthToZeroOne(t *testing.T) {
	near, far := float32(0.01), float32(1000)
	proj := Perspective(mgl32.DegToRad(45), 800.0/600.0, near, far)

	project := func(z float32) float32 {
		clip := proj.Mul4x1(mgl32.Vec4{0, 0, z, 1})
		return clip.Z() / clip.W()
	}

	assert.InDelta(t, 0, project(-near), 1e-4)
	assert.InDelta(t, 1, project(-far), 1e-4)
}

func TestOrthographicMapsBoxToClipSpace(t *testing.T) {
	proj := Orthographic(-4, 4, -3, 3, 0.01, 1000)

	corner := proj.Mul4x1(mgl32.Vec4{4, 3, -1000, 1})
	assert.InDelta(t, 1, corner.X(), 1e-5)
	assert.InDelta(t, 1, corner.Y(), 1e-5)
	assert.InDelta(t, 1, corner.Z(), 1e-5)

	nearCorner := proj.Mul4x1(mgl32.Vec4{-4, -3, -0.01, 1})
	assert.InDelta(t, -1, nearCorner.X(), 1e-5)
	assert.InDelta(t, -1, nearCorner.Y(), 1e-5)
	assert.InDelta(t, 0, nearCorner.Z(), 1e-5)
}

func TestBuildModelMatrixScalesThenTranslates(t *testing.T) {
	m := BuildModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{20, 1, 20})
	p := m.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1})
	assert.InDelta(t, 11, p.X(), 1e-5)
	assert.InDelta(t, 2.5, p.Y(), 1e-5)
	assert.InDelta(t, 13, p.Z(), 1e-5)
}

func TestFrustumCulling(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 10, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.01, 1000)
	f := ExtractFrustumFromMatrix(proj.Mul4(view))

	half := mgl32.Vec3{0.5, 0.5, 0.5}
	assert.True(t, f.IntersectsAABB(mgl32.Vec3{0, 1, 0}, half), "player at the start position is visible")
	assert.True(t, f.IntersectsAABB(mgl32.Vec3{}, mgl32.Vec3{10, 0.5, 10}), "platform is visible")
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{0, 0, 50}, half), "box behind the camera is culled")
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{500, 0, 0}, half), "box far to the side is culled")
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{0, 0, -5000}, half), "box past the far plane is culled")

	for _, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Len(), 1e-4)
	}
}

func TestParseKey(t *testing.T) {
	cases := map[string]Key{
		"W":      KeyW,
		"w":      KeyW,
		" d ":    KeyD,
		"up":     KeyUp,
		"Down":   KeyDown,
		"LEFT":   KeyLeft,
		"right":  KeyRight,
		"Escape": KeyEsc,
		"7":      Key('7'),
	}
	for name, want := range cases {
		got, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKey("Hyper")
	assert.Error(t, err)
	_, err = ParseKey("")
	assert.Error(t, err)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "W", KeyW.String())
	assert.Equal(t, "Up", KeyUp.String())
	assert.Equal(t, "Key(999)", Key(999).String())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("LightGray")
	require.NoError(t, err)
	assert.Equal(t, LightGray, c)

	c, err = ParseColor("#e62937")
	require.NoError(t, err)
	assert.Equal(t, Red, c)

	c, err = ParseColor("#00000080")
	require.NoError(t, err)
	assert.Equal(t, Color{0, 0, 0, 128}, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("chartreuse")
	assert.Error(t, err)
}

func TestColorConversions(t *testing.T) {
	v := RayWhite.Vec4()
	assert.InDelta(t, 245.0/255.0, v.X(), 1e-6)
	assert.Equal(t, float32(1), v.W())

	w := Maroon.WGPU()
	assert.InDelta(t, 190.0/255.0, w.R, 1e-9)
	assert.InDelta(t, 1.0, w.A, 1e-9)
}

func TestNewTextureStagingDataPacksRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(2, 3, 5, 5))
	img.SetRGBA(2, 3, Red.RGBA())
	img.SetRGBA(4, 4, Lime.RGBA())

	data := NewTextureStagingData(img)
	require.Equal(t, uint32(3), data.Width)
	require.Equal(t, uint32(2), data.Height)
	require.Len(t, data.Pixels, 3*2*4)
	assert.Equal(t, []byte{230, 41, 55, 255}, data.Pixels[0:4])
	assert.Equal(t, []byte{0, 158, 47, 255}, data.Pixels[20:24])
}
