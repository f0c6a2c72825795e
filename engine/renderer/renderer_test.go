package renderer

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickSurfaceFormat(t *testing.T) {
	_, err := pickSurfaceFormat(nil)
	assert.Error(t, err)

	f, err := pickSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm})
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, f)

	f, err = pickSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8UnormSrgb})
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, f)
	assert.True(t, isSRGBFormat(f))
	assert.False(t, isSRGBFormat(wgpu.TextureFormatRGBA8Unorm))
}

func TestPickPresentMode(t *testing.T) {
	all := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeMailbox, wgpu.PresentModeImmediate}
	assert.Equal(t, wgpu.PresentModeImmediate, pickPresentMode(wgpu.PresentModeImmediate, all))
	assert.Equal(t, wgpu.PresentModeFifo, pickPresentMode(wgpu.PresentModeFifo, all))

	// Wayland and several Mesa drivers offer no Immediate mode
	fifoMailbox := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeMailbox}
	assert.Equal(t, wgpu.PresentModeMailbox, pickPresentMode(wgpu.PresentModeImmediate, fifoMailbox))

	fifoOnly := []wgpu.PresentMode{wgpu.PresentModeFifo}
	assert.Equal(t, wgpu.PresentModeFifo, pickPresentMode(wgpu.PresentModeImmediate, fifoOnly))
	assert.Equal(t, wgpu.PresentModeFifo, pickPresentMode(wgpu.PresentModeImmediate, nil))
}

func TestShaderColor(t *testing.T) {
	c := common.LightGray.Vec4()
	assert.Equal(t, c, shaderColor(c, false))

	lin := shaderColor(c, true)
	assert.InDelta(t, 0.5776, lin[0], 1e-3)
	assert.Equal(t, c[3], lin[3])

	black := shaderColor(mgl32.Vec4{0, 0, 0, 0.5}, true)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 0.5}, black)
	assert.InDelta(t, 1.0, srgbToLinear(1), 1e-6)
}

func TestClearValue(t *testing.T) {
	assert.Equal(t, common.RayWhite.WGPU(), clearValue(common.RayWhite, false))

	v := clearValue(common.RayWhite, true)
	assert.Less(t, v.R, common.RayWhite.WGPU().R)
	assert.InDelta(t, 1.0, v.A, 1e-9)
}

func TestParseMSAA(t *testing.T) {
	m, err := ParseMSAA(1)
	require.NoError(t, err)
	assert.Equal(t, MSAAOff, m)

	m, err = ParseMSAA(4)
	require.NoError(t, err)
	assert.Equal(t, MSAA4x, m)

	_, err = ParseMSAA(8)
	assert.Error(t, err)
}

func TestPresentModeString(t *testing.T) {
	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
	assert.Equal(t, "PresentMode(7)", PresentMode(7).String())
}

// presentModeBackend records present mode changes and surface reconfigurations.
type presentModeBackend struct {
	RendererBackend
	modes      []PresentMode
	configured [][2]int
	err        error
}

func (b *presentModeBackend) SetPresentMode(mode PresentMode) { b.modes = append(b.modes, mode) }

func (b *presentModeBackend) ConfigureSurface(width, height int) error {
	b.configured = append(b.configured, [2]int{width, height})
	return b.err
}

func TestSetPresentMode(t *testing.T) {
	b := &presentModeBackend{}
	r := &renderer{mu: &sync.Mutex{}, backend: b, presentMode: PresentModeUncapped, width: 800, height: 600}

	require.NoError(t, r.SetPresentMode(PresentModeUncapped))
	assert.Empty(t, b.configured, "unchanged mode leaves the surface alone")

	require.NoError(t, r.SetPresentMode(PresentModeVSync))
	assert.Equal(t, []PresentMode{PresentModeVSync}, b.modes)
	assert.Equal(t, [][2]int{{800, 600}}, b.configured)

	b.err = errors.New("surface lost")
	assert.ErrorContains(t, r.SetPresentMode(PresentModeUncapped), "surface lost")

	// minimized: recorded, configured on the next resize
	r.width, r.height = 0, 0
	require.NoError(t, r.SetPresentMode(PresentModeVSync))
	assert.Len(t, b.configured, 2)

	r.drawing = true
	assert.Error(t, r.SetPresentMode(PresentModeUncapped))
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{}
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeVSync),
		WithMSAA(MSAAOff),
		WithForceSoftwareRenderer(true),
		WithFrustumCulling(false),
		WithFontScale(0),
	} {
		opt(r)
	}
	assert.Equal(t, PresentModeVSync, r.presentMode)
	assert.Equal(t, MSAAOff, r.msaa)
	assert.True(t, r.forceFallbackAdapter)
	assert.False(t, r.culling)
	assert.Equal(t, 1, r.fontScale)
}

func TestBuildPipelines(t *testing.T) {
	pipelines, err := buildPipelines(shaderFS)
	require.NoError(t, err)
	require.Len(t, pipelines, 3)

	for key, p := range pipelines {
		assert.NoError(t, p.Validate(), key)
	}

	solid := pipelines[PipelineCubeSolid]
	assert.Equal(t, wgpu.CullModeBack, solid.State().CullMode)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, solid.State().Topology)
	assert.Nil(t, solid.State().Blend)

	wire := pipelines[PipelineCubeWire]
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, wire.State().Topology)
	assert.Equal(t, wgpu.CompareFunctionLessEqual, wire.State().EffectiveDepthCompare())

	overlay := pipelines[PipelineOverlay]
	assert.False(t, overlay.State().DepthWrite)
	assert.Equal(t, wgpu.CompareFunctionAlways, overlay.State().EffectiveDepthCompare())
	assert.NotNil(t, overlay.State().Blend)
	assert.Empty(t, overlay.Shader(shader.ShaderTypeVertex).VertexLayouts())

	vs := solid.Shader(shader.ShaderTypeVertex)
	group, _, ok := vs.ProviderGroup(shader.AnnotationArgCamera, "")
	require.True(t, ok)
	assert.Equal(t, 0, group)
	group, _, ok = vs.ProviderGroup(shader.AnnotationArgInstances, "")
	require.True(t, ok)
	assert.Equal(t, 1, group)

	layouts := overlay.BindGroupLayoutDescriptors()
	require.Len(t, layouts[0].Entries, 3)
	assert.Equal(t, wgpu.ShaderStageVertex, layouts[0].Entries[2].Visibility)
	assert.Equal(t, uint64(32), layouts[0].Entries[2].Buffer.MinBindingSize)
	_, binding, ok := overlay.Shader(shader.ShaderTypeVertex).ProviderGroup(shader.AnnotationArgOverlayParams, "")
	require.True(t, ok)
	assert.Equal(t, 2, binding)
}

func TestInstanceCapacity(t *testing.T) {
	assert.Equal(t, minInstanceCapacity, instanceCapacity(0))
	assert.Equal(t, minInstanceCapacity, instanceCapacity(minInstanceCapacity))
	assert.Equal(t, minInstanceCapacity*2, instanceCapacity(minInstanceCapacity+1))
	assert.Equal(t, 128, instanceCapacity(100))
}

func newTestCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithAspect(800.0/600.0),
		camera.WithController(camera.NewFixedController(mgl32.Vec3{0, 10, 10}, mgl32.Vec3{})),
	)
}

func TestDrawListBatches(t *testing.T) {
	var l drawList
	l.setFrustum(newTestCamera().Frustum(), true)

	assert.True(t, l.add(batchSolid, mgl32.Vec3{}, mgl32.Vec3{20, 1, 20}, common.LightGray))
	assert.True(t, l.add(batchWire, mgl32.Vec3{}, mgl32.Vec3{20, 1, 20}, common.DarkGray))
	assert.True(t, l.add(batchSolid, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 1}, common.Red))
	assert.Equal(t, 2, l.count(batchSolid))
	assert.Equal(t, 1, l.count(batchWire))

	inst := l.instances[batchSolid][1]
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, inst.Model.Col(3).Vec3())
	assert.Equal(t, common.Red.Vec4(), inst.Color)
	assert.Len(t, l.marshal(batchSolid), 160)

	l.reset()
	assert.Zero(t, l.count(batchSolid))
	assert.Nil(t, l.marshal(batchWire))
}

func TestDrawListCulling(t *testing.T) {
	var l drawList
	l.setFrustum(newTestCamera().Frustum(), true)

	// behind the camera
	assert.False(t, l.add(batchSolid, mgl32.Vec3{0, 10, 500}, mgl32.Vec3{1, 1, 1}, common.Red))
	assert.Equal(t, 1, l.culled)
	assert.Zero(t, l.count(batchSolid))

	l.setFrustum(newTestCamera().Frustum(), false)
	assert.True(t, l.add(batchSolid, mgl32.Vec3{0, 10, 500}, mgl32.Vec3{1, 1, 1}, common.Red))
	assert.Equal(t, 1, l.count(batchSolid))
}

func TestDrawListSRGB(t *testing.T) {
	l := drawList{srgbTarget: true}
	l.add(batchSolid, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, common.LightGray)
	assert.Equal(t, shaderColor(common.LightGray.Vec4(), true), l.instances[batchSolid][0].Color)
}
