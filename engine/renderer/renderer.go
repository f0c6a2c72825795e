package renderer

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/hud"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/model"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/shaders/*.wgsl
var shaderFS embed.FS

// Keys of the pipelines the renderer registers at startup.
const (
	PipelineCubeSolid = "cube_solid"
	PipelineCubeWire  = "cube_wire"
	PipelineOverlay   = "overlay"
)

// minInstanceCapacity is the number of cubes each instance buffer holds before its first resize.
const minInstanceCapacity = 16

// overlayVertexCount is the number of vertices the overlay vertex shader expands into a quad.
const overlayVertexCount = 6

// SurfaceSource is the part of a window the renderer needs to create and size its surface.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// FrameStats describes the work done by the last EndDrawing call.
type FrameStats struct {
	// Drawn is the number of cube instances submitted, solid and wire combined.
	Drawn int
	// Culled is the number of cubes skipped because they were outside the frustum.
	Culled int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	culling              bool
	fontScale            int

	width, height int
	srgbTarget    bool

	cubeModel model.Model
	wireModel model.Model

	cameraProvider bind_group_provider.BindGroupProvider
	cameraGroup    int
	cameraBinding  int
	cameraUniform  camera.GPUCameraUniform

	instanceGroup     int
	instanceBinding   int
	instanceLayout    wgpu.BindGroupLayoutDescriptor
	instanceProviders [batchCount]bind_group_provider.BindGroupProvider
	instanceCapacity  [batchCount]int

	overlayProvider       bind_group_provider.BindGroupProvider
	overlayLayout         wgpu.BindGroupLayoutDescriptor
	overlayTextureBinding int
	overlaySamplerBinding int
	overlayParamsBinding  int
	overlayWidth          uint32
	overlayHeight         uint32
	fpsText               *hud.FPSText

	// Per-frame state between BeginDrawing and EndDrawing
	drawing     bool
	in3D        bool
	clearColor  common.Color
	list        drawList
	overlayShow bool
	overlayX    int
	overlayY    int
	overlayFPS  int
	stats       FrameStats
}

// Renderer defines the interface for the rendering system.
//
// The Renderer exposes an immediate-mode drawing API: every frame is bracketed by BeginDrawing and
// EndDrawing, and everything drawn in between is batched and submitted to the GPU in one render pass.
// Cubes are queued between BeginMode3D and EndMode3D and drawn with one instanced call per style.
type Renderer interface {
	// Pipeline retrieves the registered Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Resize configures the underlying backend to handle a new surface size.
	// A zero size (minimized window) is recorded and frames are skipped until the next non-zero resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: error if the surface attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode changes how frames are delivered to the display and reconfigures the surface.
	// Must not be called between BeginDrawing and EndDrawing.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	//
	// Returns:
	//   - error: error if the surface could not be reconfigured
	SetPresentMode(mode PresentMode) error

	// BeginDrawing starts a new frame and discards anything queued by the previous one.
	//
	// Returns:
	//   - error: error if a frame is already in progress
	BeginDrawing() error

	// ClearBackground sets the color the frame is cleared to.
	//
	// Parameters:
	//   - c: the background color
	ClearBackground(c common.Color)

	// BeginMode3D starts queuing 3D geometry seen through cam.
	// The camera's view-projection matrix and frustum are captured at this point.
	//
	// Parameters:
	//   - cam: the camera the following cubes are drawn with
	BeginMode3D(cam camera.Camera)

	// DrawCube queues a solid cube.
	//
	// Parameters:
	//   - position: the cube center in world space
	//   - size: the cube size along each axis
	//   - c: the fill color
	DrawCube(position, size mgl32.Vec3, c common.Color)

	// DrawCubeWires queues the twelve edges of a cube.
	//
	// Parameters:
	//   - position: the cube center in world space
	//   - size: the cube size along each axis
	//   - c: the line color
	DrawCubeWires(position, size mgl32.Vec3, c common.Color)

	// EndMode3D stops queuing 3D geometry.
	EndMode3D()

	// DrawFPS shows the frame rate label with its top-left corner at (x, y) pixels.
	//
	// Parameters:
	//   - x: horizontal offset from the left edge
	//   - y: vertical offset from the top edge
	//   - fps: the frame rate to display
	DrawFPS(x, y, fps int)

	// EndDrawing uploads the queued data, encodes the frame and presents it.
	//
	// Returns:
	//   - error: error if the frame could not be acquired or submitted
	EndDrawing() error

	// Stats returns the counters of the last presented frame.
	//
	// Returns:
	//   - FrameStats: drawn and culled cube counts
	Stats() FrameStats

	// Release frees every GPU resource owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given surface source, configures the surface and
// registers the cube and overlay pipelines.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a ready-to-draw Renderer
//   - error: error if the GPU could not be initialized or a pipeline failed to build
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeUncapped,
		msaa:          MSAA4x,
		culling:       true,
		fontScale:     2,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, err
	}
	r.backend.SetPresentMode(r.presentMode)

	r.width, r.height = surface.Width(), surface.Height()
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.Release()
		return nil, err
	}
	r.srgbTarget = isSRGBFormat(r.backend.SurfaceFormat())
	r.list.srgbTarget = r.srgbTarget

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

// init registers the pipelines and creates the meshes and bind groups they draw with.
func (r *renderer) init() error {
	pipelines, err := buildPipelines(shaderFS)
	if err != nil {
		return err
	}
	for _, key := range []string{PipelineCubeSolid, PipelineCubeWire, PipelineOverlay} {
		if err := r.backend.RegisterRenderPipeline(pipelines[key]); err != nil {
			return err
		}
		r.pipelineCache[key] = pipelines[key]
	}

	r.cubeModel = model.NewCubeModel()
	r.wireModel = model.NewCubeWireModel()
	for _, m := range []model.Model{r.cubeModel, r.wireModel} {
		if err := r.backend.InitMeshBuffers(m.MeshProvider(), m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
			return fmt.Errorf("mesh %s: %w", m.Name(), err)
		}
	}

	solid := pipelines[PipelineCubeSolid]
	vs := solid.Shader(shader.ShaderTypeVertex)
	layouts := solid.BindGroupLayoutDescriptors()

	var ok bool
	r.cameraGroup, r.cameraBinding, ok = vs.ProviderGroup(shader.AnnotationArgCamera, "")
	if !ok {
		return fmt.Errorf("pipeline %s declares no camera binding", PipelineCubeSolid)
	}
	r.cameraProvider = bind_group_provider.NewBindGroupProvider("camera")
	if err := r.backend.InitBindGroup(r.cameraProvider, layouts[r.cameraGroup], nil); err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}

	r.instanceGroup, r.instanceBinding, ok = vs.ProviderGroup(shader.AnnotationArgInstances, "")
	if !ok {
		return fmt.Errorf("pipeline %s declares no instance binding", PipelineCubeSolid)
	}
	r.instanceLayout = layouts[r.instanceGroup]
	for b := range batchCount {
		r.instanceProviders[b] = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("instances_%d", b))
		if err := r.growInstances(b, minInstanceCapacity); err != nil {
			return err
		}
	}

	return r.initOverlay(pipelines[PipelineOverlay])
}

// initOverlay creates the FPS label texture, its sampler and the quad placement uniform.
func (r *renderer) initOverlay(p pipeline.Pipeline) error {
	fragment := p.Shader(shader.ShaderTypeFragment)
	vertex := p.Shader(shader.ShaderTypeVertex)

	group, texBinding, ok := fragment.ProviderGroup(shader.AnnotationArgOverlay, shader.AnnotationArgOverlayTexture)
	if !ok {
		return fmt.Errorf("pipeline %s declares no overlay texture", PipelineOverlay)
	}
	_, samplerBinding, ok := fragment.ProviderGroup(shader.AnnotationArgOverlay, shader.AnnotationArgOverlaySampler)
	if !ok {
		return fmt.Errorf("pipeline %s declares no overlay sampler", PipelineOverlay)
	}
	_, paramsBinding, ok := vertex.ProviderGroup(shader.AnnotationArgOverlayParams, "")
	if !ok {
		return fmt.Errorf("pipeline %s declares no overlay params", PipelineOverlay)
	}
	r.overlayTextureBinding = texBinding
	r.overlaySamplerBinding = samplerBinding
	r.overlayParamsBinding = paramsBinding
	r.overlayLayout = p.BindGroupLayoutDescriptors()[group]

	r.fpsText = hud.NewFPSText(r.fontScale)
	img, _ := r.fpsText.Update(0)
	staging := common.NewTextureStagingData(img)

	r.overlayProvider = bind_group_provider.NewBindGroupProvider("overlay")
	if err := r.backend.InitTextureView(r.overlayProvider, texBinding, *staging); err != nil {
		return fmt.Errorf("overlay texture: %w", err)
	}
	r.overlayWidth, r.overlayHeight = staging.Width, staging.Height

	err := r.backend.InitSampler(r.overlayProvider, samplerBinding, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	})
	if err != nil {
		return fmt.Errorf("overlay sampler: %w", err)
	}
	if err := r.backend.InitBindGroup(r.overlayProvider, r.overlayLayout, nil); err != nil {
		return fmt.Errorf("overlay bind group: %w", err)
	}
	return nil
}

// buildPipelines loads the embedded shaders and assembles the renderer's pipelines.
// No GPU objects are created.
func buildPipelines(fsys fs.FS) (map[string]pipeline.Pipeline, error) {
	load := func(key string, t shader.ShaderType) (shader.Shader, error) {
		return shader.LoadShader(fsys, key, t, "assets/shaders/"+key+".wgsl")
	}
	cubeVS, err := load("cube_vertex", shader.ShaderTypeVertex)
	if err != nil {
		return nil, err
	}
	cubeFS, err := load("cube_fragment", shader.ShaderTypeFragment)
	if err != nil {
		return nil, err
	}
	overlayVS, err := load("overlay_vertex", shader.ShaderTypeVertex)
	if err != nil {
		return nil, err
	}
	overlayFS, err := load("overlay_fragment", shader.ShaderTypeFragment)
	if err != nil {
		return nil, err
	}

	return map[string]pipeline.Pipeline{
		PipelineCubeSolid: pipeline.NewPipeline(PipelineCubeSolid,
			pipeline.WithShaders(cubeVS, cubeFS),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		// Edges are drawn after the faces they outline; LessEqual keeps them from z-fighting.
		PipelineCubeWire: pipeline.NewPipeline(PipelineCubeWire,
			pipeline.WithShaders(cubeVS, cubeFS),
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
			pipeline.WithDepthCompare(wgpu.CompareFunctionLessEqual),
		),
		PipelineOverlay: pipeline.NewPipeline(PipelineOverlay,
			pipeline.WithShaders(overlayVS, overlayFS),
			pipeline.WithDepth(false, false),
			pipeline.WithAlphaBlending(),
		),
	}, nil
}

// growInstances replaces the storage buffer of a batch with one holding capacity instances.
// Callers hold r.mu or have exclusive access during construction.
func (r *renderer) growInstances(batch drawBatch, capacity int) error {
	provider := r.instanceProviders[batch]
	old := provider.Buffer(r.instanceBinding)
	provider.SetBuffer(r.instanceBinding, nil)

	size := uint64(capacity) * uint64(model.GPUInstanceDataSize)
	err := r.backend.InitBindGroup(provider, r.instanceLayout, map[int]uint64{r.instanceBinding: size})
	if err != nil {
		provider.SetBuffer(r.instanceBinding, old)
		return fmt.Errorf("instance buffer %s: %w", provider.Label(), err)
	}
	if old != nil {
		old.Release()
	}
	r.instanceCapacity[batch] = capacity
	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width <= 0 || height <= 0 {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mode == r.presentMode {
		return nil
	}
	if r.drawing {
		return errors.New("SetPresentMode called during a frame")
	}
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	if r.width <= 0 || r.height <= 0 {
		return nil
	}
	return r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) BeginDrawing() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.drawing {
		return errors.New("BeginDrawing called twice without EndDrawing")
	}
	r.drawing = true
	r.in3D = false
	r.overlayShow = false
	r.list.reset()
	return nil
}

func (r *renderer) ClearBackground(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) BeginMode3D(cam camera.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.in3D = true
	r.cameraUniform = cam.GPUUniform()
	r.list.setFrustum(cam.Frustum(), r.culling)
}

func (r *renderer) DrawCube(position, size mgl32.Vec3, c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.in3D {
		r.list.add(batchSolid, position, size, c)
	}
}

func (r *renderer) DrawCubeWires(position, size mgl32.Vec3, c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.in3D {
		r.list.add(batchWire, position, size, c)
	}
}

func (r *renderer) EndMode3D() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.in3D = false
}

func (r *renderer) DrawFPS(x, y, fps int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overlayShow = true
	r.overlayX, r.overlayY = x, y
	r.overlayFPS = fps
}

// prepareOverlay refreshes the FPS texture if its label changed and returns the placement uniform write.
// Callers hold r.mu.
func (r *renderer) prepareOverlay() (bind_group_provider.BufferWrite, error) {
	img, changed := r.fpsText.Update(r.overlayFPS)
	if changed {
		staging := common.NewTextureStagingData(img)
		if staging.Width == r.overlayWidth && staging.Height == r.overlayHeight {
			if err := r.backend.WriteTexture(r.overlayProvider, r.overlayTextureBinding, *staging); err != nil {
				return bind_group_provider.BufferWrite{}, err
			}
		} else {
			if err := r.backend.InitTextureView(r.overlayProvider, r.overlayTextureBinding, *staging); err != nil {
				return bind_group_provider.BufferWrite{}, err
			}
			if err := r.backend.InitBindGroup(r.overlayProvider, r.overlayLayout, nil); err != nil {
				return bind_group_provider.BufferWrite{}, err
			}
			r.overlayWidth, r.overlayHeight = staging.Width, staging.Height
		}
	}

	params := hud.NewGPUOverlayParams(
		float32(r.overlayX), float32(r.overlayY),
		float32(r.overlayWidth), float32(r.overlayHeight),
		float32(r.width), float32(r.height),
	)
	return bind_group_provider.BufferWrite{
		Provider: r.overlayProvider,
		Binding:  r.overlayParamsBinding,
		Data:     params.Marshal(),
	}, nil
}

func (r *renderer) EndDrawing() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.drawing {
		return errors.New("EndDrawing called without BeginDrawing")
	}
	r.drawing = false
	r.in3D = false
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	writes := []bind_group_provider.BufferWrite{{
		Provider: r.cameraProvider,
		Binding:  r.cameraBinding,
		Data:     r.cameraUniform.Marshal(),
	}}
	for b := range batchCount {
		n := r.list.count(b)
		if n == 0 {
			continue
		}
		if n > r.instanceCapacity[b] {
			if err := r.growInstances(b, instanceCapacity(n)); err != nil {
				return err
			}
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: r.instanceProviders[b],
			Binding:  r.instanceBinding,
			Data:     r.list.marshal(b),
		})
	}
	if r.overlayShow {
		w, err := r.prepareOverlay()
		if err != nil {
			return fmt.Errorf("fps overlay: %w", err)
		}
		writes = append(writes, w)
	}
	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(clearValue(r.clearColor, r.srgbTarget)); err != nil {
		return err
	}

	groups := make([]bind_group_provider.BindGroupProvider, max(r.cameraGroup, r.instanceGroup)+1)
	groups[r.cameraGroup] = r.cameraProvider
	cubes := [batchCount]struct {
		key  string
		mesh model.Model
	}{
		batchSolid: {PipelineCubeSolid, r.cubeModel},
		batchWire:  {PipelineCubeWire, r.wireModel},
	}
	for b := range batchCount {
		groups[r.instanceGroup] = r.instanceProviders[b]
		r.backend.DrawCall(r.pipelineCache[cubes[b].key], cubes[b].mesh.MeshProvider(), uint32(r.list.count(b)), groups)
	}
	if r.overlayShow {
		r.backend.DrawVertices(r.pipelineCache[PipelineOverlay], overlayVertexCount, []bind_group_provider.BindGroupProvider{r.overlayProvider})
	}

	if err := r.backend.EndFrame(); err != nil {
		return err
	}
	r.backend.Present()

	r.stats = FrameStats{
		Drawn:  r.list.count(batchSolid) + r.list.count(batchWire),
		Culled: r.list.culled,
	}
	return nil
}

// clearValue converts a background color into the render pass clear value for the surface format.
func clearValue(c common.Color, srgbTarget bool) wgpu.Color {
	if !srgbTarget {
		return c.WGPU()
	}
	v := shaderColor(c.Vec4(), true)
	return wgpu.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2]), A: float64(v[3])}
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.instanceProviders {
		if p != nil {
			p.Release()
		}
	}
	for _, p := range []bind_group_provider.BindGroupProvider{r.cameraProvider, r.overlayProvider} {
		if p != nil {
			p.Release()
		}
	}
	for _, m := range []model.Model{r.cubeModel, r.wireModel} {
		if m != nil {
			m.MeshProvider().Release()
		}
	}
	for key, p := range r.pipelineCache {
		if rp := p.Pipeline(); rp != nil {
			rp.Release()
		}
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
