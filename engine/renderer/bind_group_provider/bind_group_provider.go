// Package bind_group_provider holds the GPU resources behind one bind group or one mesh.
// Providers are plain containers: the renderer backend creates the resources and stores them here.
package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// slot is everything bound at one binding index. Only one of its fields is normally set,
// except for sampled textures which keep the texture alongside its view.
type slot struct {
	buffer  *wgpu.Buffer
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func (s *slot) release() {
	if s.view != nil {
		s.view.Release()
	}
	if s.texture != nil {
		s.texture.Release()
	}
	if s.sampler != nil {
		s.sampler.Release()
	}
	if s.buffer != nil {
		s.buffer.Release()
	}
	*s = slot{}
}

type bindGroupProvider struct {
	label string

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	slots           map[int]*slot

	// mesh providers carry index-drawn geometry instead of bindings
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider is the GPU side of a bind group (the camera uniform, an instance batch,
// the FPS overlay) or of a mesh. The backend fills it in InitBindGroup / InitMeshBuffers and
// reads it back when encoding draw calls.
type BindGroupProvider interface {
	// Release releases every GPU resource held by the provider. It is safe to call more than once.
	Release()

	// Label returns the debug label, also used to name the GPU resources.
	Label() string

	// BindGroup returns the bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created against, or nil.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding, or nil.
	Buffer(binding int) *wgpu.Buffer

	// Texture returns the texture backing the view at a binding, or nil.
	Texture(binding int) *wgpu.Texture

	// TextureView returns the texture view at a binding, or nil.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at a binding, or nil.
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the mesh vertex buffer, or nil.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the mesh index buffer, or nil.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn per instance.
	IndexCount() int

	// SetBindGroup stores the bind group. The previous one is not released.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the buffer for a binding. A nil buffer clears the binding
	// without releasing what was there.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores the texture for a binding.
	SetTexture(binding int, tex *wgpu.Texture)

	// SetTextureView stores the texture view for a binding.
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores the sampler for a binding.
	SetSampler(binding int, s *wgpu.Sampler)

	// SetVertexBuffer stores the mesh vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the mesh index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices drawn per instance.
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// BufferWrite is one queued upload into a provider's buffer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label
//   - options: functional options
//
// Returns:
//   - BindGroupProvider: the provider, holding no GPU resources yet
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label: label,
		slots: make(map[int]*slot),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// at returns the slot for a binding, creating it on first use.
func (p *bindGroupProvider) at(binding int) *slot {
	s, ok := p.slots[binding]
	if !ok {
		s = &slot{}
		p.slots[binding] = s
	}
	return s
}

// lookup returns the slot for a binding, or an empty one.
func (p *bindGroupProvider) lookup(binding int) slot {
	if s, ok := p.slots[binding]; ok {
		return *s
	}
	return slot{}
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.lookup(binding).buffer
}

func (p *bindGroupProvider) Texture(binding int) *wgpu.Texture {
	return p.lookup(binding).texture
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.lookup(binding).view
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.lookup(binding).sampler
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.at(binding).buffer = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture) {
	p.at(binding).texture = tex
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.at(binding).view = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.at(binding).sampler = s
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	// the bind group references the slots, so it goes first
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for binding, s := range p.slots {
		s.release()
		delete(p.slots, binding)
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for _, buf := range []**wgpu.Buffer{&p.vertexBuffer, &p.indexBuffer} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
}
