package model

import (
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	vertices     []GPUVertex
	indices      []uint32
	meshProvider bind_group_provider.BindGroupProvider
	halfExtents  mgl32.Vec3
}

// Model defines the interface for a static mesh.
// A Model holds CPU-side vertex/index data and a BindGroupProvider that receives the
// GPU vertex and index buffers once the Renderer has uploaded them.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the CPU-side vertices.
	//
	// Returns:
	//   - []GPUVertex: the vertex list
	Vertices() []GPUVertex

	// Indices returns the CPU-side index list.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// VertexData returns the vertices serialized for GPU upload.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the indices serialized for GPU upload.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// HalfExtents returns the half size of the mesh's bounding box, measured from the origin.
	//
	// Returns:
	//   - mgl32.Vec3: the bounding half extents
	HalfExtents() mgl32.Vec3

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider
}

var _ Model = &model{}

// NewModel creates a new Model instance with the provided options.
// A mesh provider labeled after the model is created when none is supplied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new Model instance configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider("mesh_"+m.name,
			bind_group_provider.WithIndexCount(len(m.indices)),
		)
	} else {
		m.meshProvider.SetIndexCount(len(m.indices))
	}
	m.halfExtents = ComputeHalfExtents(m.vertices)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	return MarshalVertices(m.vertices)
}

func (m *model) IndexData() []byte {
	return MarshalIndices(m.indices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) HalfExtents() mgl32.Vec3 {
	return m.halfExtents
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}
