package pipeline

import (
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption configures a Pipeline at construction.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets the two stages of the pipeline. Validate checks that they are
// a vertex and a fragment shader, in that order.
//
// Parameters:
//   - vertex: the vertex stage
//   - fragment: the fragment stage
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithShaders(vertex, fragment shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vertex
		p.fragmentShader = fragment
	}
}

// WithDepth sets whether fragments are tested against and written to the depth buffer.
// Screen-space overlays turn both off.
//
// Parameters:
//   - test: compare against the depth buffer
//   - write: store the fragment depth
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.DepthTest = test
		p.state.DepthWrite = write
	}
}

// WithDepthCompare sets the depth comparison, wgpu.CompareFunctionLess by default.
func WithDepthCompare(compare wgpu.CompareFunction) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.DepthCompare = compare
	}
}

// WithAlphaBlending enables source-over alpha blending.
func WithAlphaBlending() PipelineBuilderOption {
	return func(p *pipeline) {
		blend := AlphaBlend
		p.state.Blend = &blend
	}
}

// WithBlendState enables blending with a custom state.
//
// Parameters:
//   - state: the blend state, nil for AlphaBlend
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithBlendState(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		if state == nil {
			blend := AlphaBlend
			state = &blend
		}
		p.state.Blend = state
	}
}

// WithCullMode sets which faces are discarded, none by default.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.CullMode = mode
	}
}

// WithTopology sets how vertices are assembled, triangle lists by default.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.Topology = topology
	}
}

// WithFrontFace sets the winding of front faces, counter-clockwise by default.
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.FrontFace = frontFace
	}
}

// WithWriteMask sets which color channels are written.
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.WriteMask = writeMask
	}
}
