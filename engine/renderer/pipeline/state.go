package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// AlphaBlend is straight-alpha source-over blending.
var AlphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// State is the fixed-function part of a render pipeline.
type State struct {
	DepthTest    bool
	DepthWrite   bool
	DepthCompare wgpu.CompareFunction
	// Blend is nil for opaque pipelines.
	Blend     *wgpu.BlendState
	CullMode  wgpu.CullMode
	Topology  wgpu.PrimitiveTopology
	FrontFace wgpu.FrontFace
	WriteMask wgpu.ColorWriteMask
}

// DefaultState returns an opaque, depth tested triangle list state with no culling.
func DefaultState() State {
	return State{
		DepthTest:    true,
		DepthWrite:   true,
		DepthCompare: wgpu.CompareFunctionLess,
		CullMode:     wgpu.CullModeNone,
		Topology:     wgpu.PrimitiveTopologyTriangleList,
		FrontFace:    wgpu.FrontFaceCCW,
		WriteMask:    wgpu.ColorWriteMaskAll,
	}
}

// EffectiveDepthCompare is the comparison handed to the GPU: always passing when depth testing is off.
func (s State) EffectiveDepthCompare() wgpu.CompareFunction {
	if !s.DepthTest {
		return wgpu.CompareFunctionAlways
	}
	return s.DepthCompare
}

// Primitive returns the primitive assembly state.
func (s State) Primitive() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  s.Topology,
		FrontFace: s.FrontFace,
		CullMode:  s.CullMode,
	}
}

// ColorTarget returns the state of the single color attachment.
//
// Parameters:
//   - format: the surface format the pipeline renders to
//
// Returns:
//   - wgpu.ColorTargetState: the target with this state's blend and write mask
func (s State) ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState {
	return wgpu.ColorTargetState{
		Format:    format,
		Blend:     s.Blend,
		WriteMask: s.WriteMask,
	}
}

// DepthStencil returns the depth attachment state. The stencil is unused and always passes.
//
// Parameters:
//   - format: the depth texture format
//
// Returns:
//   - *wgpu.DepthStencilState: the depth state
func (s State) DepthStencil(format wgpu.TextureFormat) *wgpu.DepthStencilState {
	always := wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways}
	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: s.DepthWrite,
		DepthCompare:      s.EffectiveDepthCompare(),
		StencilFront:      always,
		StencilBack:       always,
	}
}
