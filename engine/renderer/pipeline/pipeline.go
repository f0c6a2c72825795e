package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/mini-jeu-3d/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline pairs a vertex and a fragment shader with the fixed-function State they are drawn with.
// The GPU object is created when a backend registers the pipeline.
type Pipeline interface {
	// PipelineKey returns the name the renderer looks this pipeline up by.
	PipelineKey() string

	// Shader returns the stage of the given type, or nil.
	//
	// Parameters:
	//   - shaderType: vertex or fragment
	//
	// Returns:
	//   - shader.Shader: the stage, nil when unset or for any other type
	Shader(shaderType shader.ShaderType) shader.Shader

	// State returns the fixed-function configuration.
	State() State

	// Validate reports a missing or misplaced shader stage.
	//
	// Returns:
	//   - error: an error naming the pipeline and the problem, or nil
	Validate() error

	// BindGroupLayoutDescriptors merges the bind group layouts declared by both stages.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged layouts keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// Pipeline returns the GPU pipeline, nil before registration.
	Pipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the GPU pipeline created from this description.
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

type pipeline struct {
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	state State

	renderPipeline *wgpu.RenderPipeline
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline description starting from DefaultState.
//
// Parameters:
//   - pipelineKey: the lookup name, also used as the GPU label
//   - opts: options applied in order
//
// Returns:
//   - Pipeline: the unregistered pipeline
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		state:       DefaultState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) State() State {
	return p.state
}

func (p *pipeline) Validate() error {
	switch {
	case p.vertexShader == nil || p.fragmentShader == nil:
		return fmt.Errorf("pipeline %s: both vertex and fragment shaders must be set", p.pipelineKey)
	case p.vertexShader.ShaderType() != shader.ShaderTypeVertex:
		return fmt.Errorf("pipeline %s: %s is not a vertex shader", p.pipelineKey, p.vertexShader.Key())
	case p.fragmentShader.ShaderType() != shader.ShaderTypeFragment:
		return fmt.Errorf("pipeline %s: %s is not a fragment shader", p.pipelineKey, p.fragmentShader.Key())
	}
	return nil
}

func (p *pipeline) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	var stages []map[int]wgpu.BindGroupLayoutDescriptor
	for _, s := range []shader.Shader{p.vertexShader, p.fragmentShader} {
		if s != nil {
			stages = append(stages, s.BindGroupLayoutDescriptors())
		}
	}
	return MergeBindGroupLayouts(stages...)
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
