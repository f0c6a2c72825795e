package shader

import (
	"testing"
	"testing/fstest"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCubeVertex = `//@mj:include camera
//@mj:include vertex
//@mj:include instance_data

//@mj:group 0 0 storage_uniform camera camera
//@mj:provider 1 0 instances
@group(1) @binding(0) var<storage, read> instances: array<InstanceData>;

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

@vertex
fn vs_main(in: VertexInput, @builtin(instance_index) idx: u32) -> VertexOutput {
    var out: VertexOutput;
    let inst = instances[idx];
    out.clip_position = camera.view_proj * inst.model * vec4<f32>(in.position, 1.0);
    out.color = inst.color;
    return out;
}
`

const testOverlayFragment = `//@mj:include overlay_params

//@mj:provider 0 0 overlay overlay_texture
@group(0) @binding(0) var overlay_texture: texture_2d<f32>;
//@mj:provider 0 1 overlay overlay_sampler
@group(0) @binding(1) var overlay_sampler: sampler;
//@mj:group 0 2 storage_uniform params overlay_params

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(overlay_texture, overlay_sampler, uv) * params.screen.w;
}
`

func TestParseAnnotation(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		want    AnnotationType
		wantErr bool
	}{
		{name: "plain code", line: "let x = 1;"},
		{name: "ordinary comment", line: "// just a comment"},
		{name: "prefix outside comment", line: `let s = "@mj:include camera";`},
		{name: "include", line: "//@mj:include camera", want: annotationTypeInclude},
		{name: "group", line: "//@mj:group 0 0 storage_uniform camera camera", want: AnnotationTypeBindingGroup},
		{name: "group array", line: "//@mj:group 1 0 storage_read instances array<instance_data>", want: AnnotationTypeBindingGroup},
		{name: "provider", line: "  //@mj:provider 1 0 instances", want: AnnotationTypeProvider},
		{name: "provider role", line: "//@mj:provider 0 1 overlay overlay_sampler", want: AnnotationTypeProvider},
		{name: "empty", line: "//@mj:", wantErr: true},
		{name: "unknown type", line: "//@mj:define x", wantErr: true},
		{name: "unknown include", line: "//@mj:include light", wantErr: true},
		{name: "include arity", line: "//@mj:include camera vertex", wantErr: true},
		{name: "bad group", line: "//@mj:group a 0 storage_uniform camera camera", wantErr: true},
		{name: "bad binding", line: "//@mj:group 0 b storage_uniform camera camera", wantErr: true},
		{name: "bad address space", line: "//@mj:group 0 0 private camera camera", wantErr: true},
		{name: "bad element type", line: "//@mj:group 0 0 storage_read xs array<light>", wantErr: true},
		{name: "unknown provider", line: "//@mj:provider 0 0 shadow", wantErr: true},
		{name: "unknown role", line: "//@mj:provider 0 0 overlay diffuse_texture", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := parseAnnotation(tc.line, 7)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "line 7")
				return
			}
			require.NoError(t, err)
			if tc.want == "" {
				assert.Nil(t, a)
				return
			}
			require.NotNil(t, a)
			assert.Equal(t, tc.want, a.Type)
			assert.Equal(t, 7, a.Line)
		})
	}
}

func TestExpandAnnotations(t *testing.T) {
	out, decls, err := expandAnnotations(testCubeVertex)
	require.NoError(t, err)

	assert.Contains(t, out, "struct CameraUniform")
	assert.Contains(t, out, "struct VertexInput")
	assert.Contains(t, out, "struct InstanceData")
	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;")
	assert.NotContains(t, out, "@mj:")

	require.Len(t, decls, 2)
	assert.Equal(t, AnnotationTypeBindingGroup, decls[0].Type)
	assert.Equal(t, AnnotationTypeProvider, decls[1].Type)
	assert.Equal(t, AnnotationArgInstances, decls[1].Args[0])

	plain := "fn f() {}\n\nfn g() {}"
	out, decls, err = expandAnnotations(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, out)
	assert.Empty(t, decls)
}

func TestExpandAnnotationsArrayDeclaration(t *testing.T) {
	out, _, err := expandAnnotations("//@mj:group 1 0 storage_read instances array<instance_data>")
	require.NoError(t, err)
	assert.Equal(t, "@group(1) @binding(0) var<storage, read> instances: array<InstanceData>;", out)
}

func TestNewShaderVertex(t *testing.T) {
	s, err := NewShader("cube_solid_vs", ShaderTypeVertex, testCubeVertex)
	require.NoError(t, err)

	assert.Equal(t, "cube_solid_vs", s.Key())
	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	require.NotNil(t, s.Module())
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	layout := layouts[0][0]
	assert.Equal(t, uint64(24), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)

	camLayout := s.BindGroupLayoutDescriptor(0)
	require.Len(t, camLayout.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, camLayout.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(80), camLayout.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, camLayout.Entries[0].Visibility)

	instLayout := s.BindGroupLayoutDescriptor(1)
	require.Len(t, instLayout.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, instLayout.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(80), instLayout.Entries[0].Buffer.MinBindingSize)

	assert.Equal(t, "instances", s.BindGroupVarName(1, 0))
	assert.Equal(t, "", s.BindGroupVarName(5, 0))
	binding, ok := s.BindGroupFromVarName(0, "camera")
	assert.True(t, ok)
	assert.Equal(t, 0, binding)
	_, ok = s.BindGroupFromVarName(0, "missing")
	assert.False(t, ok)

	group, binding, ok := s.ProviderGroup(AnnotationArgInstances, "")
	require.True(t, ok)
	assert.Equal(t, 1, group)
	assert.Equal(t, 0, binding)
	group, _, ok = s.ProviderGroup(AnnotationArgCamera, "")
	require.True(t, ok)
	assert.Equal(t, 0, group)
}

func TestNewShaderFragmentTextures(t *testing.T) {
	s, err := NewShader("overlay_fs", ShaderTypeFragment, testOverlayFragment)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())

	layout := s.BindGroupLayoutDescriptor(0)
	require.Len(t, layout.Entries, 3)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, layout.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, layout.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, layout.Entries[1].Sampler.Type)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, layout.Entries[2].Buffer.Type)
	assert.Equal(t, uint64(32), layout.Entries[2].Buffer.MinBindingSize)
	for _, e := range layout.Entries {
		assert.Equal(t, wgpu.ShaderStageFragment, e.Visibility)
	}

	_, binding, ok := s.ProviderGroup(AnnotationArgOverlay, AnnotationArgOverlaySampler)
	require.True(t, ok)
	assert.Equal(t, 1, binding)
	_, binding, ok = s.ProviderGroup(AnnotationArgOverlay, "")
	require.True(t, ok)
	assert.Equal(t, 0, binding)
	_, _, ok = s.ProviderGroup(AnnotationArgInstances, "")
	assert.False(t, ok)
}

func TestNewShaderErrors(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeVertex, "")
	assert.Error(t, err)

	_, err = NewShader("no_entry", ShaderTypeFragment, testCubeVertex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@fragment")

	_, err = NewShader("bad_annotation", ShaderTypeVertex, "//@mj:include nothing\n@vertex fn vs_main() {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_annotation")
}

func TestLoadShader(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/cube.wgsl": {Data: []byte(testCubeVertex)},
	}
	s, err := LoadShader(fsys, "cube", ShaderTypeVertex, "shaders/cube.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "vs_main", s.EntryPoint())

	_, err = LoadShader(fsys, "missing", ShaderTypeVertex, "shaders/missing.wgsl")
	assert.Error(t, err)
}

func TestReflectStructLayouts(t *testing.T) {
	m := reflectWGSL(`
struct Inner { a: vec3<f32>, b: f32, }
/* nested /* block */ comment */
struct Outer { inner: Inner, tail: array<vec4<f32>, 2>, }
struct Packed { m: mat3x3f, h: vec2h, } // trailing
struct Lights { count: u32, items: array<vec4f>, }
struct Loop { next: Loop, }
`)
	cases := []struct {
		typ    string
		layout typeLayout
	}{
		{"Inner", typeLayout{16, 16}},
		{"Outer", typeLayout{48, 16}},
		{"Packed", typeLayout{64, 16}},
		{"Lights", typeLayout{16, 16}},
		{"mat4x4<f32>", typeLayout{64, 16}},
		{"mat2x3f", typeLayout{32, 16}},
		{"array<Inner>", typeLayout{16, 16}},
		{"array<vec3<f32>, 3>", typeLayout{48, 16}},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			layout, ok := m.layoutOf(tc.typ)
			require.True(t, ok)
			assert.Equal(t, tc.layout, layout)
		})
	}

	_, ok := m.layoutOf("Loop")
	assert.False(t, ok)
	_, ok = m.layoutOf("Unknown")
	assert.False(t, ok)
}

func TestReflectTextureBindings(t *testing.T) {
	m := reflectWGSL(`
@group(0) @binding(0) var shadow: texture_depth_2d_array;
@group(0) @binding(1) var ids: texture_2d<u32>;
@group(0) @binding(2) var msaa: texture_multisampled_2d<f32>;
@group(0) @binding(3) var cmp: sampler_comparison;
@group(0) @binding(4) var<storage, read_write> out: array<u32>;
`)
	layouts, names := m.bindGroupLayouts(wgpu.ShaderStageFragment)
	entries := layouts[0].Entries
	require.Len(t, entries, 5)

	assert.Equal(t, wgpu.TextureSampleTypeDepth, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2DArray, entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.TextureSampleTypeUint, entries[1].Texture.SampleType)
	assert.True(t, entries[2].Texture.Multisampled)
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, entries[3].Sampler.Type)
	assert.Equal(t, wgpu.BufferBindingTypeStorage, entries[4].Buffer.Type)
	assert.Equal(t, uint64(4), entries[4].Buffer.MinBindingSize)
	assert.Equal(t, "out", names[0][4])
}

func TestReflectEntryPoints(t *testing.T) {
	m := reflectWGSL(`
// @vertex fn commented_out() {}
@compute @workgroup_size(64) fn cs_main() {}
@vertex
fn vs_main() {}
@fragment fn fs_main() {}
@fragment fn fs_other() {}
`)
	assert.Equal(t, "vs_main", m.entryPoint(ShaderTypeVertex))
	assert.Equal(t, "fs_main", m.entryPoint(ShaderTypeFragment))
}

func TestSplitTopLevel(t *testing.T) {
	parts := splitTopLevel("a: array<vec4<f32>, 4>, b: f32,\n")
	require.Len(t, parts, 2)
	assert.Equal(t, "a: array<vec4<f32>, 4>", parts[0])
	assert.Equal(t, " b: f32", parts[1])
}

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, "ShaderType(9)", ShaderType(9).String())
}
