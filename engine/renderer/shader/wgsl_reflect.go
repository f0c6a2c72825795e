package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// typeLayout is the host-shareable size and alignment of a WGSL type.
type typeLayout struct {
	size  uint64
	align uint64
}

type wgslMember struct {
	name     string
	typ      string
	location int // -1 without @location
	builtin  bool
}

type wgslStruct struct {
	name    string
	members []wgslMember
}

// wgslResource is a module scope @group/@binding variable.
type wgslResource struct {
	group   int
	binding int
	space   string // address space and access mode, empty for handle types
	name    string
	typ     string
}

// wgslModule is what the engine needs to know about a WGSL source to build pipeline layouts:
// its structs, resource variables and entry points. It is not a validator.
type wgslModule struct {
	structs   []wgslStruct
	byName    map[string]int
	resources []wgslResource
	entries   map[ShaderType]string

	layouts  map[string]typeLayout
	visiting map[string]bool
}

var (
	structRegex   = regexp.MustCompile(`\bstruct\s+(\w+)\s*\{([^}]*)\}`)
	memberRegex   = regexp.MustCompile(`^((?:@\w+(?:\([^)]*\))?\s*)*)(\w+)\s*:\s*(.+)$`)
	locationRegex = regexp.MustCompile(`@location\(\s*(\d+)\s*\)`)
	resourceRegex = regexp.MustCompile(`@group\(\s*(\d+)\s*\)\s*@binding\(\s*(\d+)\s*\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
	entryRegex    = regexp.MustCompile(`@(vertex|fragment|compute)\b(?:\s*@\w+(?:\([^)]*\))?)*\s*fn\s+(\w+)`)
	vectorRegex   = regexp.MustCompile(`^vec([234])(?:<\s*(\w+)\s*>|([fiuh]))$`)
	matrixRegex   = regexp.MustCompile(`^mat([234])x([234])(?:<\s*(\w+)\s*>|([fh]))$`)
)

var scalarSizes = map[string]uint64{
	"f32":  4,
	"i32":  4,
	"u32":  4,
	"bool": 4,
	"f16":  2,
}

var shorthandScalars = map[string]string{
	"f": "f32",
	"i": "i32",
	"u": "u32",
	"h": "f16",
}

// vertexFormats is indexed by scalar type, then component count.
var vertexFormats = map[string][5]wgpu.VertexFormat{
	"f32": {1: wgpu.VertexFormatFloat32, 2: wgpu.VertexFormatFloat32x2, 3: wgpu.VertexFormatFloat32x3, 4: wgpu.VertexFormatFloat32x4},
	"i32": {1: wgpu.VertexFormatSint32, 2: wgpu.VertexFormatSint32x2, 3: wgpu.VertexFormatSint32x3, 4: wgpu.VertexFormatSint32x4},
	"u32": {1: wgpu.VertexFormatUint32, 2: wgpu.VertexFormatUint32x2, 3: wgpu.VertexFormatUint32x3, 4: wgpu.VertexFormatUint32x4},
	"f16": {2: wgpu.VertexFormatFloat16x2, 4: wgpu.VertexFormatFloat16x4},
}

var textureDimensions = map[string]wgpu.TextureViewDimension{
	"1d":         wgpu.TextureViewDimension1D,
	"2d":         wgpu.TextureViewDimension2D,
	"2d_array":   wgpu.TextureViewDimension2DArray,
	"3d":         wgpu.TextureViewDimension3D,
	"cube":       wgpu.TextureViewDimensionCube,
	"cube_array": wgpu.TextureViewDimensionCubeArray,
}

// reflectWGSL scans a pre-processed WGSL source.
//
// Parameters:
//   - source: the WGSL source, comments allowed
//
// Returns:
//   - *wgslModule: the reflected module
func reflectWGSL(source string) *wgslModule {
	src := stripWGSLComments(source)
	m := &wgslModule{
		byName:   make(map[string]int),
		entries:  make(map[ShaderType]string),
		layouts:  make(map[string]typeLayout),
		visiting: make(map[string]bool),
	}

	for _, match := range structRegex.FindAllStringSubmatch(src, -1) {
		s := wgslStruct{name: match[1]}
		for _, decl := range splitTopLevel(match[2]) {
			if member, ok := parseMember(decl); ok {
				s.members = append(s.members, member)
			}
		}
		m.byName[s.name] = len(m.structs)
		m.structs = append(m.structs, s)
	}

	for _, match := range resourceRegex.FindAllStringSubmatch(src, -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		m.resources = append(m.resources, wgslResource{
			group:   group,
			binding: binding,
			space:   strings.TrimSpace(match[3]),
			name:    match[4],
			typ:     strings.TrimSpace(match[5]),
		})
	}

	for _, match := range entryRegex.FindAllStringSubmatch(src, -1) {
		var stage ShaderType
		switch match[1] {
		case "vertex":
			stage = ShaderTypeVertex
		case "fragment":
			stage = ShaderTypeFragment
		default:
			continue
		}
		if _, seen := m.entries[stage]; !seen {
			m.entries[stage] = match[2]
		}
	}
	return m
}

func parseMember(decl string) (wgslMember, bool) {
	decl = strings.TrimSpace(decl)
	match := memberRegex.FindStringSubmatch(decl)
	if match == nil {
		return wgslMember{}, false
	}
	member := wgslMember{
		name:     match[2],
		typ:      strings.TrimSpace(match[3]),
		location: -1,
		builtin:  strings.Contains(match[1], "@builtin"),
	}
	if loc := locationRegex.FindStringSubmatch(match[1]); loc != nil {
		member.location, _ = strconv.Atoi(loc[1])
	}
	return member, true
}

// entryPoint returns the first entry point declared for the stage, or "".
func (m *wgslModule) entryPoint(stage ShaderType) string {
	return m.entries[stage]
}

// vertexLayouts builds one vertex buffer layout per vertex input struct, in declaration order.
// A vertex input struct has @location members and no @builtin member; structs with a member
// that has no vertex format are skipped.
func (m *wgslModule) vertexLayouts() map[int][]wgpu.VertexBufferLayout {
	result := make(map[int][]wgpu.VertexBufferLayout)
	for _, s := range m.structs {
		layout, ok := vertexBufferLayout(s)
		if !ok {
			continue
		}
		result[len(result)] = []wgpu.VertexBufferLayout{layout}
	}
	return result
}

func vertexBufferLayout(s wgslStruct) (wgpu.VertexBufferLayout, bool) {
	if len(s.members) == 0 {
		return wgpu.VertexBufferLayout{}, false
	}
	attrs := make([]wgpu.VertexAttribute, 0, len(s.members))
	var offset uint64
	for _, member := range s.members {
		if member.builtin || member.location < 0 {
			return wgpu.VertexBufferLayout{}, false
		}
		format, size, ok := vertexFormat(member.typ)
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         offset,
			ShaderLocation: uint32(member.location),
		})
		offset += size
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}

// vertexFormat maps a scalar or vector type to its vertex format and packed byte size.
func vertexFormat(typ string) (wgpu.VertexFormat, uint64, bool) {
	n, scalar := 1, typ
	if vn, vs, ok := parseVector(typ); ok {
		n, scalar = vn, vs
	}
	formats, ok := vertexFormats[scalar]
	if !ok || formats[n] == 0 {
		return 0, 0, false
	}
	return formats[n], scalarSizes[scalar] * uint64(n), true
}

// bindGroupLayouts turns the resource variables into layout descriptors keyed by group,
// entries sorted by binding. Buffer entries get MinBindingSize from the bound type's layout;
// for runtime-sized arrays that is one element.
//
// Parameters:
//   - visibility: the stage flag set on every entry
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the descriptors
//   - map[int]map[int]string: variable names keyed by group then binding
func (m *wgslModule) bindGroupLayouts(visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	entries := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)

	for _, res := range m.resources {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(res.binding),
			Visibility: visibility,
		}
		switch {
		case res.space == "uniform":
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		case strings.HasPrefix(res.space, "storage"):
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
			if strings.Contains(res.space, "read_write") {
				entry.Buffer.Type = wgpu.BufferBindingTypeStorage
			}
		case res.typ == "sampler":
			entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		case res.typ == "sampler_comparison":
			entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
		default:
			setTextureBinding(&entry, res.typ)
		}
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if layout, ok := m.layoutOf(res.typ); ok {
				entry.Buffer.MinBindingSize = layout.size
			}
		}

		entries[res.group] = append(entries[res.group], entry)
		if names[res.group] == nil {
			names[res.group] = make(map[int]string)
		}
		names[res.group][res.binding] = res.name
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(entries))
	for group, list := range entries {
		sort.Slice(list, func(i, j int) bool { return list[i].Binding < list[j].Binding })
		result[group] = wgpu.BindGroupLayoutDescriptor{Entries: list}
	}
	return result, names
}

// setTextureBinding fills the texture part of entry for sampled and depth texture types.
// Other types leave the entry untouched.
func setTextureBinding(entry *wgpu.BindGroupLayoutEntry, typ string) {
	base, param := splitGeneric(typ)
	kind, ok := strings.CutPrefix(base, "texture_")
	if !ok {
		return
	}
	sampleType := wgpu.TextureSampleTypeFloat
	if rest, ok := strings.CutPrefix(kind, "depth_"); ok {
		sampleType = wgpu.TextureSampleTypeDepth
		kind = rest
	}
	multisampled := false
	if rest, ok := strings.CutPrefix(kind, "multisampled_"); ok {
		multisampled = true
		kind = rest
	}
	dim, ok := textureDimensions[kind]
	if !ok {
		return
	}
	if sampleType != wgpu.TextureSampleTypeDepth {
		switch param {
		case "i32":
			sampleType = wgpu.TextureSampleTypeSint
		case "u32":
			sampleType = wgpu.TextureSampleTypeUint
		}
	}
	entry.Texture.SampleType = sampleType
	entry.Texture.ViewDimension = dim
	entry.Texture.Multisampled = multisampled
}

// layoutOf resolves the size and alignment of a type per the WGSL host-shareable layout rules.
// A runtime-sized array resolves to one element stride. Unknown types report false.
func (m *wgslModule) layoutOf(typ string) (typeLayout, bool) {
	typ = strings.TrimSpace(typ)
	if l, ok := m.layouts[typ]; ok {
		return l, true
	}
	if m.visiting[typ] {
		return typeLayout{}, false
	}
	m.visiting[typ] = true
	l, ok := m.computeLayout(typ)
	delete(m.visiting, typ)
	if ok {
		m.layouts[typ] = l
	}
	return l, ok
}

func (m *wgslModule) computeLayout(typ string) (typeLayout, bool) {
	if size, ok := scalarSizes[typ]; ok {
		return typeLayout{size, size}, true
	}
	if n, scalar, ok := parseVector(typ); ok {
		size, ok := scalarSizes[scalar]
		if !ok {
			return typeLayout{}, false
		}
		align := size * uint64(n)
		if n == 3 {
			align = size * 4
		}
		return typeLayout{size * uint64(n), align}, true
	}
	if match := matrixRegex.FindStringSubmatch(typ); match != nil {
		scalar := match[3]
		if scalar == "" {
			scalar = shorthandScalars[match[4]]
		}
		column, ok := m.computeLayout("vec" + match[2] + "<" + scalar + ">")
		if !ok {
			return typeLayout{}, false
		}
		cols, _ := strconv.Atoi(match[1])
		return typeLayout{uint64(cols) * alignUp(column.size, column.align), column.align}, true
	}
	if elem, count, ok := parseArray(typ); ok {
		el, ok := m.layoutOf(elem)
		if !ok {
			return typeLayout{}, false
		}
		stride := alignUp(el.size, el.align)
		if count == 0 {
			return typeLayout{stride, el.align}, true
		}
		return typeLayout{count * stride, el.align}, true
	}
	if i, ok := m.byName[typ]; ok {
		return m.structLayout(m.structs[i])
	}
	return typeLayout{}, false
}

// structLayout places members at their aligned offsets. A trailing runtime-sized array
// contributes nothing past its offset unless it is the only member.
func (m *wgslModule) structLayout(s wgslStruct) (typeLayout, bool) {
	var offset uint64
	maxAlign := uint64(1)
	for i, member := range s.members {
		if member.builtin {
			continue
		}
		l, ok := m.layoutOf(member.typ)
		if !ok {
			return typeLayout{}, false
		}
		offset = alignUp(offset, l.align)
		maxAlign = max(maxAlign, l.align)
		if _, count, isArray := parseArray(member.typ); isArray && count == 0 && i == len(s.members)-1 && offset > 0 {
			return typeLayout{alignUp(offset, maxAlign), maxAlign}, true
		}
		offset += l.size
	}
	return typeLayout{alignUp(offset, maxAlign), maxAlign}, true
}

func parseVector(typ string) (int, string, bool) {
	match := vectorRegex.FindStringSubmatch(typ)
	if match == nil {
		return 0, "", false
	}
	n, _ := strconv.Atoi(match[1])
	if match[2] != "" {
		return n, match[2], true
	}
	return n, shorthandScalars[match[3]], true
}

// parseArray splits array<T, N> into T and N, and array<T> into T and 0.
func parseArray(typ string) (string, uint64, bool) {
	base, params := splitGeneric(typ)
	if base != "array" || params == "" {
		return "", 0, false
	}
	parts := splitTopLevel(params)
	elem := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return elem, 0, true
	}
	count, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimSpace(parts[1]), "u"), 10, 64)
	if err != nil || count == 0 {
		return "", 0, false
	}
	return elem, count, true
}

// splitGeneric splits "texture_2d<f32>" into "texture_2d" and "f32".
func splitGeneric(typ string) (string, string) {
	base, rest, ok := strings.Cut(typ, "<")
	if !ok {
		return strings.TrimSpace(typ), ""
	}
	return strings.TrimSpace(base), strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ">"))
}

// splitTopLevel splits at commas outside angle brackets. Empty trailing parts are dropped.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth = max(depth-1, 0)
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if tail := s[start:]; strings.TrimSpace(tail) != "" || len(parts) == 0 {
		parts = append(parts, tail)
	}
	return parts
}

// stripWGSLComments removes line comments and nested block comments in one pass.
// Newlines are kept so the remaining text keeps its line structure.
func stripWGSLComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		next := byte(0)
		if i+1 < len(source) {
			next = source[i+1]
		}
		switch {
		case c == '/' && next == '*':
			depth++
			i++
		case depth > 0 && c == '*' && next == '/':
			depth--
			i++
		case depth > 0:
			if c == '\n' {
				sb.WriteByte(c)
			}
		case c == '/' && next == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			if i < len(source) {
				sb.WriteByte('\n')
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func alignUp(value, align uint64) uint64 {
	if align == 0 {
		return value
	}
	return (value + align - 1) / align * align
}
