package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/mini-jeu-3d/engine/camera"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/hud"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/model"
)

// gpuStruct is a WGSL struct owned by a Go GPU type.
type gpuStruct struct {
	name   string
	source string
}

// gpuStructs are the structs an include or group annotation may name.
var gpuStructs = map[AnnotationArg]gpuStruct{
	AnnotationArgCamera:        {"CameraUniform", camera.GPUCameraUniformSource},
	annotationArgVertex:        {"VertexInput", model.GPUVertexSource},
	AnnotationArgInstanceData:  {"InstanceData", model.GPUInstanceDataSource},
	AnnotationArgOverlayParams: {"OverlayParams", hud.GPUOverlayParamsSource},
}

var addressSpaces = map[AnnotationArg]string{
	annotationArgStorageTypeUniform:   "var<uniform>",
	annotationArgStorageTypeRead:      "var<storage, read>",
	annotationArgStorageTypeReadWrite: "var<storage, read_write>",
}

// wgslTypeName maps a struct key, or array<key>, to the WGSL type it names.
func wgslTypeName(arg AnnotationArg) string {
	if inner, ok := strings.CutPrefix(string(arg), "array<"); ok {
		return "array<" + gpuStructs[AnnotationArg(strings.TrimSuffix(inner, ">"))].name + ">"
	}
	return gpuStructs[arg].name
}

// expandAnnotations rewrites the @mj: lines of a WGSL source. An include becomes the named
// struct's source and a group becomes its @group/@binding declaration. Provider lines are
// dropped from the output. Group and provider annotations are returned in source order.
//
// Parameters:
//   - source: WGSL source with annotations
//
// Returns:
//   - string: plain WGSL
//   - []Annotation: the group and provider annotations
//   - error: error naming the line of the first malformed annotation
func expandAnnotations(source string) (string, []Annotation, error) {
	var out strings.Builder
	var declarations []Annotation

	for i, line := range strings.Split(source, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", nil, err
		}
		if a == nil {
			out.WriteString(line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			s, ok := gpuStructs[a.Args[0]]
			if !ok {
				return "", nil, fmt.Errorf("line %d: unregistered include %q", a.Line, a.Args[0])
			}
			out.WriteString(s.source)
		case AnnotationTypeBindingGroup:
			fmt.Fprintf(&out, "@group(%d) @binding(%d) %s %s: %s;",
				a.Group, a.Binding, addressSpaces[a.Args[0]], a.Args[1], wgslTypeName(a.Args[2]))
			declarations = append(declarations, *a)
		case AnnotationTypeProvider:
			declarations = append(declarations, *a)
		}
	}
	return out.String(), declarations, nil
}
