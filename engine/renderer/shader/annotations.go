// Package shader loads WGSL sources, expands their //@mj: annotations and reflects the
// entry points, vertex inputs and bind group layouts the pipelines are built from.
//
// Annotations are line comments, so an annotated file is still valid WGSL:
//
//	//@mj:include <struct>                                     paste a Go-owned struct definition
//	//@mj:group <group> <binding> <space> <name> <struct>      declare a buffer of that struct
//	//@mj:provider <group> <binding> <identity> [<role>]       tag a hand-written binding
//
// <struct> may be wrapped as array<struct>. Group and provider annotations are kept so the
// renderer can look up where each of its resources is bound.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const annotationPrefix = "@mj:"

// AnnotationType is the keyword following the @mj: prefix.
type AnnotationType string

const (
	annotationTypeInclude      AnnotationType = "include"
	AnnotationTypeBindingGroup AnnotationType = "group"
	AnnotationTypeProvider     AnnotationType = "provider"
)

// Annotation is one parsed //@mj: line.
type Annotation struct {
	Type AnnotationType

	// Args by type:
	//   - include:  struct
	//   - group:    address space, variable name, struct
	//   - provider: identity, then the optional role
	Args []AnnotationArg

	// Line is 1-based.
	Line int

	// Group and Binding are unset for includes.
	Group, Binding int
}

// AnnotationArg is a keyword argument of an annotation.
type AnnotationArg string

// Structs, each declared by a Go GPU type's embedded .wgsl asset.
const (
	AnnotationArgCamera        AnnotationArg = "camera"
	annotationArgVertex        AnnotationArg = "vertex"
	AnnotationArgInstanceData  AnnotationArg = "instance_data"
	AnnotationArgOverlayParams AnnotationArg = "overlay_params"
)

// Address spaces.
const (
	annotationArgStorageTypeUniform   AnnotationArg = "storage_uniform"
	annotationArgStorageTypeRead      AnnotationArg = "storage_read"
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"
)

// Provider identities name the renderer resource that owns a bind group.
const (
	AnnotationArgInstances AnnotationArg = "instances"
	AnnotationArgOverlay   AnnotationArg = "overlay"
)

// Roles tell apart the bindings of a multi-binding provider.
const (
	AnnotationArgOverlayTexture AnnotationArg = "overlay_texture"
	AnnotationArgOverlaySampler AnnotationArg = "overlay_sampler"
)

var (
	providerIdentities = []AnnotationArg{AnnotationArgCamera, AnnotationArgInstances, AnnotationArgOverlay}
	bindingRoles       = []AnnotationArg{AnnotationArgOverlayTexture, AnnotationArgOverlaySampler}
)

// annotationError prefixes an annotation error with its line.
func annotationError(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}

// parseAnnotation parses one source line. Lines that are not //@mj: comments yield nil, nil.
//
// Parameters:
//   - line: the source line
//   - lineNum: its 1-based number, used in errors
//
// Returns:
//   - *Annotation: the annotation, or nil
//   - error: error if the annotation is malformed or names an unknown keyword
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	comment, ok := strings.CutPrefix(strings.TrimSpace(line), "//")
	if !ok {
		return nil, nil
	}
	_, body, ok := strings.Cut(comment, annotationPrefix)
	if !ok {
		return nil, nil
	}
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return nil, annotationError(lineNum, "empty annotation")
	}

	a := &Annotation{Type: AnnotationType(fields[0]), Line: lineNum}
	args := fields[1:]
	switch a.Type {
	case annotationTypeInclude:
		if len(args) != 1 {
			return nil, annotationError(lineNum, "include takes one struct")
		}
		if _, ok := gpuStructs[AnnotationArg(args[0])]; !ok {
			return nil, annotationError(lineNum, "unknown struct %q", args[0])
		}
		a.Args = []AnnotationArg{AnnotationArg(args[0])}

	case AnnotationTypeBindingGroup:
		if len(args) != 5 {
			return nil, annotationError(lineNum, "group takes group, binding, address space, name and struct")
		}
		if err := a.parseSlot(args[0], args[1]); err != nil {
			return nil, err
		}
		space, name, typ := AnnotationArg(args[2]), AnnotationArg(args[3]), AnnotationArg(args[4])
		if _, ok := addressSpaces[space]; !ok {
			return nil, annotationError(lineNum, "unknown address space %q", space)
		}
		elem := strings.TrimSuffix(strings.TrimPrefix(string(typ), "array<"), ">")
		if _, ok := gpuStructs[AnnotationArg(elem)]; !ok {
			return nil, annotationError(lineNum, "unknown struct %q", elem)
		}
		a.Args = []AnnotationArg{space, name, typ}

	case AnnotationTypeProvider:
		if len(args) != 3 && len(args) != 4 {
			return nil, annotationError(lineNum, "provider takes group, binding, identity and an optional role")
		}
		if err := a.parseSlot(args[0], args[1]); err != nil {
			return nil, err
		}
		identity := AnnotationArg(args[2])
		if !slices.Contains(providerIdentities, identity) {
			return nil, annotationError(lineNum, "unknown provider identity %q", identity)
		}
		a.Args = []AnnotationArg{identity}
		if len(args) == 4 {
			role := AnnotationArg(args[3])
			if !slices.Contains(bindingRoles, role) {
				return nil, annotationError(lineNum, "unknown binding role %q", role)
			}
			a.Args = append(a.Args, role)
		}

	default:
		return nil, annotationError(lineNum, "unknown annotation %q", fields[0])
	}
	return a, nil
}

func (a *Annotation) parseSlot(group, binding string) error {
	var err error
	if a.Group, err = strconv.Atoi(group); err != nil {
		return annotationError(a.Line, "invalid group %q", group)
	}
	if a.Binding, err = strconv.Atoi(binding); err != nil {
		return annotationError(a.Line, "invalid binding %q", binding)
	}
	return nil
}
