package pipeline

import (
	"cmp"
	"maps"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// MergeBindGroupLayouts combines the bind group layouts reflected from each shader stage into
// the set a render pipeline layout needs. A binding declared by several stages appears once,
// visible to all of them. Entries come back sorted by binding; the inputs are not modified.
//
// Parameters:
//   - stages: per-stage layouts keyed by group index, in stage order; the first label seen for a group wins
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged layouts keyed by group index
func MergeBindGroupLayouts(stages ...map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	groups := make(map[int]map[uint32]wgpu.BindGroupLayoutEntry)
	labels := make(map[int]string)

	for _, layouts := range stages {
		for group, desc := range layouts {
			bindings, ok := groups[group]
			if !ok {
				bindings = make(map[uint32]wgpu.BindGroupLayoutEntry, len(desc.Entries))
				groups[group] = bindings
				labels[group] = desc.Label
			}
			for _, entry := range desc.Entries {
				if seen, ok := bindings[entry.Binding]; ok {
					seen.Visibility |= entry.Visibility
					entry = seen
				}
				bindings[entry.Binding] = entry
			}
		}
	}

	merged := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for group, bindings := range groups {
		entries := slices.SortedFunc(maps.Values(bindings), func(a, b wgpu.BindGroupLayoutEntry) int {
			return cmp.Compare(a.Binding, b.Binding)
		})
		merged[group] = wgpu.BindGroupLayoutDescriptor{Label: labels[group], Entries: entries}
	}
	return merged
}

// MaxGroup returns the highest group index in layouts, or -1 when there are none.
func MaxGroup(layouts map[int]wgpu.BindGroupLayoutDescriptor) int {
	if len(layouts) == 0 {
		return -1
	}
	return slices.Max(slices.Collect(maps.Keys(layouts)))
}
