package bind_group_provider

// BindGroupProviderOption configures a BindGroupProvider at construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithIndexCount sets the number of indices drawn per instance for a mesh provider.
//
// Parameters:
//   - count: the index count
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}
