package renderer

// RendererBuilderOption configures a renderer in NewRenderer, before the GPU is touched.
type RendererBuilderOption func(*renderer)

// WithPresentMode selects vsync or uncapped presentation. Uncapped is the default; the
// engine's frame limiter then sets the pace.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the sample count of the color and depth attachments, MSAA4x by default.
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer requests wgpu's fallback adapter. This needs a software
// Vulkan driver such as lavapipe or SwiftShader to be installed.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithFrustumCulling toggles skipping cubes whose bounds lie outside the view volume. On by default.
func WithFrustumCulling(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.culling = enabled
	}
}

// WithFontScale sets the integer upscale of the FPS label glyphs.
//
// Parameters:
//   - scale: pixels per font pixel, clamped to at least 1
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithFontScale(scale int) RendererBuilderOption {
	return func(r *renderer) {
		r.fontScale = max(scale, 1)
	}
}
