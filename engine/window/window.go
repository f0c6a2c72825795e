package window

import (
	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/Carmen-Shannon/mini-jeu-3d/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and per-frame input state.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	input.State

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// DisableCursor hides the cursor and locks it to the window so mouse movement is unbounded.
	DisableCursor()

	// EnableCursor restores the normal cursor.
	EnableCursor()

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// PollEvents processes pending window events without blocking and samples the cursor
	// so MouseDelta reports the movement since the previous call.
	PollEvents()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// sizeLimits holds the resize bounds; zero means unconstrained.
type sizeLimits struct {
	minWidth, minHeight int
	maxWidth, maxHeight int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// limits bounds interactive resizing.
	limits sizeLimits

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// resizable controls whether the user can resize the window.
	resizable bool

	// focused mirrors the platform focus state.
	focused bool

	// cursor turns absolute cursor samples into per-frame deltas.
	cursor cursorTracker

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onResize is called when the window is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

// newEngineWindow applies the defaults, a fixed 800x600 frame, then options.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:   "Mini-Jeu 3D",
		limits:  sizeLimits{minWidth: 320, minHeight: 240},
		width:   800,
		height:  600,
		focused: true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) DisableCursor() {
	platformSetCursorDisabled(w, true)
	w.cursor.reset()
}

func (w *engineWindow) EnableCursor() {
	platformSetCursorDisabled(w, false)
	w.cursor.reset()
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) PollEvents() {
	platformPollEvents(w)
	if x, y, ok := platformCursorPos(w); ok {
		w.cursor.sample(x, y)
	}
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) IsKeyDown(key common.Key) bool {
	return platformIsKeyDown(w, key)
}

func (w *engineWindow) MouseDelta() (dx, dy float32) {
	return w.cursor.dx, w.cursor.dy
}

func (w *engineWindow) Focused() bool {
	return w.focused
}

// setFocused records a focus change. Regaining focus drops the previous cursor sample
// so the jump accumulated while unfocused is not reported as movement.
func (w *engineWindow) setFocused(focused bool) {
	w.focused = focused
	if focused {
		w.cursor.reset()
	}
}

// cursorTracker converts absolute cursor positions into deltas between consecutive samples.
type cursorTracker struct {
	lastX, lastY float64
	dx, dy       float32
	primed       bool
}

// sample records a new cursor position and updates the delta.
// The first sample after a reset produces a zero delta.
func (c *cursorTracker) sample(x, y float64) {
	if !c.primed {
		c.dx, c.dy = 0, 0
	} else {
		c.dx = float32(x - c.lastX)
		c.dy = float32(y - c.lastY)
	}
	c.lastX, c.lastY = x, y
	c.primed = true
}

// reset forgets the previous sample and clears the current delta.
func (c *cursorTracker) reset() {
	c.primed = false
	c.dx, c.dy = 0, 0
}
