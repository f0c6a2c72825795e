package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwWindow struct {
	window  *glfw.Window
	running bool
}

// glfwOf returns the GLFW state of w, or nil before open and after close.
func glfwOf(w *engineWindow) *glfwWindow {
	gw, _ := w.internalWindow.(*glfwWindow)
	return gw
}

// newPlatformWindow opens a GLFW window without a client API, for WebGPU, and hooks its
// callbacks to w. The calling goroutine must stay on the main thread.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfwBool(w.resizable))

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	l := w.limits
	win.SetSizeLimits(sizeLimit(l.minWidth), sizeLimit(l.minHeight), sizeLimit(l.maxWidth), sizeLimit(l.maxHeight))

	gw := &glfwWindow{window: win, running: true}
	w.internalWindow = gw
	gw.installCallbacks(w)

	// The framebuffer can be larger than the requested size on high-DPI displays.
	w.width, w.height = win.GetFramebufferSize()
	w.focused = win.GetAttrib(glfw.Focused) == glfw.True
	return nil
}

func (gw *glfwWindow) installCallbacks(w *engineWindow) {
	gw.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			gw.window.SetShouldClose(true)
		}
	})
	gw.window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.setFocused(focused)
	})
	gw.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// sizeLimit maps a non-positive limit onto GLFW's "don't care" value.
func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// platformGetSurfaceDescriptor returns the native surface handle of the window for wgpu.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw := glfwOf(w)
	if gw == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw := glfwOf(w)
	return gw != nil && gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the window and terminates GLFW.
func platformCloseWindow(w *engineWindow) error {
	gw := glfwOf(w)
	if gw == nil {
		return errors.New("window is not initialized")
	}
	gw.running = false
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

func platformPollEvents(w *engineWindow) {
	if glfwOf(w) != nil {
		glfw.PollEvents()
	}
}

// platformCursorPos reads the cursor position relative to the client area. With the cursor
// disabled GLFW reports an unbounded virtual position.
func platformCursorPos(w *engineWindow) (x, y float64, ok bool) {
	gw := glfwOf(w)
	if gw == nil {
		return 0, 0, false
	}
	x, y = gw.window.GetCursorPos()
	return x, y, true
}

func platformIsKeyDown(w *engineWindow, key common.Key) bool {
	gw := glfwOf(w)
	return gw != nil && gw.window.GetKey(glfw.Key(key)) == glfw.Press
}

// platformSetCursorDisabled hides and captures the cursor, with raw motion when supported.
//
// Reference: https://www.glfw.org/docs/latest/input_guide.html#raw_mouse_motion
func platformSetCursorDisabled(w *engineWindow, disabled bool) {
	gw := glfwOf(w)
	if gw == nil {
		return
	}
	mode := glfw.CursorNormal
	if disabled {
		mode = glfw.CursorDisabled
	}
	gw.window.SetInputMode(glfw.CursorMode, mode)
	if glfw.RawMouseMotionSupported() {
		gw.window.SetInputMode(glfw.RawMouseMotion, glfwBool(disabled))
	}
}
