package window

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window *glfw.Window
}

// newPlatformWindow creates the GLFW window and registers its input callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize GLFW")
	}

	// WebGPU provides its own graphics API, so no OpenGL context is created.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if w.resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrap(err, "failed to create GLFW window")
	}
	if w.minWidth > 0 || w.minHeight > 0 || w.maxWidth > 0 || w.maxHeight > 0 {
		win.SetSizeLimits(sizeLimit(w.minWidth), sizeLimit(w.minHeight), sizeLimit(w.maxWidth), sizeLimit(w.maxHeight))
	}
	w.internal = &glfwWindow{window: win}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			w.onKey(TranslateKey(key), true)
		case glfw.Release:
			w.onKey(TranslateKey(key), false)
		}
	})

	// The framebuffer size is what the surface is configured with; on high-DPI displays it differs
	// from the window size.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.onResize(width, height)
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// platformSurfaceDescriptor creates the surface descriptor through the wgpuglfw bridge.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internal == nil || w.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.internal.window)
}

func platformIsRunning(w *engineWindow) bool {
	if w.internal == nil || w.closed {
		return false
	}
	return !w.internal.window.ShouldClose()
}

// platformPollEvents processes pending GLFW events without blocking; callbacks run inside it.
func platformPollEvents(_ *engineWindow) {
	glfw.PollEvents()
}

func platformClose(w *engineWindow) error {
	if w.internal == nil {
		return errors.New("window: not initialized")
	}
	if w.closed {
		return nil
	}
	w.closed = true
	w.internal.window.SetShouldClose(true)
	w.internal.window.Destroy()
	glfw.Terminate()
	return nil
}
