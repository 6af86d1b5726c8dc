package window

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a native window that a renderer.Context can present to.
type Window interface {
	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor for the window.
	// The descriptor is created by the wgpuglfw bridge and is platform-appropriate
	// (Windows HWND, X11, Wayland, macOS Metal).
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil once the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Size returns the framebuffer size in pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Run polls the window until it is closed, delivering events to handler on the calling goroutine.
	// Each iteration delivers the pending input events followed by one DrawEvent.
	// ExitEvent is delivered last, after which the window is destroyed.
	//
	// Parameters:
	//   - handler: function receiving every event
	Run(handler func(Event))

	// RequestExit asks Run to stop after the current iteration.
	RequestExit()

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// Close destroys the window. It is safe to call more than once.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// Size limits applied to user resizes. Zero means unlimited.
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	// width and height track the framebuffer size, which differs from the window size on high-DPI displays.
	width  int
	height int

	resizable     bool
	escapeCloses  bool
	queue         eventQueue
	internal      *glfwWindow
	closed        bool
	exitRequested bool
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window. It must be called from the main goroutine,
// which stays locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:        "baryon",
		width:        1280,
		height:       720,
		resizable:    true,
		escapeCloses: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformSurfaceDescriptor(w)
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) IsRunning() bool {
	return !w.exitRequested && platformIsRunning(w)
}

func (w *engineWindow) RequestExit() {
	w.exitRequested = true
}

func (w *engineWindow) Run(handler func(Event)) {
	for w.IsRunning() {
		platformPollEvents(w)
		w.queue.drain(handler)
		if !w.IsRunning() {
			break
		}
		handler(DrawEvent{})
		runtime.Gosched()
	}
	handler(ExitEvent{})
	_ = w.Close()
}

func (w *engineWindow) Close() error {
	return platformClose(w)
}

// onKey queues a keyboard event and closes on escape when configured to.
func (w *engineWindow) onKey(key Key, pressed bool) {
	w.queue.push(KeyboardEvent{Key: key, Pressed: pressed})
	if pressed && w.escapeCloses && key == KeyEscape {
		w.RequestExit()
	}
}

// onResize records the new framebuffer size and queues a resize event.
func (w *engineWindow) onResize(width, height int) {
	w.width, w.height = width, height
	w.queue.push(ResizeEvent{Width: width, Height: height})
}
