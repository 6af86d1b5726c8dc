package engine

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/profiler"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/Carmen-Shannon/baryon-go/engine/window"
	"github.com/pkg/errors"
)

// Engine ties a window, a renderer.Context, a scene and a pass into an application loop.
// The loop runs on the calling goroutine: for every window iteration it delivers input events,
// runs the fixed-rate tick callback, presents the pass and ticks the profiler.
type Engine interface {
	// Window returns the window the engine presents to.
	Window() window.Window

	// Context returns the GPU context.
	Context() renderer.Context

	// Scene returns the scene the engine renders.
	Scene() *scene.Scene

	// Camera returns the camera the engine renders through.
	Camera() *camera.Camera

	// SetPass sets the pass presented each frame. A nil pass presents nothing.
	SetPass(p renderer.Pass)

	// SetTickCallback registers the function called at the tick rate.
	//
	// Parameters:
	//   - callback: function receiving the tick duration in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetEventCallback registers the function receiving every window event after the engine handles it.
	SetEventCallback(callback func(event window.Event))

	// SetTickRate sets the fixed tick rate in ticks per second. Zero ticks once per frame with
	// the frame duration.
	SetTickRate(fps float64)

	// SetRenderFrameLimit caps the frame rate. Zero is uncapped.
	SetRenderFrameLimit(fps float64)

	// EnableProfiler enables performance statistics in the log.
	EnableProfiler()

	// DisableProfiler disables performance statistics.
	DisableProfiler()

	// Run blocks until the window closes, Quit is called or presenting fails.
	//
	// Returns:
	//   - error: the presenting error that stopped the loop, or nil
	Run() error

	// Quit stops the loop after the current iteration.
	Quit()

	// Release frees the pass and the context. The window is closed by Run.
	Release()
}

// engine implements the Engine interface.
type engine struct {
	window     window.Window
	ctx        renderer.Context
	scene      *scene.Scene
	camera     *camera.Camera
	pass       renderer.Pass
	controller camera.Controller

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate         time.Duration
	maxTicksPerFrame int
	accumulator      time.Duration
	renderFrameLimit time.Duration
	lastFrame        time.Time
	now              func() time.Time
	sleep            func(time.Duration)

	tickCallback  func(deltaTime float32)
	eventCallback func(event window.Event)

	// held tracks pressed letter keys that drive the camera controller.
	held   map[rune]bool
	err    error
	config Config
}

var _ Engine = &engine{}

// NewEngine creates an Engine. Without WithWindow it opens a window from the configuration and
// without WithContext it creates a context presenting to that window.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the window or the context cannot be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		tickRate:         time.Second / 60,
		maxTicksPerFrame: 8,
		now:              time.Now,
		sleep:            time.Sleep,
		held:             make(map[rune]bool),
		config:           DefaultConfig(),
	}
	for _, opt := range options {
		opt(e)
	}
	cfg := e.config

	if e.window == nil {
		w, err := window.NewWindow(cfg.WindowOptions()...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create window")
		}
		e.window = w
	}
	if e.ctx == nil {
		opts, err := cfg.ContextOptions()
		if err != nil {
			return nil, err
		}
		width, height := e.window.Size()
		opts = append(opts, renderer.WithSurface(e.window.SurfaceDescriptor(), uint32(width), uint32(height)))
		ctx, err := renderer.NewContext(opts...)
		if err != nil {
			_ = e.window.Close()
			return nil, errors.Wrap(err, "failed to create context")
		}
		e.ctx = ctx
	}
	if e.scene == nil {
		e.scene = scene.NewScene()
	}
	if e.camera == nil {
		e.camera = camera.New()
	}
	if e.controller != nil && e.camera.Node == space.Root {
		e.camera.Node = e.scene.AddNode().Build()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(time.Duration(cfg.Loop.ProfileInterval * float64(time.Second)))
	}
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Context() renderer.Context {
	return e.ctx
}

func (e *engine) Scene() *scene.Scene {
	return e.scene
}

func (e *engine) Camera() *camera.Camera {
	return e.camera
}

func (e *engine) SetPass(p renderer.Pass) {
	e.pass = p
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetEventCallback(callback func(event window.Event)) {
	e.eventCallback = callback
}

func (e *engine) SetTickRate(fps float64) {
	e.tickRate = rateToDuration(fps)
	e.accumulator = 0
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = rateToDuration(fps)
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() error {
	e.err = nil
	e.lastFrame = e.now()
	e.window.Run(e.handleEvent)
	return e.err
}

func (e *engine) Quit() {
	e.window.RequestExit()
}

func (e *engine) Release() {
	if e.pass != nil {
		e.pass.Release()
		e.pass = nil
	}
	if e.ctx != nil {
		e.ctx.Release()
		e.ctx = nil
	}
}

// handleEvent is the window handler driving the loop.
func (e *engine) handleEvent(ev window.Event) {
	switch ev := ev.(type) {
	case window.ResizeEvent:
		if ev.Width > 0 && ev.Height > 0 {
			e.ctx.Resize(uint32(ev.Width), uint32(ev.Height))
		}
	case window.KeyboardEvent:
		if ev.Key.Kind == window.KeyKindLetter {
			e.held[ev.Key.Code] = ev.Pressed
		}
	case window.DrawEvent:
		e.frame()
	case window.ExitEvent:
		log.Printf("[Engine] exiting")
	}
	if e.eventCallback != nil {
		e.eventCallback(ev)
	}
}

// frame runs the ticks that are due, presents and records statistics.
func (e *engine) frame() {
	now := e.now()
	elapsed := now.Sub(e.lastFrame)
	e.lastFrame = now

	e.runTicks(elapsed)

	if e.pass != nil {
		if err := e.ctx.Present(e.pass, e.scene, e.camera); err != nil {
			log.Printf("[Engine] present failed: %v", err)
			e.err = errors.Wrap(err, "failed to present")
			e.Quit()
			return
		}
	}

	if e.profilingEnabled {
		e.profiler.SetObjects(e.scene.EntityCount() + e.scene.SpriteCount())
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(now); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// runTicks advances the fixed-rate simulation by elapsed. At most maxTicksPerFrame ticks run per
// frame and the backlog beyond that is dropped.
func (e *engine) runTicks(elapsed time.Duration) {
	if e.tickRate <= 0 {
		e.tick(elapsed)
		return
	}
	e.accumulator += elapsed
	for n := 0; e.accumulator >= e.tickRate; n++ {
		if n == e.maxTicksPerFrame {
			e.accumulator = 0
			break
		}
		e.accumulator -= e.tickRate
		e.tick(e.tickRate)
	}
}

func (e *engine) tick(dt time.Duration) {
	e.driveController()
	if e.tickCallback != nil {
		e.tickCallback(float32(dt.Seconds()))
	}
}

// driveController moves the camera with WASD to orbit and Q/E to zoom.
func (e *engine) driveController() {
	if e.controller == nil {
		return
	}
	if e.held['a'] {
		e.controller.OrbitLeft()
	}
	if e.held['d'] {
		e.controller.OrbitRight()
	}
	if e.held['w'] {
		e.controller.OrbitUp()
	}
	if e.held['s'] {
		e.controller.OrbitDown()
	}
	if e.held['q'] {
		e.controller.Zoom(1)
	}
	if e.held['e'] {
		e.controller.Zoom(-1)
	}
	e.controller.Apply(e.scene.Node(e.camera.Node))
}

func rateToDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
