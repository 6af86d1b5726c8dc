package engine

import (
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig applies a configuration. The window and renderer sections are used when the engine
// creates them itself, and the loop section takes effect immediately.
// Options placed after it override its loop settings.
//
// Parameters:
//   - cfg: the configuration, usually from LoadConfig
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg Config) EngineBuilderOption {
	return func(e *engine) {
		e.config = cfg
		e.tickRate = rateToDuration(cfg.Loop.TickRate)
		e.renderFrameLimit = rateToDuration(cfg.Loop.FrameLimit)
		e.profilingEnabled = cfg.Loop.Profiling
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the fixed tick rate in ticks per second.
// Zero ticks once per frame with the frame duration.
//
// Parameters:
//   - fps: ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.tickRate = rateToDuration(fps)
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = rateToDuration(fps)
	}
}

// WithWindow uses an existing window rather than opening one from the configuration.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithContext uses an existing context rather than creating one for the window.
func WithContext(ctx renderer.Context) EngineBuilderOption {
	return func(e *engine) {
		e.ctx = ctx
	}
}

// WithScene renders the given scene instead of a new empty one.
func WithScene(s *scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithCamera renders through the given camera instead of the default orthographic one.
func WithCamera(c *camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithPass sets the pass presented each frame.
func WithPass(p renderer.Pass) EngineBuilderOption {
	return func(e *engine) {
		e.pass = p
	}
}

// WithController lets the keyboard drive the camera node every tick: WASD orbits and Q/E zoom.
// A camera attached to the root gets its own node.
//
// Parameters:
//   - c: the controller moving the camera node
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(c camera.Controller) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}
