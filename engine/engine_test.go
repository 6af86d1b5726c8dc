package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/Carmen-Shannon/baryon-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedWindow replays a fixed list of events.
type scriptedWindow struct {
	events    []window.Event
	exited    bool
	delivered []window.Event
}

func (w *scriptedWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *scriptedWindow) Size() (int, int)                          { return 640, 480 }
func (w *scriptedWindow) IsRunning() bool                           { return !w.exited }
func (w *scriptedWindow) RequestExit()                              { w.exited = true }
func (w *scriptedWindow) Close() error                              { return nil }

func (w *scriptedWindow) Run(handler func(window.Event)) {
	for _, ev := range w.events {
		if w.exited {
			break
		}
		w.delivered = append(w.delivered, ev)
		handler(ev)
	}
	handler(window.ExitEvent{})
}

// recordingContext records the calls the engine makes. Unused methods panic through the nil embed.
type recordingContext struct {
	renderer.Context
	resizes  [][2]uint32
	presents int
	err      error
	released bool
}

func (c *recordingContext) Resize(width, height uint32) {
	c.resizes = append(c.resizes, [2]uint32{width, height})
}

func (c *recordingContext) Present(_ renderer.Pass, _ *scene.Scene, _ *camera.Camera) error {
	c.presents++
	return c.err
}

func (c *recordingContext) Release() { c.released = true }

type nopPass struct{ released bool }

func (p *nopPass) Draw([]renderer.TargetRef, *scene.Scene, *camera.Camera, renderer.Context) error {
	return nil
}
func (p *nopPass) Release() { p.released = true }

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestEngine(t *testing.T, w *scriptedWindow, ctx *recordingContext, options ...EngineBuilderOption) (*engine, *testClock) {
	t.Helper()
	opts := append([]EngineBuilderOption{WithWindow(w), WithContext(ctx)}, options...)
	eng, err := NewEngine(opts...)
	require.NoError(t, err)
	e := eng.(*engine)
	clock := &testClock{t: time.Unix(100, 0)}
	e.now = clock.now
	e.sleep = func(time.Duration) {}
	return e, clock
}

func TestEngineHandlesResizeAndDraw(t *testing.T) {
	w := &scriptedWindow{events: []window.Event{
		window.ResizeEvent{Width: 800, Height: 600},
		window.ResizeEvent{Width: 0, Height: 600},
		window.DrawEvent{},
		window.DrawEvent{},
	}}
	ctx := &recordingContext{}
	p := &nopPass{}
	e, _ := newTestEngine(t, w, ctx, WithPass(p))

	var seen []window.Event
	e.SetEventCallback(func(ev window.Event) { seen = append(seen, ev) })
	require.NoError(t, e.Run())

	assert.Equal(t, [][2]uint32{{800, 600}}, ctx.resizes)
	assert.Equal(t, 2, ctx.presents)
	require.Len(t, seen, 5)
	assert.Equal(t, window.ExitEvent{}, seen[4])

	e.Release()
	assert.True(t, p.released)
	assert.True(t, ctx.released)
}

func TestEngineWithoutPassDoesNotPresent(t *testing.T) {
	w := &scriptedWindow{events: []window.Event{window.DrawEvent{}}}
	ctx := &recordingContext{}
	e, _ := newTestEngine(t, w, ctx)
	require.NoError(t, e.Run())
	assert.Zero(t, ctx.presents)
}

func TestEngineStopsOnPresentError(t *testing.T) {
	w := &scriptedWindow{events: []window.Event{window.DrawEvent{}, window.DrawEvent{}, window.DrawEvent{}}}
	ctx := &recordingContext{err: errors.New("surface lost")}
	e, _ := newTestEngine(t, w, ctx, WithPass(&nopPass{}))

	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface lost")
	assert.Equal(t, 1, ctx.presents)
	assert.Len(t, w.delivered, 1)
}

func TestRunTicksFixedRate(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedWindow{}, &recordingContext{}, WithTickRate(10))
	var ticks []float32
	e.SetTickCallback(func(dt float32) { ticks = append(ticks, dt) })

	e.runTicks(250 * time.Millisecond)
	assert.Equal(t, []float32{0.1, 0.1}, ticks)
	assert.Equal(t, 50*time.Millisecond, e.accumulator)

	e.runTicks(50 * time.Millisecond)
	assert.Len(t, ticks, 3)

	e.runTicks(10 * time.Second)
	assert.Len(t, ticks, 3+e.maxTicksPerFrame)
	assert.Zero(t, e.accumulator)
}

func TestRunTicksVariableRate(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedWindow{}, &recordingContext{}, WithTickRate(0))
	var ticks []float32
	e.SetTickCallback(func(dt float32) { ticks = append(ticks, dt) })
	e.runTicks(20 * time.Millisecond)
	e.runTicks(30 * time.Millisecond)
	assert.Equal(t, []float32{0.02, 0.03}, ticks)
}

func TestFrameUsesClock(t *testing.T) {
	w := &scriptedWindow{}
	e, clock := newTestEngine(t, w, &recordingContext{}, WithTickRate(100))
	ticks := 0
	e.SetTickCallback(func(float32) { ticks++ })

	e.lastFrame = clock.t
	clock.t = clock.t.Add(35 * time.Millisecond)
	e.handleEvent(window.DrawEvent{})
	assert.Equal(t, 3, ticks)
}

func TestControllerDrivesCameraNode(t *testing.T) {
	ctrl := camera.NewOrbitController(camera.WithRadius(5))
	e, _ := newTestEngine(t, &scriptedWindow{}, &recordingContext{}, WithController(ctrl))
	require.NotEqual(t, space.Root, e.Camera().Node)

	e.tick(time.Millisecond)
	node := e.Scene().Node(e.Camera().Node)
	start := node.Position()
	assert.InDelta(t, 5, start.Len(), 1e-4)

	e.handleEvent(window.KeyboardEvent{Key: window.KeyLetter('a'), Pressed: true})
	e.tick(time.Millisecond)
	moved := node.Position()
	assert.False(t, start.ApproxEqual(moved))

	e.handleEvent(window.KeyboardEvent{Key: window.KeyLetter('a'), Pressed: false})
	e.tick(time.Millisecond)
	assert.True(t, moved.ApproxEqual(node.Position()))
}

func TestNewEngineKeepsProvidedCamera(t *testing.T) {
	cam := camera.New(camera.WithPerspective(45), camera.WithBackground(0xFF203040))
	s := scene.NewScene()
	e, _ := newTestEngine(t, &scriptedWindow{}, &recordingContext{}, WithCamera(cam), WithScene(s))
	assert.Same(t, cam, e.Camera())
	assert.Same(t, s, e.Scene())
	assert.Equal(t, space.Root, cam.Node)
}

func TestWithConfigAppliesLoop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Loop.TickRate = 20
	cfg.Loop.FrameLimit = 30
	cfg.Loop.Profiling = true
	e, _ := newTestEngine(t, &scriptedWindow{}, &recordingContext{}, WithConfig(cfg))
	assert.Equal(t, 50*time.Millisecond, e.tickRate)
	assert.Equal(t, time.Duration(float64(time.Second)/30), e.renderFrameLimit)
	assert.True(t, e.profilingEnabled)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
	e.DisableProfiler()
	assert.False(t, e.profilingEnabled)
}
