package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetAspect(t *testing.T) {
	target := Target{Format: wgpu.TextureFormatBGRA8UnormSrgb, Size: extent(1920, 1080)}
	assert.InDelta(t, 16.0/9.0, target.Aspect(), 1e-6)

	info := target.Info()
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, info.Format)
	assert.Equal(t, uint32(1), info.SampleCount)
	assert.InDelta(t, 16.0/9.0, info.AspectRatio, 1e-6)

	degenerate := Target{Size: extent(640, 0)}
	assert.Equal(t, float32(1), degenerate.Aspect())
}

func TestParsePresentMode(t *testing.T) {
	cases := map[string]PresentMode{
		"":         PresentModeVSync,
		"vsync":    PresentModeVSync,
		"VSync":    PresentModeVSync,
		"uncapped": PresentModeUncapped,
		"mailbox":  PresentModeMailbox,
	}
	for in, want := range cases {
		got, err := ParsePresentMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePresentMode("triple")
	assert.Error(t, err)
}

func TestPresentModeWGPU(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, PresentModeVSync.WGPU())
	assert.Equal(t, wgpu.PresentModeImmediate, PresentModeUncapped.WGPU())
	assert.Equal(t, wgpu.PresentModeMailbox, PresentModeMailbox.WGPU())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
}

func TestParsePowerPreference(t *testing.T) {
	p, err := ParsePowerPreference("high")
	require.NoError(t, err)
	assert.Equal(t, PowerHigh, p)
	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, p.WGPU())

	p, err = ParsePowerPreference("low")
	require.NoError(t, err)
	assert.Equal(t, wgpu.PowerPreferenceLowPower, p.WGPU())

	p, err = ParsePowerPreference("")
	require.NoError(t, err)
	assert.Equal(t, PowerDefault, p)

	_, err = ParsePowerPreference("turbo")
	assert.Error(t, err)
}

func TestBytesPerPixel(t *testing.T) {
	bpp, err := bytesPerPixel(wgpu.TextureFormatRGBA8UnormSrgb)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), bpp)

	bpp, err = bytesPerPixel(wgpu.TextureFormatRGBA32Float)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), bpp)

	_, err = bytesPerPixel(wgpu.TextureFormatDepth24Plus)
	assert.Error(t, err)
}

func TestStagingDescriptor(t *testing.T) {
	desc := stagingDescriptor("sprite.png", common.TextureStagingData{Width: 32, Height: 16})
	assert.Equal(t, "sprite.png", desc.Label)
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, desc.Format)
	assert.Equal(t, wgpu.Extent3D{Width: 32, Height: 16, DepthOrArrayLayers: 1}, desc.Size)
	assert.Equal(t, wgpu.TextureUsageCopyDst|wgpu.TextureUsageTextureBinding, desc.Usage)
	assert.Equal(t, uint32(1), desc.MipLevelCount)
}

func TestContextOptions(t *testing.T) {
	c := &gpuContext{label: "baryon"}
	desc := &wgpu.SurfaceDescriptor{}
	for _, opt := range []ContextBuilderOption{
		WithSurface(desc, 800, 600),
		WithPowerPreference(PowerHigh),
		WithSoftware(true),
		WithPresentMode(PresentModeMailbox),
		WithLabel(""),
	} {
		opt(c)
	}
	assert.Same(t, desc, c.surfaceDescriptor)
	assert.Equal(t, uint32(800), c.pendingWidth)
	assert.Equal(t, uint32(600), c.pendingHeight)
	assert.Equal(t, PowerHigh, c.powerPreference)
	assert.True(t, c.software)
	assert.Equal(t, PresentModeMailbox, c.presentMode)
	assert.Equal(t, "baryon", c.label)
}

func TestHeadlessContextSurfaceInfo(t *testing.T) {
	c := &gpuContext{}
	_, ok := c.SurfaceInfo()
	assert.False(t, ok)
	c.Resize(100, 100)
	assert.PanicsWithValue(t, "renderer: no screen is configured", func() {
		_ = c.Present(nil, nil, nil)
	})
}
