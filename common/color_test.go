package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorComponents(t *testing.T) {
	c := Color(0x80FF4000)
	assert.InDelta(t, 1.0, c.Red(), 1e-6)
	assert.InDelta(t, 64.0/255.0, c.Green(), 1e-6)
	assert.InDelta(t, 0.0, c.Blue(), 1e-6)
	assert.InDelta(t, 128.0/255.0, c.Alpha(), 1e-6)
}

func TestNewColorClampsAndTruncates(t *testing.T) {
	assert.Equal(t, ColorRed, NewColor(2, 0, -1, 1))
	assert.Equal(t, ColorBlackOpaque, NewColor(0, 0, 0, 1))
	// 0.5 * 255 = 127.5 truncates to 127.
	assert.Equal(t, Color(0xFF7F7F7F), NewColor(0.5, 0.5, 0.5, 1))
}

func TestColorVec4Gamma(t *testing.T) {
	assert.Equal(t, [4]float32{1, 1, 1, 1}, ColorWhite.Vec4Gamma())
	assert.Equal(t, [4]float32{0, 0, 1, 1}, ColorBlue.Vec4())

	g := Color(0xFF808080).Vec4Gamma()
	assert.InDelta(t, 0.2195, g[0], 1e-3)
	assert.InDelta(t, 1.0, g[3], 1e-6)
}

func TestColorWGPU(t *testing.T) {
	w := ColorGreen.WGPU()
	assert.Equal(t, 0.0, w.R)
	assert.Equal(t, 1.0, w.G)
	assert.Equal(t, 0.0, w.B)
	assert.Equal(t, 1.0, w.A)
}
