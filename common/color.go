package common

import (
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Color is a packed 32-bit color in 0xAARRGGBB layout.
// The zero value is transparent black; use ColorBlackOpaque for the default background.
type Color uint32

const (
	// ColorBlackTransparent is fully transparent black.
	ColorBlackTransparent Color = 0
	// ColorBlackOpaque is opaque black and the default camera background.
	ColorBlackOpaque Color = 0xFF000000
	// ColorWhite is opaque white.
	ColorWhite Color = 0xFFFFFFFF
	// ColorRed is opaque red.
	ColorRed Color = 0xFFFF0000
	// ColorGreen is opaque green.
	ColorGreen Color = 0xFF00FF00
	// ColorBlue is opaque blue.
	ColorBlue Color = 0xFF0000FF
)

// gammaExponent approximates the sRGB transfer curve.
const gammaExponent = 2.2

// NewColor packs normalized RGBA components into a Color.
// Each component is clamped to [0, 1] before being scaled to a byte; fractions are truncated.
//
// Parameters:
//   - r, g, b, a: the color components in the [0, 1] range
//
// Returns:
//   - Color: the packed color
func NewColor(r, g, b, a float32) Color {
	return Color(packComponent(a)<<24 | packComponent(r)<<16 | packComponent(g)<<8 | packComponent(b))
}

func packComponent(v float32) uint32 {
	return uint32(math32.Max(0, math32.Min(1, v)) * 255)
}

func (c Color) component(shift uint32) float32 {
	return float32((uint32(c)>>shift)&0xFF) / 255
}

// Red returns the normalized red component.
func (c Color) Red() float32 {
	return c.component(16)
}

// Green returns the normalized green component.
func (c Color) Green() float32 {
	return c.component(8)
}

// Blue returns the normalized blue component.
func (c Color) Blue() float32 {
	return c.component(0)
}

// Alpha returns the normalized alpha component.
func (c Color) Alpha() float32 {
	return c.component(24)
}

// Vec4 returns the components as [r, g, b, a] without any transfer curve applied.
//
// Returns:
//   - [4]float32: the normalized components
func (c Color) Vec4() [4]float32 {
	return [4]float32{c.Red(), c.Green(), c.Blue(), c.Alpha()}
}

// Vec4Gamma returns the components raised to the 2.2 power, converting an sRGB-encoded
// color to an approximately linear one for lighting math.
//
// Returns:
//   - [4]float32: the linearized components
func (c Color) Vec4Gamma() [4]float32 {
	v := c.Vec4()
	for i := range v {
		v[i] = math32.Pow(v[i], gammaExponent)
	}
	return v
}

// WGPU converts the color to a wgpu.Color for use as a clear value.
//
// Returns:
//   - wgpu.Color: the color in double precision
func (c Color) WGPU() wgpu.Color {
	return wgpu.Color{
		R: float64(c.Red()),
		G: float64(c.Green()),
		B: float64(c.Blue()),
		A: float64(c.Alpha()),
	}
}
