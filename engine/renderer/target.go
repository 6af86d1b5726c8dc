package renderer

import (
	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
)

// Target is a color attachment a pass can render into: the screen for the current frame
// or an offscreen texture registered with AddTarget.
type Target struct {
	View   *wgpu.TextureView
	Format wgpu.TextureFormat
	Size   wgpu.Extent3D
}

// TargetRef addresses a Target owned by the context.
type TargetRef = resource.Handle[Target]

// TargetInfo describes a target without exposing its view.
type TargetInfo struct {
	Format      wgpu.TextureFormat
	SampleCount uint32
	AspectRatio float32
}

// Aspect returns width divided by height, or 1 for a degenerate target.
func (t *Target) Aspect() float32 {
	if t.Size.Height == 0 {
		return 1
	}
	return float32(t.Size.Width) / float32(t.Size.Height)
}

// Info returns the format, sample count and aspect ratio of the target.
func (t *Target) Info() TargetInfo {
	return TargetInfo{
		Format:      t.Format,
		SampleCount: 1,
		AspectRatio: t.Aspect(),
	}
}

func extent(width, height uint32) wgpu.Extent3D {
	return wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
}
