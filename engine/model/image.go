package model

import (
	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
)

// Image is a sampled texture owned by the renderer context.
type Image struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Size    wgpu.Extent3D
}

// ImageRef addresses an Image owned by the renderer context.
type ImageRef = resource.Handle[Image]

// ImageInfo is the CPU-visible description of an image.
type ImageInfo struct {
	Width  uint32
	Height uint32
}

// Info returns the image dimensions.
func (i *Image) Info() ImageInfo {
	return ImageInfo{Width: i.Size.Width, Height: i.Size.Height}
}

// Release frees the view and the texture.
func (i *Image) Release() {
	if i.View != nil {
		i.View.Release()
		i.View = nil
	}
	if i.Texture != nil {
		i.Texture.Release()
		i.Texture = nil
	}
}
