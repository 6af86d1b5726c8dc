package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// bytesPerPixel returns the texel size of the uncompressed formats images can be uploaded in.
func bytesPerPixel(format wgpu.TextureFormat) (uint32, error) {
	switch format {
	case wgpu.TextureFormatR8Unorm:
		return 1, nil
	case wgpu.TextureFormatRG8Unorm:
		return 2, nil
	case wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb:
		return 4, nil
	case wgpu.TextureFormatRGBA16Float:
		return 8, nil
	case wgpu.TextureFormatRGBA32Float:
		return 16, nil
	default:
		return 0, fmt.Errorf("texture format %v cannot be uploaded", format)
	}
}

// stagingDescriptor describes the sRGB texture decoded RGBA8 pixels are uploaded into.
func stagingDescriptor(label string, staging common.TextureStagingData) *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label:         label,
		Size:          extent(staging.Width, staging.Height),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageCopyDst | wgpu.TextureUsageTextureBinding,
	}
}

func (c *gpuContext) AddImageFromData(desc *wgpu.TextureDescriptor, data []byte) (model.ImageRef, error) {
	bpp, err := bytesPerPixel(desc.Format)
	if err != nil {
		return model.ImageRef{}, err
	}
	size := desc.Size
	if size.DepthOrArrayLayers == 0 {
		size.DepthOrArrayLayers = 1
	}
	bytesPerRow := size.Width * bpp
	if want := int(bytesPerRow * size.Height * size.DepthOrArrayLayers); len(data) != want {
		return model.ImageRef{}, errors.Errorf("image %q has %d bytes, expected %d", desc.Label, len(data), want)
	}

	d := *desc
	d.Size = size
	d.Usage |= wgpu.TextureUsageCopyDst | wgpu.TextureUsageTextureBinding
	if d.MipLevelCount == 0 {
		d.MipLevelCount = 1
	}
	if d.SampleCount == 0 {
		d.SampleCount = 1
	}
	tex, err := c.device.CreateTexture(&d)
	if err != nil {
		return model.ImageRef{}, errors.Wrapf(err, "failed to create texture %q", desc.Label)
	}

	c.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: size.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return model.ImageRef{}, errors.Wrapf(err, "failed to create view for texture %q", desc.Label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.images.Insert(model.Image{Texture: tex, View: view, Size: size}), nil
}

func (c *gpuContext) AddImageFromStaging(label string, staging common.TextureStagingData) (model.ImageRef, error) {
	return c.AddImageFromData(stagingDescriptor(label, staging), staging.Pixels)
}

func (c *gpuContext) LoadImage(path string) (model.ImageRef, error) {
	staging, err := common.LoadImageFile(path)
	if err != nil {
		return model.ImageRef{}, err
	}
	ref, err := c.AddImageFromStaging(path, staging)
	if err != nil {
		return model.ImageRef{}, errors.Wrapf(err, "failed to upload image %s", path)
	}
	return ref, nil
}
