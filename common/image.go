package common

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the tightly packed pixel data, 4 bytes per pixel in RGBA order.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// Zero-valued fields fall back to linear filtering with repeat addressing.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the level of detail range.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level.
	MaxAnisotropy uint16
}

// DecodeImage decodes encoded image bytes into RGBA8 staging data.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// Parameters:
//   - data: the encoded image bytes
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the format is unknown or decoding fails
func DecodeImage(data []byte) (TextureStagingData, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TextureStagingData{}, errors.Wrap(err, "failed to decode image")
	}
	staging := ImageToStaging(img)
	if staging.Width == 0 || staging.Height == 0 {
		return TextureStagingData{}, errors.Errorf("decoded %s image is empty", format)
	}
	return staging, nil
}

// LoadImageFile reads and decodes an image file from disk.
//
// Parameters:
//   - path: the file path to read
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the file cannot be read or decoded
func LoadImageFile(path string) (TextureStagingData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TextureStagingData{}, errors.Wrapf(err, "failed to read image %q", path)
	}
	staging, err := DecodeImage(data)
	if err != nil {
		return TextureStagingData{}, errors.Wrapf(err, "image %q", path)
	}
	return staging, nil
}

// ImageToStaging converts any image.Image into tightly packed RGBA8 staging data.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - TextureStagingData: the converted pixels and dimensions
func ImageToStaging(img image.Image) TextureStagingData {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}
