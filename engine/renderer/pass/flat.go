package pass

import (
	"fmt"
	"image"
	"slices"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/buffer_pool"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// flatKey identifies a sprite bind group: one per arena chunk and image.
type flatKey struct {
	chunk int
	image model.ImageRef
}

type flatSprite struct {
	locals   flatLocals
	image    model.ImageRef
	distance float32
}

type flatDraw struct {
	group   *wgpu.BindGroup
	offsets []uint32
}

// Flat draws sprites as textured quads in the XY plane of their node, sorted back to front and blended
// with premultiplied alpha. It has no depth buffer.
type Flat struct {
	layout   *pipeline.Layout
	pipeline pipeline.Pipeline
	globals  *wgpu.Buffer
	sampler  *wgpu.Sampler
	group    *wgpu.BindGroup
	pool     buffer_pool.Pool
	groups   *buffer_pool.BindGroupCache[flatKey]
	sprites  []flatSprite
	draws    []flatDraw
}

var _ renderer.Pass = &Flat{}

// NewFlat creates the Flat pass resources.
//
// Parameters:
//   - ctx: the context owning the device
//
// Returns:
//   - *Flat: the pass
//   - error: error if a GPU resource cannot be created
func NewFlat(ctx renderer.Context) (*Flat, error) {
	device := ctx.Device()
	layout, err := pipeline.NewLayout(device, loadShader("flat"))
	if err != nil {
		return nil, err
	}
	p := &Flat{
		layout: layout,
		pipeline: pipeline.NewPipeline("flat", layout,
			pipeline.WithoutDepth(),
			pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleStrip),
			pipeline.WithBlendEnabled(true),
			pipeline.WithBlendState(&pipeline.PremultipliedAlphaBlending),
		),
		groups: buffer_pool.NewBindGroupCache[flatKey](),
	}

	if p.globals, err = newUniformBuffer(device, "flat globals", cameraSize); err != nil {
		p.Release()
		return nil, err
	}
	p.sampler, err = newSampler(device, "flat sampler", common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	})
	if err != nil {
		p.Release()
		return nil, err
	}
	p.group, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "flat globals",
		Layout: layout.BindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.globals, Size: cameraSize},
			{Binding: 1, Sampler: p.sampler},
		},
	})
	if err != nil {
		p.Release()
		return nil, errors.Wrap(err, "failed to create flat globals bind group")
	}
	if p.pool, err = newLocalsPool(ctx, "flat locals"); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// newSampler creates a sampler, filling zero-valued fields with linear filtering and repeat addressing.
func newSampler(device *wgpu.Device, label string, data common.SamplerStagingData) (*wgpu.Sampler, error) {
	samp, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  common.Coalesce(data.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(data.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(data.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(data.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(data.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(data.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(data.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(data.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(data.MaxAnisotropy, 1),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", label)
	}
	return samp, nil
}

// spriteBounds returns the local quad corners and the normalized texture rectangle of a sprite.
// An empty uv shows the whole image. The quad is centered on the node and sized in pixels.
func spriteBounds(uv image.Rectangle, info model.ImageInfo) (bounds, texCoords [4]float32) {
	if uv.Empty() {
		uv = image.Rect(0, 0, int(info.Width), int(info.Height))
	}
	w := float32(uv.Dx())
	h := float32(uv.Dy())
	bounds = [4]float32{-w / 2, -h / 2, w / 2, h / 2}

	iw := float32(max(info.Width, 1))
	ih := float32(max(info.Height, 1))
	texCoords = [4]float32{
		float32(uv.Min.X) / iw,
		float32(uv.Min.Y) / ih,
		float32(uv.Max.X) / iw,
		float32(uv.Max.Y) / ih,
	}
	return bounds, texCoords
}

// cameraDistance is the distance of a point along the viewing direction of a camera placed at eye.
func cameraDistance(point mgl32.Vec3, eye space.RawSpace) float32 {
	forward := eye.ToSpace().Orientation.Rotate(mgl32.Vec3{0, 0, -1})
	return point.Sub(eye.Position()).Dot(forward)
}

// sortBackToFront orders sprites from the farthest to the nearest.
func sortBackToFront(sprites []flatSprite) {
	slices.SortStableFunc(sprites, func(a, b flatSprite) int {
		switch {
		case a.distance > b.distance:
			return -1
		case a.distance < b.distance:
			return 1
		default:
			return 0
		}
	})
}

func (p *Flat) Draw(targets []renderer.TargetRef, s *scene.Scene, cam *camera.Camera, ctx renderer.Context) error {
	target, err := firstTarget(targets, ctx)
	if err != nil {
		return err
	}
	device := ctx.Device()
	rp, err := p.pipeline.Get(device, target.Format)
	if err != nil {
		return err
	}

	baked := s.Bake()
	globals := cam.Uniform(target.Aspect(), baked)
	if err := ctx.Queue().WriteBuffer(p.globals, 0, globals.Marshal()); err != nil {
		return errors.Wrap(err, "failed to write flat globals")
	}

	eye := baked.At(cam.Node)
	p.sprites = p.sprites[:0]
	for _, sp := range s.Sprites() {
		raw := baked.At(sp.Node)
		bounds, tc := spriteBounds(sp.UV, ctx.GetImageInfo(sp.Image))
		p.sprites = append(p.sprites, flatSprite{
			locals: flatLocals{
				PosScale:  raw.PosScale,
				Rot:       raw.Rot,
				Bounds:    bounds,
				TexCoords: tc,
			},
			image:    sp.Image,
			distance: cameraDistance(raw.Position(), eye),
		})
	}
	sortBackToFront(p.sprites)

	p.pool.Reset()
	if _, err := p.pool.PrepareForCount(flatLocalsSize, len(p.sprites)); err != nil {
		return err
	}
	p.draws = p.draws[:0]
	for i := range p.sprites {
		sp := &p.sprites[i]
		loc, err := buffer_pool.Alloc(p.pool, &sp.locals)
		if err != nil {
			return err
		}
		bg, err := p.groups.GetOrCreate(flatKey{chunk: loc.Index, image: sp.image}, func() (*wgpu.BindGroup, error) {
			bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
				Label:  fmt.Sprintf("flat locals [%d] %s", loc.Index, sp.image),
				Layout: p.layout.BindGroupLayout(1),
				Entries: []wgpu.BindGroupEntry{
					p.pool.Binding(0, loc.Index, flatLocalsSize),
					{Binding: 1, TextureView: ctx.GetImage(sp.image).View},
				},
			})
			if err != nil {
				return nil, errors.Wrap(err, "failed to create flat locals bind group")
			}
			return bg, nil
		})
		if err != nil {
			return err
		}
		p.draws = append(p.draws, flatDraw{group: bg, offsets: loc.DynamicOffsets()})
	}

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "failed to create command encoder")
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{colorAttachment(target.View, cam.Background)},
	})
	pass.SetPipeline(rp)
	pass.SetBindGroup(0, p.group, nil)
	for _, d := range p.draws {
		pass.SetBindGroup(1, d.group, d.offsets)
		pass.Draw(4, 1, 0, 0)
	}
	pass.End()
	return submit(ctx, encoder)
}

func (p *Flat) Release() {
	if p.groups != nil {
		p.groups.Release()
	}
	if p.pool != nil {
		p.pool.Release()
		p.pool = nil
	}
	if p.group != nil {
		p.group.Release()
		p.group = nil
	}
	if p.sampler != nil {
		p.sampler.Release()
		p.sampler = nil
	}
	if p.globals != nil {
		p.globals.Release()
		p.globals = nil
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
}
