package pass

import (
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/buffer_pool"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// SolidConfig configures a Solid pass.
type SolidConfig struct {
	// CullBackFaces discards counter-clockwise back faces.
	CullBackFaces bool
}

// Solid draws every entity with a position stream and a Color component in that flat color,
// depth tested.
type Solid struct {
	layout   *pipeline.Layout
	pipeline pipeline.Pipeline
	globals  *wgpu.Buffer
	group    *wgpu.BindGroup
	pool     buffer_pool.Pool
	locals   *buffer_pool.BindGroupCache[int]
	depth    depthBuffer
	draws    []meshDraw
}

var _ renderer.Pass = &Solid{}

// NewSolid creates the Solid pass resources.
//
// Parameters:
//   - ctx: the context owning the device
//   - config: the pass configuration
//
// Returns:
//   - *Solid: the pass
//   - error: error if a GPU resource cannot be created
func NewSolid(ctx renderer.Context, config SolidConfig) (*Solid, error) {
	device := ctx.Device()
	layout, err := pipeline.NewLayout(device, loadShader("solid"))
	if err != nil {
		return nil, err
	}
	p := &Solid{
		layout: layout,
		pipeline: pipeline.NewPipeline("solid", layout,
			pipeline.WithBackFaceCulling(config.CullBackFaces),
		),
		locals: buffer_pool.NewBindGroupCache[int](),
	}

	if p.globals, err = newUniformBuffer(device, "solid globals", cameraSize); err != nil {
		p.Release()
		return nil, err
	}
	p.group, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "solid globals",
		Layout: layout.BindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.globals, Size: cameraSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, errors.Wrap(err, "failed to create solid globals bind group")
	}
	if p.pool, err = newLocalsPool(ctx, "solid locals"); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// solidEntityLocals builds the uniform of one entity.
func solidEntityLocals(raw space.RawSpace, e *scene.Entity) (solidLocals, bool) {
	color, ok := e.Color()
	if !ok {
		return solidLocals{}, false
	}
	return solidLocals{PosScale: raw.PosScale, Rot: raw.Rot, Color: color.Vec4()}, true
}

func (p *Solid) Draw(targets []renderer.TargetRef, s *scene.Scene, cam *camera.Camera, ctx renderer.Context) error {
	target, err := firstTarget(targets, ctx)
	if err != nil {
		return err
	}
	device := ctx.Device()
	depthView, err := p.depth.ensure(device, target.Size)
	if err != nil {
		return err
	}
	rp, err := p.pipeline.Get(device, target.Format)
	if err != nil {
		return err
	}

	baked := s.Bake()
	globals := cam.Uniform(target.Aspect(), baked)
	if err := ctx.Queue().WriteBuffer(p.globals, 0, globals.Marshal()); err != nil {
		return errors.Wrap(err, "failed to write solid globals")
	}

	p.pool.Reset()
	if _, err := p.pool.PrepareForCount(solidLocalsSize, s.EntityCount()); err != nil {
		return err
	}
	locations := p.layout.Shader().VertexLocations(p.pipeline.VertexEntryPoint())
	p.draws = p.draws[:0]
	for _, e := range s.Entities(model.Streams(model.StreamPosition)) {
		locals, ok := solidEntityLocals(baked.At(e.Node), e)
		if !ok {
			continue
		}
		mesh := ctx.GetMesh(e.Mesh)
		streams, err := meshStreams(mesh, locations)
		if err != nil {
			return err
		}
		loc, err := buffer_pool.Alloc(p.pool, &locals)
		if err != nil {
			return err
		}
		bg, err := localsGroup(p.locals, device, p.layout.BindGroupLayout(1), p.pool, loc.Index, solidLocalsSize)
		if err != nil {
			return err
		}
		p.draws = append(p.draws, meshDraw{
			pipeline: rp,
			mesh:     mesh,
			streams:  streams,
			locals:   bg,
			offsets:  loc.DynamicOffsets(),
		})
	}

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "failed to create command encoder")
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments:       []wgpu.RenderPassColorAttachment{colorAttachment(target.View, cam.Background)},
		DepthStencilAttachment: depthAttachment(depthView),
	})
	encodeMeshDraws(pass, p.group, p.draws)
	pass.End()
	return submit(ctx, encoder)
}

func (p *Solid) Release() {
	p.depth.Release()
	if p.locals != nil {
		p.locals.Release()
	}
	if p.pool != nil {
		p.pool.Release()
		p.pool = nil
	}
	if p.group != nil {
		p.group.Release()
		p.group = nil
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
