package pass

import (
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/buffer_pool"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// RealConfig configures a Real pass.
type RealConfig struct {
	// CullBackFaces discards counter-clockwise back faces.
	CullBackFaces bool
	// MaxLights caps the light buffer. Lights beyond it are ignored.
	MaxLights int
}

// DefaultRealConfig culls back faces and keeps 16 lights.
func DefaultRealConfig() RealConfig {
	return RealConfig{CullBackFaces: true, MaxLights: light.DefaultMaxLights}
}

// Real draws entities with position and normal streams, a Color and a material.Material using a
// metallic-roughness BRDF lit by every light in the buffer.
type Real struct {
	config   RealConfig
	layout   *pipeline.Layout
	pipeline pipeline.Pipeline
	globals  *wgpu.Buffer
	lights   *wgpu.Buffer
	group    *wgpu.BindGroup
	pool     buffer_pool.Pool
	locals   *buffer_pool.BindGroupCache[int]
	depth    depthBuffer

	gpuLights []light.GPULight
	draws     []meshDraw
}

var _ renderer.Pass = &Real{}

// NewReal creates the Real pass resources.
//
// Parameters:
//   - ctx: the context owning the device
//   - config: the pass configuration
//
// Returns:
//   - *Real: the pass
//   - error: error if a GPU resource cannot be created
func NewReal(ctx renderer.Context, config RealConfig) (*Real, error) {
	if config.MaxLights <= 0 {
		config.MaxLights = light.DefaultMaxLights
	}
	device := ctx.Device()
	layout, err := pipeline.NewLayout(device, loadShader("real"))
	if err != nil {
		return nil, err
	}
	p := &Real{
		config: config,
		layout: layout,
		pipeline: pipeline.NewPipeline("real", layout,
			pipeline.WithBackFaceCulling(config.CullBackFaces),
		),
		locals: buffer_pool.NewBindGroupCache[int](),
	}

	if p.globals, err = newUniformBuffer(device, "real globals", realGlobalsSize); err != nil {
		p.Release()
		return nil, err
	}
	if p.lights, err = newLightBuffer(device, "real lights", config.MaxLights); err != nil {
		p.Release()
		return nil, err
	}
	p.group, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "real globals",
		Layout: layout.BindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.globals, Size: realGlobalsSize},
			{Binding: 1, Buffer: p.lights, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, errors.Wrap(err, "failed to create real globals bind group")
	}
	if p.pool, err = newLocalsPool(ctx, "real locals"); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// realEntityLocals builds the uniform of one entity.
func realEntityLocals(raw space.RawSpace, e *scene.Entity) (realLocals, bool) {
	color, ok := e.Color()
	if !ok {
		return realLocals{}, false
	}
	mat, ok := e.Material()
	if !ok {
		return realLocals{}, false
	}
	return realLocals{PosScale: raw.PosScale, Rot: raw.Rot, Material: mat.Params(color)}, true
}

func (p *Real) Draw(targets []renderer.TargetRef, s *scene.Scene, cam *camera.Camera, ctx renderer.Context) error {
	target, err := firstTarget(targets, ctx)
	if err != nil {
		return err
	}
	device := ctx.Device()
	queue := ctx.Queue()
	depthView, err := p.depth.ensure(device, target.Size)
	if err != nil {
		return err
	}
	rp, err := p.pipeline.Get(device, target.Format)
	if err != nil {
		return err
	}

	baked := s.Bake()
	p.gpuLights = p.gpuLights[:0]
	for _, l := range s.Lights() {
		p.gpuLights = append(p.gpuLights, l.GPU(baked.At(l.Node)))
	}
	data, count := light.MarshalLights(p.gpuLights, p.config.MaxLights)
	if count > 0 {
		if err := queue.WriteBuffer(p.lights, 0, data); err != nil {
			return errors.Wrap(err, "failed to write real lights")
		}
	}

	cu := cam.Uniform(target.Aspect(), baked)
	globals := realGlobals{
		ViewProj:   cu.ViewProj,
		CameraPos:  cu.CameraPosition,
		LightCount: [4]uint32{uint32(count), 0, 0, 0},
	}
	if err := writeStruct(queue, p.globals, &globals); err != nil {
		return errors.Wrap(err, "failed to write real globals")
	}

	p.pool.Reset()
	if _, err := p.pool.PrepareForCount(realLocalsSize, s.EntityCount()); err != nil {
		return err
	}
	locations := p.layout.Shader().VertexLocations(p.pipeline.VertexEntryPoint())
	p.draws = p.draws[:0]
	for _, e := range s.Entities(model.Streams(model.StreamPosition, model.StreamNormal)) {
		locals, ok := realEntityLocals(baked.At(e.Node), e)
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
		bg, err := localsGroup(p.locals, device, p.layout.BindGroupLayout(1), p.pool, loc.Index, realLocalsSize)
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

func (p *Real) Release() {
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
	if p.lights != nil {
		p.lights.Release()
		p.lights = nil
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
