package pass

import (
	"runtime"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/buffer_pool"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/material"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// Ambient is the light applied to every lit surface regardless of the scene lights.
type Ambient struct {
	Color     common.Color
	Intensity float32
}

// PhongConfig configures a Phong pass.
type PhongConfig struct {
	// CullBackFaces discards counter-clockwise back faces.
	CullBackFaces bool
	Ambient       Ambient
	// MaxLights caps the light buffer. Lights beyond it are ignored.
	MaxLights int
	// Workers is the number of goroutines selecting lights per entity.
	Workers int
}

// DefaultPhongConfig culls back faces, has no ambient light, keeps 16 lights and selects lights on
// all but one CPU.
func DefaultPhongConfig() PhongConfig {
	return PhongConfig{
		CullBackFaces: true,
		Ambient:       Ambient{Color: common.ColorWhite, Intensity: 0},
		MaxLights:     light.DefaultMaxLights,
		Workers:       max(runtime.NumCPU()-1, 1),
	}
}

const (
	phongVariantFlat = iota
	phongVariantGouraud
	phongVariantPhong
	phongVariantCount
)

// phongVariant picks the pipeline of a shading model.
func phongVariant(s material.Shader) int {
	switch {
	case s.Kind == material.ShaderPhong:
		return phongVariantPhong
	case s.Flat:
		return phongVariantFlat
	default:
		return phongVariantGouraud
	}
}

type phongEntity struct {
	mesh    *model.Mesh
	streams []model.VertexStream
	variant int
	locals  phongLocals
}

// Phong draws entities with position and normal streams, a Color and a material.Shader using
// Blinn-Phong lighting from up to four lights per entity.
type Phong struct {
	config    PhongConfig
	layout    *pipeline.Layout
	pipelines [phongVariantCount]pipeline.Pipeline
	globals   *wgpu.Buffer
	lights    *wgpu.Buffer
	group     *wgpu.BindGroup
	pool      buffer_pool.Pool
	locals    *buffer_pool.BindGroupCache[int]
	depth     depthBuffer
	selector  *lightSelector

	entities   []phongEntity
	bounds     []lightBounds
	gpuLights  []light.GPULight
	candidates []light.Candidate
	draws      []meshDraw
}

var _ renderer.Pass = &Phong{}

// NewPhong creates the Phong pass resources.
//
// Parameters:
//   - ctx: the context owning the device
//   - config: the pass configuration
//
// Returns:
//   - *Phong: the pass
//   - error: error if a GPU resource cannot be created
func NewPhong(ctx renderer.Context, config PhongConfig) (*Phong, error) {
	if config.MaxLights <= 0 {
		config.MaxLights = light.DefaultMaxLights
	}
	device := ctx.Device()
	layout, err := pipeline.NewLayout(device, loadShader("phong"))
	if err != nil {
		return nil, err
	}
	cull := pipeline.WithBackFaceCulling(config.CullBackFaces)
	p := &Phong{
		config: config,
		layout: layout,
		pipelines: [phongVariantCount]pipeline.Pipeline{
			phongVariantFlat:    pipeline.NewPipeline("phong flat", layout, cull, pipeline.WithEntryPoints("vs_flat", "fs_flat")),
			phongVariantGouraud: pipeline.NewPipeline("phong gouraud", layout, cull, pipeline.WithEntryPoints("vs_flat", "fs_gouraud")),
			phongVariantPhong:   pipeline.NewPipeline("phong", layout, cull, pipeline.WithEntryPoints("vs_phong", "fs_phong")),
		},
		locals:   buffer_pool.NewBindGroupCache[int](),
		selector: newLightSelector(config.Workers),
	}

	if p.globals, err = newUniformBuffer(device, "phong globals", phongGlobalsSize); err != nil {
		p.Release()
		return nil, err
	}
	if p.lights, err = newLightBuffer(device, "phong lights", config.MaxLights); err != nil {
		p.Release()
		return nil, err
	}
	p.group, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "phong globals",
		Layout: layout.BindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.globals, Size: phongGlobalsSize},
			{Binding: 1, Buffer: p.lights, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, errors.Wrap(err, "failed to create phong globals bind group")
	}
	if p.pool, err = newLocalsPool(ctx, "phong locals"); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// ambientVec4 premultiplies the ambient color by its intensity.
func ambientVec4(a Ambient) [4]float32 {
	c := a.Color.Vec4()
	return [4]float32{c[0] * a.Intensity, c[1] * a.Intensity, c[2] * a.Intensity, 0}
}

// packLights converts the scene lights to their GPU form and to selection candidates, both truncated
// to maxLights so selected indices always address the uploaded buffer.
func packLights(s *scene.Scene, baked *space.BakedScene, maxLights int, gpu []light.GPULight, candidates []light.Candidate) ([]light.GPULight, []light.Candidate) {
	gpu, candidates = gpu[:0], candidates[:0]
	for _, l := range s.Lights() {
		if len(gpu) == maxLights {
			break
		}
		raw := baked.At(l.Node)
		gpu = append(gpu, l.GPU(raw))
		candidates = append(candidates, light.Candidate{
			Position:  raw.Position(),
			Intensity: l.Intensity,
			Kind:      l.Kind,
		})
	}
	return gpu, candidates
}

// phongEntityLocals builds the uniform of one entity, before light selection.
func phongEntityLocals(raw space.RawSpace, e *scene.Entity) (phongLocals, material.Shader, bool) {
	color, ok := e.Color()
	if !ok {
		return phongLocals{}, material.Shader{}, false
	}
	sh, ok := e.Shader()
	if !ok {
		return phongLocals{}, material.Shader{}, false
	}
	locals := phongLocals{
		PosScale: raw.PosScale,
		Rot:      raw.Rot,
		Color:    color.Vec4Gamma(),
	}
	if sh.Kind == material.ShaderPhong {
		locals.Glossiness = float32(sh.Glossiness)
	}
	return locals, sh, true
}

func (p *Phong) Draw(targets []renderer.TargetRef, s *scene.Scene, cam *camera.Camera, ctx renderer.Context) error {
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
	var rps [phongVariantCount]*wgpu.RenderPipeline
	for i, pl := range p.pipelines {
		if rps[i], err = pl.Get(device, target.Format); err != nil {
			return err
		}
	}

	baked := s.Bake()
	cu := cam.Uniform(target.Aspect(), baked)
	globals := phongGlobals{
		ViewProj:  cu.ViewProj,
		CameraPos: cu.CameraPosition,
		Ambient:   ambientVec4(p.config.Ambient),
	}
	if err := writeStruct(queue, p.globals, &globals); err != nil {
		return errors.Wrap(err, "failed to write phong globals")
	}

	p.gpuLights, p.candidates = packLights(s, baked, p.config.MaxLights, p.gpuLights, p.candidates)
	if len(p.gpuLights) > 0 {
		data, _ := light.MarshalLights(p.gpuLights, p.config.MaxLights)
		if err := queue.WriteBuffer(p.lights, 0, data); err != nil {
			return errors.Wrap(err, "failed to write phong lights")
		}
	}

	locations := p.layout.Shader().VertexLocations("vs_flat")
	p.entities = p.entities[:0]
	p.bounds = p.bounds[:0]
	for _, e := range s.Entities(model.Streams(model.StreamPosition, model.StreamNormal)) {
		raw := baked.At(e.Node)
		locals, sh, ok := phongEntityLocals(raw, e)
		if !ok {
			continue
		}
		mesh := ctx.GetMesh(e.Mesh)
		streams, err := meshStreams(mesh, locations)
		if err != nil {
			return err
		}
		p.entities = append(p.entities, phongEntity{
			mesh:    mesh,
			streams: streams,
			variant: phongVariant(sh),
			locals:  locals,
		})
		p.bounds = append(p.bounds, lightBounds{
			center: raw.Position(),
			radius: mesh.Radius * raw.PosScale[3],
		})
	}
	p.selector.run(p.bounds, p.candidates)

	p.pool.Reset()
	if _, err := p.pool.PrepareForCount(phongLocalsSize, len(p.entities)); err != nil {
		return err
	}
	p.draws = p.draws[:0]
	for i := range p.entities {
		ent := &p.entities[i]
		ent.locals.Lights = p.bounds[i].lights
		ent.locals.LightCount = uint32(p.bounds[i].count)
		loc, err := buffer_pool.Alloc(p.pool, &ent.locals)
		if err != nil {
			return err
		}
		bg, err := localsGroup(p.locals, device, p.layout.BindGroupLayout(1), p.pool, loc.Index, phongLocalsSize)
		if err != nil {
			return err
		}
		p.draws = append(p.draws, meshDraw{
			pipeline: rps[ent.variant],
			mesh:     ent.mesh,
			streams:  ent.streams,
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

func (p *Phong) Release() {
	if p.selector != nil {
		p.selector.release()
	}
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
	for _, pl := range p.pipelines {
		if pl != nil {
			pl.Release()
		}
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
}
