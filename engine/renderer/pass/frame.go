// Package pass implements the built-in render passes: Clear, Solid, Flat, Phong and Real.
//
// Every pass follows the same frame: bake the scene, write the camera globals, pack per-draw locals
// into a uniform arena with dynamic offsets, then record and submit a single command buffer.
package pass

import (
	"embed"
	"fmt"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/buffer_pool"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

//go:embed assets/*.wgsl
var assets embed.FS

// locationStreams binds shader input locations to mesh streams.
var locationStreams = map[uint32]model.StreamKind{
	0: model.StreamPosition,
	1: model.StreamNormal,
	2: model.StreamTexCoord,
}

func loadShader(name string) shader.Shader {
	src, err := assets.ReadFile("assets/" + name + ".wgsl")
	if err != nil {
		panic(fmt.Sprintf("pass: missing shader %s: %v", name, err))
	}
	return shader.NewShader(name, string(src))
}

// firstTarget resolves the target a pass renders into.
func firstTarget(targets []renderer.TargetRef, ctx renderer.Context) (*renderer.Target, error) {
	if len(targets) == 0 {
		return nil, errors.New("pass: no render target")
	}
	return ctx.GetTarget(targets[0]), nil
}

// depthBuffer is a Depth24Plus attachment recreated whenever the target size changes.
type depthBuffer struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	size    wgpu.Extent3D
}

func (d *depthBuffer) ensure(device *wgpu.Device, size wgpu.Extent3D) (*wgpu.TextureView, error) {
	if d.view != nil && d.size == size {
		return d.view, nil
	}
	d.Release()

	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DefaultDepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create depth texture")
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, errors.Wrap(err, "failed to create depth view")
	}
	d.texture, d.view, d.size = tex, view, size
	return view, nil
}

func (d *depthBuffer) Release() {
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.texture != nil {
		d.texture.Release()
		d.texture = nil
	}
}

func colorAttachment(view *wgpu.TextureView, clear common.Color) wgpu.RenderPassColorAttachment {
	return wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear.WGPU(),
	}
}

func depthAttachment(view *wgpu.TextureView) *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            view,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpDiscard,
		DepthClearValue: 1.0,
	}
}

func newUniformBuffer(device *wgpu.Device, label string, size uint64) (*wgpu.Buffer, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s buffer", label)
	}
	return buf, nil
}

func writeStruct[T any](queue *wgpu.Queue, buf *wgpu.Buffer, v *T) error {
	return queue.WriteBuffer(buf, 0, common.StructToBytes(v))
}

func newLightBuffer(device *wgpu.Device, label string, maxLights int) (*wgpu.Buffer, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(max(maxLights, 1)) * lightSize,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s buffer", label)
	}
	return buf, nil
}

func newLocalsPool(ctx renderer.Context, label string) (buffer_pool.Pool, error) {
	return buffer_pool.NewPool(ctx.Device(), ctx.Queue(),
		buffer_pool.WithAlignment(ctx.UniformAlignment()),
		buffer_pool.WithLabel(label),
	)
}

// localsGroup returns the bind group exposing one arena chunk as the dynamic locals binding.
func localsGroup(
	cache *buffer_pool.BindGroupCache[int],
	device *wgpu.Device,
	layout *wgpu.BindGroupLayout,
	pool buffer_pool.Pool,
	index int,
	size uint64,
) (*wgpu.BindGroup, error) {
	return cache.GetOrCreate(index, func() (*wgpu.BindGroup, error) {
		bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("locals [%d]", index),
			Layout:  layout,
			Entries: []wgpu.BindGroupEntry{pool.Binding(0, index, size)},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create locals bind group %d", index)
		}
		return bg, nil
	})
}

// meshStreams picks the mesh stream feeding each vertex buffer slot, in slot order.
//
// Parameters:
//   - mesh: the mesh to draw
//   - locations: the shader input locations, one per slot
//
// Returns:
//   - []model.VertexStream: the streams to bind
//   - error: error if a location has no matching stream
func meshStreams(mesh *model.Mesh, locations []uint32) ([]model.VertexStream, error) {
	streams := make([]model.VertexStream, len(locations))
	for slot, loc := range locations {
		kind, ok := locationStreams[loc]
		if !ok {
			return nil, fmt.Errorf("no stream is bound to location %d", loc)
		}
		s, ok := mesh.VertexStream(kind)
		if !ok {
			return nil, fmt.Errorf("mesh has no %s stream for location %d", kind, loc)
		}
		streams[slot] = s
	}
	return streams, nil
}

// meshDraw is one recorded mesh draw with its locals bind group and dynamic offset.
type meshDraw struct {
	pipeline *wgpu.RenderPipeline
	mesh     *model.Mesh
	streams  []model.VertexStream
	locals   *wgpu.BindGroup
	offsets  []uint32
}

func encodeMeshDraws(rp *wgpu.RenderPassEncoder, globals *wgpu.BindGroup, draws []meshDraw) {
	var current *wgpu.RenderPipeline
	for _, d := range draws {
		if d.pipeline != current {
			rp.SetPipeline(d.pipeline)
			rp.SetBindGroup(0, globals, nil)
			current = d.pipeline
		}
		rp.SetBindGroup(1, d.locals, d.offsets)
		for slot, s := range d.streams {
			rp.SetVertexBuffer(uint32(slot), d.mesh.Buffer, s.Offset, wgpu.WholeSize)
		}
		if d.mesh.Index != nil {
			rp.SetIndexBuffer(d.mesh.Buffer, d.mesh.Index.Format, d.mesh.Index.Offset, wgpu.WholeSize)
			rp.DrawIndexed(d.mesh.Index.Count, 1, 0, 0, 0)
		} else {
			rp.Draw(d.mesh.VertexCount, 1, 0, 0)
		}
	}
}

func submit(ctx renderer.Context, encoder *wgpu.CommandEncoder) error {
	defer encoder.Release()
	cb, err := encoder.Finish(nil)
	if err != nil {
		return errors.Wrap(err, "failed to finish command encoder")
	}
	ctx.Queue().Submit(cb)
	cb.Release()
	return nil
}
