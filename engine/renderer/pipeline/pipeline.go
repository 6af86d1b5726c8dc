package pipeline

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultDepthFormat is the depth attachment format used by every depth-tested pass.
const DefaultDepthFormat = wgpu.TextureFormatDepth24Plus

// PremultipliedAlphaBlending blends colors whose RGB has already been multiplied by alpha.
var PremultipliedAlphaBlending = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	mu     *sync.Mutex
	key    string
	layout *Layout

	vertexEntryPoint   string
	fragmentEntryPoint string

	// The following properties configure the pipeline and are set with the builder options.

	depthFormat       wgpu.TextureFormat
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	blendEnabled      bool
	blendState        *wgpu.BlendState
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	sampleCount       uint32

	// created holds one GPU pipeline per color target format.
	created map[wgpu.TextureFormat]*wgpu.RenderPipeline
}

// Pipeline describes a render pipeline variant of a Layout. The GPU pipeline is created lazily
// for each color target format it is drawn into, since offscreen targets and the surface may differ.
type Pipeline interface {
	// Key returns the unique key associated with this pipeline, used for labels.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	Key() string

	// Layout returns the shared layout the pipeline is built against.
	//
	// Returns:
	//   - *Layout: the layout
	Layout() *Layout

	// VertexEntryPoint returns the vertex function used by this variant.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment function used by this variant.
	FragmentEntryPoint() string

	// DepthFormat returns the depth attachment format, or wgpu.TextureFormatUndefined for no depth.
	DepthFormat() wgpu.TextureFormat

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthCompare returns the depth comparison function.
	DepthCompare() wgpu.CompareFunction

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// BlendState returns the blend state, used only when blending is enabled.
	BlendState() *wgpu.BlendState

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	WriteMask() wgpu.ColorWriteMask

	// SampleCount returns the multisample count of the color target.
	SampleCount() uint32

	// Descriptor builds the creation descriptor for a color target format.
	//
	// Parameters:
	//   - format: the color target format
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor
	Descriptor(format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor

	// Get returns the GPU pipeline for a color target format, creating it on first use.
	//
	// Parameters:
	//   - device: the device to create the pipeline on
	//   - format: the color target format
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline
	//   - error: an error if creation failed
	Get(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error)

	// Release frees every created GPU pipeline. The shared Layout is left alone.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline variant of layout. The first vertex and fragment entry points of
// the layout's shader are used unless WithEntryPoints selects others.
// Panics if a selected entry point does not exist.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - layout: the shared layout
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(key string, layout *Layout, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mu:                 &sync.Mutex{},
		key:                key,
		layout:             layout,
		vertexEntryPoint:   layout.shader.VertexEntryPoint(),
		fragmentEntryPoint: layout.shader.FragmentEntryPoint(),
		depthFormat:        DefaultDepthFormat,
		depthWriteEnabled:  true,
		depthCompare:       wgpu.CompareFunctionLessEqual,
		cullMode:           wgpu.CullModeNone,
		topology:           wgpu.PrimitiveTopologyTriangleList,
		frontFace:          wgpu.FrontFaceCCW,
		writeMask:          wgpu.ColorWriteMaskAll,
		sampleCount:        1,
		blendState:         &PremultipliedAlphaBlending,
		created:            make(map[wgpu.TextureFormat]*wgpu.RenderPipeline),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, name := range []string{p.vertexEntryPoint, p.fragmentEntryPoint} {
		if !layout.shader.HasEntryPoint(name) {
			panic(fmt.Sprintf("pipeline: %s has no entry point %q", layout.shader.Key(), name))
		}
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Layout() *Layout {
	return p.layout
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) Descriptor(format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.writeMask,
	}
	if p.blendEnabled {
		target.Blend = p.blendState
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  p.key,
		Layout: p.layout.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     p.layout.module,
			EntryPoint: p.vertexEntryPoint,
			Buffers:    p.layout.shader.VertexLayouts(p.vertexEntryPoint),
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.layout.module,
			EntryPoint: p.fragmentEntryPoint,
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: p.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
	if p.depthFormat != wgpu.TextureFormatUndefined {
		desc.DepthStencil = &wgpu.DepthStencilState{
			Format:            p.depthFormat,
			DepthWriteEnabled: p.depthWriteEnabled,
			DepthCompare:      p.depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}
	return desc
}

func (p *pipeline) Get(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if rp, ok := p.created[format]; ok {
		return rp, nil
	}
	rp, err := device.CreateRenderPipeline(p.Descriptor(format))
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline %s: %w", p.key, err)
	}
	p.created[format] = rp
	return rp, nil
}

func (p *pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for format, rp := range p.created {
		rp.Release()
		delete(p.created, format)
	}
}
