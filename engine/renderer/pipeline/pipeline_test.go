package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/baryon-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource = `
struct Out { @builtin(position) pos: vec4f }
@group(0) @binding(0) var<uniform> globals: mat4x4<f32>;
@vertex fn vs_flat(@location(0) pos: vec3f) -> Out { var o: Out; return o; }
@vertex fn vs_phong(@location(0) pos: vec3f, @location(1) normal: vec3f) -> Out { var o: Out; return o; }
@fragment fn fs_flat() -> @location(0) vec4f { return vec4f(1.0); }
@fragment fn fs_phong() -> @location(0) vec4f { return vec4f(1.0); }
`

func testLayout(t *testing.T) *Layout {
	t.Helper()
	return &Layout{shader: shader.NewShader("test", testSource)}
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("flat", testLayout(t))

	assert.Equal(t, "flat", p.Key())
	assert.Equal(t, "vs_flat", p.VertexEntryPoint())
	assert.Equal(t, "fs_flat", p.FragmentEntryPoint())
	assert.Equal(t, DefaultDepthFormat, p.DepthFormat())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, uint32(1), p.SampleCount())
}

func TestDescriptor(t *testing.T) {
	p := NewPipeline("phong", testLayout(t),
		WithEntryPoints("vs_phong", "fs_phong"),
		WithBackFaceCulling(true),
	)

	desc := p.Descriptor(wgpu.TextureFormatBGRA8UnormSrgb)
	assert.Equal(t, "phong", desc.Label)
	assert.Equal(t, "vs_phong", desc.Vertex.EntryPoint)
	assert.Len(t, desc.Vertex.Buffers, 2)
	require.NotNil(t, desc.Fragment)
	assert.Equal(t, "fs_phong", desc.Fragment.EntryPoint)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, desc.Fragment.Targets[0].Format)
	assert.Nil(t, desc.Fragment.Targets[0].Blend)
	assert.Equal(t, wgpu.CullModeBack, desc.Primitive.CullMode)
	require.NotNil(t, desc.DepthStencil)
	assert.Equal(t, wgpu.TextureFormatDepth24Plus, desc.DepthStencil.Format)
	assert.Equal(t, wgpu.CompareFunctionLessEqual, desc.DepthStencil.DepthCompare)
}

func TestDescriptorWithoutDepthAndBlending(t *testing.T) {
	p := NewPipeline("sprites", testLayout(t),
		WithoutDepth(),
		WithTopology(wgpu.PrimitiveTopologyTriangleStrip),
		WithBlendEnabled(true),
	)

	desc := p.Descriptor(wgpu.TextureFormatRGBA8Unorm)
	assert.Nil(t, desc.DepthStencil)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, desc.Primitive.Topology)
	require.NotNil(t, desc.Fragment.Targets[0].Blend)
	assert.Equal(t, PremultipliedAlphaBlending, *desc.Fragment.Targets[0].Blend)
}

func TestNewPipelineUnknownEntryPoint(t *testing.T) {
	assert.PanicsWithValue(t, `pipeline: test has no entry point "vs_missing"`, func() {
		NewPipeline("bad", testLayout(t), WithEntryPoints("vs_missing", "fs_flat"))
	})
}

func TestBackFaceCullingDisabled(t *testing.T) {
	p := NewPipeline("solid", testLayout(t), WithBackFaceCulling(false))
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
}

func TestLayoutBindGroupLayoutPanics(t *testing.T) {
	l := testLayout(t)
	assert.PanicsWithValue(t, "pipeline: test has no bind group 3", func() {
		l.BindGroupLayout(3)
	})
}
