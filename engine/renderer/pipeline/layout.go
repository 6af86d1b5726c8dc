package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/baryon-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Layout owns the GPU objects derived from a reflected shader: the shader module, one bind group
// layout per declared group and the pipeline layout. Every pipeline variant built from the same
// shader shares one Layout, so bind groups created against it are valid for all of them.
type Layout struct {
	shader           shader.Shader
	module           *wgpu.ShaderModule
	bindGroupLayouts []*wgpu.BindGroupLayout
	pipelineLayout   *wgpu.PipelineLayout
}

// NewLayout creates the shader module, bind group layouts and pipeline layout for s.
//
// Parameters:
//   - device: the device to create the objects on
//   - s: the reflected shader
//
// Returns:
//   - *Layout: the layout
//   - error: an error if any GPU object could not be created
func NewLayout(device *wgpu.Device, s shader.Shader) (*Layout, error) {
	l := &Layout{shader: s}

	module, err := device.CreateShaderModule(s.Module())
	if err != nil {
		return nil, fmt.Errorf("failed to create shader module %s: %w", s.Key(), err)
	}
	l.module = module

	l.bindGroupLayouts = make([]*wgpu.BindGroupLayout, s.BindGroupCount())
	for g := range l.bindGroupLayouts {
		desc := s.BindGroupLayoutDescriptor(g)
		desc.Label = fmt.Sprintf("%s group %d", s.Key(), g)
		bgl, err := device.CreateBindGroupLayout(&desc)
		if err != nil {
			l.Release()
			return nil, fmt.Errorf("failed to create bind group layout for group %d: %w", g, err)
		}
		l.bindGroupLayouts[g] = bgl
	}

	l.pipelineLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            s.Key(),
		BindGroupLayouts: l.bindGroupLayouts,
	})
	if err != nil {
		l.Release()
		return nil, fmt.Errorf("failed to create pipeline layout %s: %w", s.Key(), err)
	}
	return l, nil
}

// Shader returns the reflected shader the layout was built from.
func (l *Layout) Shader() shader.Shader {
	return l.shader
}

// BindGroupLayout returns the layout of a group.
// Panics if the shader does not declare the group.
func (l *Layout) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	if group < 0 || group >= len(l.bindGroupLayouts) || l.bindGroupLayouts[group] == nil {
		panic(fmt.Sprintf("pipeline: %s has no bind group %d", l.shader.Key(), group))
	}
	return l.bindGroupLayouts[group]
}

// Release frees the module and every layout.
func (l *Layout) Release() {
	if l.pipelineLayout != nil {
		l.pipelineLayout.Release()
		l.pipelineLayout = nil
	}
	for i, bgl := range l.bindGroupLayouts {
		if bgl != nil {
			bgl.Release()
			l.bindGroupLayouts[i] = nil
		}
	}
	if l.module != nil {
		l.module.Release()
		l.module = nil
	}
}
