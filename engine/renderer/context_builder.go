package renderer

import "github.com/cogentcore/webgpu/wgpu"

// ContextBuilderOption is a function that configures a Context before the device is created.
type ContextBuilderOption func(*gpuContext)

// WithSurface attaches the context to a window surface so Present can draw to the screen.
// Without it the context is headless.
//
// Parameters:
//   - desc: the platform surface descriptor, typically from the window
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//
// Returns:
//   - ContextBuilderOption: a function that applies the surface option to a context
func WithSurface(desc *wgpu.SurfaceDescriptor, width, height uint32) ContextBuilderOption {
	return func(c *gpuContext) {
		c.surfaceDescriptor = desc
		c.pendingWidth = width
		c.pendingHeight = height
	}
}

// WithPowerPreference selects between low-power and high-performance adapters.
func WithPowerPreference(p PowerPreference) ContextBuilderOption {
	return func(c *gpuContext) {
		c.powerPreference = p
	}
}

// WithSoftware forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - software: true to force the software fallback adapter
//
// Returns:
//   - ContextBuilderOption: a function that applies the software option to a context
func WithSoftware(software bool) ContextBuilderOption {
	return func(c *gpuContext) {
		c.software = software
	}
}

// WithPresentMode sets the presentation mode of the surface. Defaults to VSync.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - ContextBuilderOption: a function that applies the present mode option to a context
func WithPresentMode(mode PresentMode) ContextBuilderOption {
	return func(c *gpuContext) {
		c.presentMode = mode
	}
}

// WithLabel sets the prefix of the device debug label.
func WithLabel(label string) ContextBuilderOption {
	return func(c *gpuContext) {
		if label != "" {
			c.label = label
		}
	}
}
