package renderer

import (
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// Context owns the GPU device and every resource passes draw with: meshes, images and targets.
//
// A Context is created headless unless a surface is supplied with WithSurface, in which case
// Present renders a pass straight to the screen.
type Context interface {
	// Device returns the logical GPU device.
	Device() *wgpu.Device

	// Queue returns the device queue all passes submit to.
	Queue() *wgpu.Queue

	// UniformAlignment returns the minimum offset alignment for dynamic uniform bindings.
	UniformAlignment() uint64

	// AddMesh starts building a mesh that is uploaded when the builder's Build is called.
	//
	// Returns:
	//   - *MeshBuilder: the builder
	AddMesh() *MeshBuilder

	// GetMesh returns a mesh. Panics for stale or unknown references.
	GetMesh(ref model.MeshRef) *model.Mesh

	// AddImageFromData creates a texture and uploads tightly packed pixel rows into its first mip level.
	//
	// Parameters:
	//   - desc: the texture descriptor; TextureBinding and CopyDst usage are added
	//   - data: the pixel bytes, row after row with no padding
	//
	// Returns:
	//   - model.ImageRef: the new image
	//   - error: error if the format is not uploadable or texture creation fails
	AddImageFromData(desc *wgpu.TextureDescriptor, data []byte) (model.ImageRef, error)

	// AddImageFromStaging uploads decoded RGBA8 pixels as an sRGB texture.
	//
	// Parameters:
	//   - label: the debug label of the texture
	//   - staging: the decoded pixels
	//
	// Returns:
	//   - model.ImageRef: the new image
	//   - error: error if texture creation fails
	AddImageFromStaging(label string, staging common.TextureStagingData) (model.ImageRef, error)

	// LoadImage decodes an image file and uploads it as an sRGB texture.
	//
	// Parameters:
	//   - path: the image file path
	//
	// Returns:
	//   - model.ImageRef: the new image
	//   - error: error if the file cannot be read, decoded or uploaded
	LoadImage(path string) (model.ImageRef, error)

	// GetImage returns an image. Panics for stale or unknown references.
	GetImage(ref model.ImageRef) *model.Image

	// GetImageInfo returns the dimensions of an image.
	GetImageInfo(ref model.ImageRef) model.ImageInfo

	// AddTarget registers a caller-owned view as a render target.
	AddTarget(t Target) TargetRef

	// CreateTarget creates an offscreen color texture owned by the context and registers it as a target.
	//
	// Parameters:
	//   - label: the debug label of the texture
	//   - width: the width in pixels
	//   - height: the height in pixels
	//   - format: the color format
	//
	// Returns:
	//   - TargetRef: the new target
	//   - error: error if texture creation fails
	CreateTarget(label string, width, height uint32, format wgpu.TextureFormat) (TargetRef, error)

	// GetTarget returns a target. Panics for stale or unknown references.
	GetTarget(ref TargetRef) *Target

	// RemoveTarget unregisters a target, releasing its texture if the context created it.
	RemoveTarget(ref TargetRef)

	// SurfaceInfo describes the screen target.
	//
	// Returns:
	//   - TargetInfo: the surface format and aspect ratio
	//   - bool: false for a headless context
	SurfaceInfo() (TargetInfo, bool)

	// Resize reconfigures the surface. Does nothing when the size is unchanged or zero.
	Resize(width, height uint32)

	// Present draws a pass into the current surface texture and presents it.
	// Panics when the context has no surface.
	//
	// Parameters:
	//   - p: the pass to draw
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: error if the frame cannot be acquired or the pass fails
	Present(p Pass, s *scene.Scene, cam *camera.Camera) error

	// Release frees every mesh, image and owned target, then the device.
	Release()
}

type gpuContext struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	limits   wgpu.Limits

	surface       *wgpu.Surface
	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	surfaceSize   wgpu.Extent3D

	meshes         *resource.Table[model.Mesh]
	images         *resource.Table[model.Image]
	targets        *resource.Table[Target]
	targetTextures map[TargetRef]*wgpu.Texture

	// Pre-creation config collected from builder options
	label             string
	surfaceDescriptor *wgpu.SurfaceDescriptor
	pendingWidth      uint32
	pendingHeight     uint32
	powerPreference   PowerPreference
	software          bool
	presentMode       PresentMode
}

var _ Context = &gpuContext{}

// NewContext creates the GPU instance, adapter, device and queue, and configures the surface if one was given.
//
// Parameters:
//   - options: variadic list of ContextBuilderOption functions to configure the context
//
// Returns:
//   - Context: the new context
//   - error: error if no adapter or device is available
func NewContext(options ...ContextBuilderOption) (Context, error) {
	runtime.LockOSThread()
	c := &gpuContext{
		mu:             &sync.Mutex{},
		label:          "baryon",
		meshes:         resource.NewTable[model.Mesh](),
		images:         resource.NewTable[model.Image](),
		targets:        resource.NewTable[Target](),
		targetTextures: make(map[TargetRef]*wgpu.Texture),
	}
	for _, opt := range options {
		opt(c)
	}

	c.instance = wgpu.CreateInstance(nil)
	if c.surfaceDescriptor != nil {
		c.surface = c.instance.CreateSurface(c.surfaceDescriptor)
	}

	a, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      c.powerPreference.WGPU(),
		ForceFallbackAdapter: c.software,
		CompatibleSurface:    c.surface,
	})
	if err != nil {
		c.Release()
		return nil, errors.Wrap(err, "failed to request adapter")
	}
	c.adapter = a

	c.limits = wgpu.DefaultLimits()
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: c.label + " device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: c.limits,
		},
	})
	if err != nil {
		c.Release()
		return nil, errors.Wrap(err, "failed to request device")
	}
	c.device = d
	c.queue = d.GetQueue()

	if c.surface != nil {
		capabilities := c.surface.GetCapabilities(c.adapter)
		if len(capabilities.Formats) == 0 {
			c.Release()
			return nil, errors.New("surface reports no supported formats")
		}
		c.surfaceFormat = capabilities.Formats[0]
		c.alphaMode = capabilities.AlphaModes[0]
		c.configureSurface(c.pendingWidth, c.pendingHeight)
		log.Printf("[Renderer] surface configured: %dx%d, format %v, present mode %s",
			c.pendingWidth, c.pendingHeight, c.surfaceFormat, c.presentMode)
	} else {
		log.Printf("[Renderer] headless context created")
	}
	return c, nil
}

func (c *gpuContext) configureSurface(width, height uint32) {
	c.surfaceSize = extent(width, height)
	if width == 0 || height == 0 {
		return
	}
	c.surface.Configure(c.adapter, c.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.surfaceFormat,
		Width:       width,
		Height:      height,
		PresentMode: c.presentMode.WGPU(),
		AlphaMode:   c.alphaMode,
	})
}

func (c *gpuContext) Device() *wgpu.Device {
	return c.device
}

func (c *gpuContext) Queue() *wgpu.Queue {
	return c.queue
}

func (c *gpuContext) UniformAlignment() uint64 {
	return uint64(c.limits.MinUniformBufferOffsetAlignment)
}

func (c *gpuContext) AddMesh() *MeshBuilder {
	return newMeshBuilder(c)
}

func (c *gpuContext) addMesh(m model.Mesh) model.MeshRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meshes.Insert(m)
}

func (c *gpuContext) GetMesh(ref model.MeshRef) *model.Mesh {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meshes.Get(ref)
}

func (c *gpuContext) GetImage(ref model.ImageRef) *model.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.images.Get(ref)
}

func (c *gpuContext) GetImageInfo(ref model.ImageRef) model.ImageInfo {
	return c.GetImage(ref).Info()
}

func (c *gpuContext) AddTarget(t Target) TargetRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targets.Insert(t)
}

func (c *gpuContext) CreateTarget(label string, width, height uint32, format wgpu.TextureFormat) (TargetRef, error) {
	size := extent(width, height)
	tex, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return TargetRef{}, errors.Wrapf(err, "failed to create target %q", label)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return TargetRef{}, errors.Wrapf(err, "failed to create view for target %q", label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ref := c.targets.Insert(Target{View: view, Format: format, Size: size})
	c.targetTextures[ref] = tex
	return ref, nil
}

func (c *gpuContext) GetTarget(ref TargetRef) *Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targets.Get(ref)
}

func (c *gpuContext) RemoveTarget(ref TargetRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.targets.Remove(ref)
	if !ok {
		return
	}
	if tex, owned := c.targetTextures[ref]; owned {
		t.View.Release()
		tex.Release()
		delete(c.targetTextures, ref)
	}
}

func (c *gpuContext) SurfaceInfo() (TargetInfo, bool) {
	if c.surface == nil {
		return TargetInfo{}, false
	}
	t := Target{Format: c.surfaceFormat, Size: c.surfaceSize}
	return t.Info(), true
}

func (c *gpuContext) Resize(width, height uint32) {
	if c.surface == nil {
		return
	}
	if c.surfaceSize.Width == width && c.surfaceSize.Height == height {
		return
	}
	c.configureSurface(width, height)
}

func (c *gpuContext) Present(p Pass, s *scene.Scene, cam *camera.Camera) error {
	if c.surface == nil {
		panic("renderer: no screen is configured")
	}
	if c.surfaceSize.Width == 0 || c.surfaceSize.Height == 0 {
		return nil
	}

	frame, err := c.surface.GetCurrentTexture()
	if err != nil {
		return errors.Wrap(err, "failed to acquire surface texture")
	}
	defer frame.Release()
	view, err := frame.CreateView(nil)
	if err != nil {
		return errors.Wrap(err, "failed to create surface view")
	}
	defer view.Release()

	ref := c.AddTarget(Target{View: view, Format: c.surfaceFormat, Size: c.surfaceSize})
	err = p.Draw([]TargetRef{ref}, s, cam, c)
	c.RemoveTarget(ref)
	if err != nil {
		return err
	}
	c.surface.Present()
	return nil
}

func (c *gpuContext) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.meshes.All() {
		m.Release()
	}
	for _, img := range c.images.All() {
		img.Release()
	}
	for ref, tex := range c.targetTextures {
		if t, ok := c.targets.Lookup(ref); ok {
			t.View.Release()
		}
		tex.Release()
	}
	c.meshes = resource.NewTable[model.Mesh]()
	c.images = resource.NewTable[model.Image]()
	c.targets = resource.NewTable[Target]()
	c.targetTextures = make(map[TargetRef]*wgpu.Texture)

	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}
