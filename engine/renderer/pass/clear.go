package pass

import (
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// Clear fills the target with the camera background and draws nothing else.
type Clear struct{}

var _ renderer.Pass = &Clear{}

// NewClear creates a Clear pass.
func NewClear() *Clear {
	return &Clear{}
}

func (p *Clear) Draw(targets []renderer.TargetRef, _ *scene.Scene, cam *camera.Camera, ctx renderer.Context) error {
	target, err := firstTarget(targets, ctx)
	if err != nil {
		return err
	}
	encoder, err := ctx.Device().CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "failed to create command encoder")
	}
	rp := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{colorAttachment(target.View, cam.Background)},
	})
	rp.End()
	return submit(ctx, encoder)
}

func (p *Clear) Release() {}
