package renderer

import (
	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/scene"
)

// Pass records and submits the GPU work that draws a scene into one or more targets.
type Pass interface {
	// Draw renders s as seen by cam into targets and submits the work to the context queue.
	//
	// Parameters:
	//   - targets: the color targets; passes render into the first one
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//   - ctx: the context owning the targets and the GPU resources
	//
	// Returns:
	//   - error: error if GPU resource creation fails
	Draw(targets []TargetRef, s *scene.Scene, cam *camera.Camera, ctx Context) error

	// Release frees the GPU resources owned by the pass.
	Release()
}
