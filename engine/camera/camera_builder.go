package camera

import (
	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a function that configures a Camera during construction.
type CameraBuilderOption func(*Camera)

// WithOrthographic sets an orthographic projection.
//
// Parameters:
//   - center: the center of the view box
//   - extentY: the vertical half-size of the view box
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera projection
func WithOrthographic(center mgl32.Vec2, extentY float32) CameraBuilderOption {
	return func(c *Camera) {
		c.Projection = Orthographic(center, extentY)
	}
}

// WithPerspective sets a perspective projection.
//
// Parameters:
//   - fovY: vertical field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera projection
func WithPerspective(fovY float32) CameraBuilderOption {
	return func(c *Camera) {
		c.Projection = Perspective(fovY)
	}
}

// WithDepth sets the depth range.
//
// Parameters:
//   - start: the depth mapped to 0
//   - end: the depth mapped to 1
//
// Returns:
//   - CameraBuilderOption: a function that sets the depth range
func WithDepth(start, end float32) CameraBuilderOption {
	return func(c *Camera) {
		c.Depth = Depth{Start: start, End: end}
	}
}

// WithNode attaches the camera to a scene node.
func WithNode(node space.NodeRef) CameraBuilderOption {
	return func(c *Camera) {
		c.Node = node
	}
}

// WithBackground sets the clear color.
func WithBackground(color common.Color) CameraBuilderOption {
	return func(c *Camera) {
		c.Background = color
	}
}
