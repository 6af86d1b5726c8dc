package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionKind identifies the projection model of a camera.
type ProjectionKind uint8

const (
	// ProjectionOrthographic maps a box to clip space without perspective.
	ProjectionOrthographic ProjectionKind = iota
	// ProjectionPerspective maps a frustum to clip space.
	ProjectionPerspective
)

// Projection describes how view space maps to clip space.
// Center and ExtentY are used by orthographic projections, FovY by perspective ones.
type Projection struct {
	Kind ProjectionKind
	// Center is the center of the orthographic view box.
	Center mgl32.Vec2
	// ExtentY is the vertical half-size of the orthographic view box.
	// The horizontal half-size follows from the aspect ratio.
	ExtentY float32
	// FovY is the vertical field of view in degrees.
	FovY float32
}

// Orthographic returns an orthographic projection.
//
// Parameters:
//   - center: the center of the view box
//   - extentY: the vertical half-size of the view box
//
// Returns:
//   - Projection: the projection
func Orthographic(center mgl32.Vec2, extentY float32) Projection {
	return Projection{Kind: ProjectionOrthographic, Center: center, ExtentY: extentY}
}

// Perspective returns a perspective projection.
//
// Parameters:
//   - fovY: the vertical field of view in degrees
//
// Returns:
//   - Projection: the projection
func Perspective(fovY float32) Projection {
	return Projection{Kind: ProjectionPerspective, FovY: fovY}
}

// Depth is the depth range seen by the camera: Start maps to 0 and End maps to 1.
// For perspective cameras an infinite End selects an infinite far plane and an infinite
// Start selects reversed infinite depth.
type Depth struct {
	Start float32
	End   float32
}

// Camera is a view into the scene, placed by a scene node.
type Camera struct {
	Projection Projection
	Depth      Depth
	// Node is the scene node whose world transform places the camera.
	Node space.NodeRef
	// Background is the color render passes clear the target to.
	Background common.Color
}

// New creates a Camera, by default orthographic around the origin with a unit vertical extent,
// depth 0 to 1, attached to the root and clearing to opaque black.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - *Camera: the configured camera
func New(options ...CameraBuilderOption) *Camera {
	c := &Camera{
		Projection: Orthographic(mgl32.Vec2{}, 1),
		Depth:      Depth{Start: 0, End: 1},
		Node:       space.Root,
		Background: common.ColorBlackOpaque,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ProjectionMatrix returns the right-handed projection matrix for a viewport, mapping depth to [0, 1].
// Panics when both depth bounds are infinite.
//
// Parameters:
//   - aspect: the viewport width divided by its height
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	switch c.Projection.Kind {
	case ProjectionPerspective:
		fov := mgl32.DegToRad(c.Projection.FovY)
		switch {
		case math32.IsInf(c.Depth.End, 1):
			if math32.IsInf(c.Depth.Start, 0) {
				panic(fmt.Sprintf("camera: invalid depth range %v", c.Depth))
			}
			return mgl32.Mat4(common.PerspectiveInfiniteRH(fov, aspect, c.Depth.Start))
		case math32.IsInf(c.Depth.Start, 1):
			return mgl32.Mat4(common.PerspectiveInfiniteReverseRH(fov, aspect, c.Depth.End))
		default:
			return mgl32.Mat4(common.PerspectiveRH(fov, aspect, c.Depth.Start, c.Depth.End))
		}
	default:
		center := c.Projection.Center
		ey := c.Projection.ExtentY
		ex := aspect * ey
		return mgl32.Mat4(common.OrthographicRH(
			center[0]-ex, center[0]+ex,
			center[1]-ey, center[1]+ey,
			c.Depth.Start, c.Depth.End,
		))
	}
}

// ViewProjection combines the projection with the inverse of the camera node's world transform.
//
// Parameters:
//   - aspect: the viewport aspect ratio
//   - baked: the baked scene the camera node belongs to
//
// Returns:
//   - mgl32.Mat4: the world to clip space matrix
func (c *Camera) ViewProjection(aspect float32, baked *space.BakedScene) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(baked.At(c.Node).InverseMatrix())
}

// Uniform builds the camera uniform for a viewport.
//
// Parameters:
//   - aspect: the viewport aspect ratio
//   - baked: the baked scene the camera node belongs to
//
// Returns:
//   - GPUCameraUniform: the packed uniform
func (c *Camera) Uniform(aspect float32, baked *space.BakedScene) GPUCameraUniform {
	pos := baked.At(c.Node).Position()
	return GPUCameraUniform{
		ViewProj:       c.ViewProjection(aspect, baked),
		CameraPosition: [4]float32{pos[0], pos[1], pos[2], 1},
	}
}
