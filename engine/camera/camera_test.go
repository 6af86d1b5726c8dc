package camera

import (
	"testing"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3(common.TransformPoint([16]float32(m), [3]float32(p)))
}

func TestDefaultCamera(t *testing.T) {
	c := New()
	assert.Equal(t, ProjectionOrthographic, c.Projection.Kind)
	assert.Equal(t, float32(1), c.Projection.ExtentY)
	assert.Equal(t, Depth{Start: 0, End: 1}, c.Depth)
	assert.Equal(t, space.Root, c.Node)
	assert.Equal(t, common.ColorBlackOpaque, c.Background)
}

func TestOrthographicProjection(t *testing.T) {
	c := New(WithOrthographic(mgl32.Vec2{1, 0}, 2), WithDepth(0, 10))
	m := c.ProjectionMatrix(2)

	// extent_x = aspect * extent_y = 4, so x in [-3, 5] maps to [-1, 1].
	p := project(m, mgl32.Vec3{5, 2, 0})
	assert.InDelta(t, 1, p[0], 1e-5)
	assert.InDelta(t, 1, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)

	p = project(m, mgl32.Vec3{-3, -2, -10})
	assert.InDelta(t, -1, p[0], 1e-5)
	assert.InDelta(t, -1, p[1], 1e-5)
	assert.InDelta(t, 1, p[2], 1e-5)
}

func TestPerspectiveProjectionVariants(t *testing.T) {
	c := New(WithPerspective(90), WithDepth(1, 10))
	m := c.ProjectionMatrix(1)
	assert.InDelta(t, 0, project(m, mgl32.Vec3{0, 0, -1})[2], 1e-5)
	assert.InDelta(t, 1, project(m, mgl32.Vec3{0, 0, -10})[2], 1e-5)
	// 90 degree fov: a point at 45 degrees lands on the top edge.
	assert.InDelta(t, 1, project(m, mgl32.Vec3{0, 5, -5})[1], 1e-5)

	c.Depth = Depth{Start: 0.5, End: math32.Inf(1)}
	m = c.ProjectionMatrix(1)
	assert.InDelta(t, 0, project(m, mgl32.Vec3{0, 0, -0.5})[2], 1e-5)
	assert.Less(t, project(m, mgl32.Vec3{0, 0, -1e6})[2], float32(1))

	c.Depth = Depth{Start: math32.Inf(1), End: 0.5}
	m = c.ProjectionMatrix(1)
	assert.InDelta(t, 1, project(m, mgl32.Vec3{0, 0, -0.5})[2], 1e-5)
	assert.Greater(t, project(m, mgl32.Vec3{0, 0, -1e6})[2], float32(0))

	c.Depth = Depth{Start: math32.Inf(1), End: math32.Inf(1)}
	assert.Panics(t, func() { c.ProjectionMatrix(1) })
}

func TestViewProjectionUsesCameraNode(t *testing.T) {
	nodes := space.NewNodes()
	node := nodes.Add(space.Root, space.FromPosition(mgl32.Vec3{0, 0, 5}))
	c := New(WithNode(node), WithDepth(0, 10))
	baked := nodes.Bake()

	vp := c.ViewProjection(1, baked)
	// the origin sits 5 units in front of the camera.
	assert.InDelta(t, 0.5, project(vp, mgl32.Vec3{})[2], 1e-5)

	u := c.Uniform(1, baked)
	assert.Equal(t, [4]float32{0, 0, 5, 1}, u.CameraPosition)
	require.Equal(t, 80, u.Size())
	assert.Len(t, u.Marshal(), 80)
}

func TestOrbitController(t *testing.T) {
	oc := NewOrbitController(WithRadius(5), WithElevation(0), WithRadiusBounds(2, 8))
	s := oc.Space()
	assert.InDelta(t, 0, s.Position[0], 1e-5)
	assert.InDelta(t, 5, s.Position[2], 1e-5)

	// the local -Z axis points at the target.
	forward := s.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, -1, forward[2], 1e-5)

	oc.Zoom(10)
	assert.Equal(t, float32(2), oc.Radius())
	oc.Zoom(-100)
	assert.Equal(t, float32(8), oc.Radius())

	oc.OrbitRight()
	assert.Greater(t, oc.Space().Position[0], float32(0))
	for range 200 {
		oc.OrbitUp()
	}
	assert.Less(t, oc.Space().Position[1], float32(8))

	nodes := space.NewNodes()
	ref := nodes.Add(space.Root, space.Identity())
	oc.Apply(nodes.Get(ref))
	assert.True(t, nodes.Get(ref).Local().ApproxEqual(oc.Space(), 1e-6))
}
