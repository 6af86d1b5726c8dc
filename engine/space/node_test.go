package space

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodesHasRoot(t *testing.T) {
	nodes := NewNodes()
	require.Equal(t, 1, nodes.Len())
	root := nodes.Get(Root)
	assert.Equal(t, Root, root.Parent())
	assert.True(t, root.Local().IsIdentity())
}

func TestAddRequiresExistingParent(t *testing.T) {
	nodes := NewNodes()
	a := nodes.Add(Root, Identity())
	assert.Equal(t, NodeRef(1), a)
	assert.Panics(t, func() { nodes.Add(NodeRef(5), Identity()) })
	assert.Panics(t, func() { nodes.Get(NodeRef(9)) })
}

func TestNodeMoves(t *testing.T) {
	nodes := NewNodes()
	ref := nodes.Add(Root, Space{
		Position:    mgl32.Vec3{1, 0, 0},
		Scale:       2,
		Orientation: AxisAngle(mgl32.Vec3{0, 0, 1}, 90),
	})
	n := nodes.Get(ref)

	n.PostMove(mgl32.Vec3{0, 1, 0})
	assertVec3(t, mgl32.Vec3{1, 1, 0}, n.Position())

	n.PreMove(mgl32.Vec3{0, 0, 3})
	assertVec3(t, mgl32.Vec3{1, 1, 3}, n.Position())
	assert.InDelta(t, 2, n.Scale(), eps)

	n.SetPosition(mgl32.Vec3{})
	n.SetScale(3)
	assert.Equal(t, float32(3), n.Scale())
	assert.Equal(t, mgl32.Vec3{}, n.Position())
}

func TestNodeRotations(t *testing.T) {
	nodes := NewNodes()
	ref := nodes.Add(Root, FromPosition(mgl32.Vec3{1, 0, 0}))
	n := nodes.Get(ref)

	n.PreRotate(mgl32.Vec3{0, 1, 0}, 90)
	// pre-rotation keeps the position and spins the node in place.
	assertVec3(t, mgl32.Vec3{1, 0, 0}, n.Position())
	axis, angle := n.Rotation()
	assertVec3(t, mgl32.Vec3{0, 1, 0}, axis)
	assert.InDelta(t, 90, angle, 1e-3)

	n.PostRotate(mgl32.Vec3{0, 1, 0}, 90)
	// post-rotation orbits the position around the parent origin.
	assertVec3(t, mgl32.Vec3{0, 0, -1}, n.Position())
	_, angle = n.Rotation()
	assert.InDelta(t, 180, angle, 1e-2)

	n.SetRotation(mgl32.Vec3{1, 0, 0}, 30)
	axis, angle = n.Rotation()
	assertVec3(t, mgl32.Vec3{1, 0, 0}, axis)
	assert.InDelta(t, 30, angle, 1e-3)
}
