package model

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuboidWithNormals(t *testing.T) {
	g := Cuboid(Streams(StreamNormal), [3]float32{1, 2, 3})
	require.Len(t, g.Positions, 24)
	require.Len(t, g.Normals, 24)
	require.Len(t, g.Indices, 36)
	assert.InDelta(t, math32.Sqrt(14), g.Radius, 1e-5)
	assert.Equal(t, Streams(StreamPosition, StreamNormal), g.Streams())

	// every vertex lies on the face its normal points out of.
	half := [3]float32{1, 2, 3}
	for i, p := range g.Positions {
		n := g.Normals[i]
		for axis := range 3 {
			if n[axis] != 0 {
				assert.Equal(t, n[axis]*half[axis], p[axis], "vertex %d", i)
			}
		}
	}
	assert.Equal(t, []uint16{4, 5, 6, 6, 7, 4}, g.Indices[6:12])
}

func TestCuboidCornersOnly(t *testing.T) {
	g := Cuboid(0, [3]float32{1, 1, 1})
	require.Len(t, g.Positions, 8)
	assert.Nil(t, g.Normals)
	require.Len(t, g.Indices, 36)
	for _, ix := range g.Indices {
		assert.Less(t, ix, uint16(8))
	}
	assert.Equal(t, Streams(StreamPosition), g.Streams())
}

func TestSphereIcosahedron(t *testing.T) {
	g := Sphere(Streams(StreamNormal), 2, 1)
	assert.Len(t, g.Positions, 12)
	assert.Len(t, g.Indices, 60)
	for _, p := range g.Positions {
		assert.InDelta(t, 2, length(p), 1e-5)
	}
}

func TestSphereRefinementSharesMidpoints(t *testing.T) {
	g := Sphere(Streams(StreamNormal), 1, 3)
	// V = 10 * 4^(detail-1) + 2, F = 20 * 4^(detail-1)
	assert.Len(t, g.Positions, 162)
	assert.Len(t, g.Indices, 320*3)
	for i, n := range g.Normals {
		assert.InDelta(t, 1, length(n), 1e-5)
		assert.Equal(t, g.Positions[i], n)
	}
}

func TestSphereWithoutNormals(t *testing.T) {
	g := Sphere(0, 1, 2)
	assert.Nil(t, g.Normals)
	assert.Len(t, g.Positions, 42)
	assert.Panics(t, func() { Sphere(0, 1, MaxSphereDetail+1) })
}

func TestPlane(t *testing.T) {
	g := Plane(2)
	assert.Equal(t, []uint16{0, 2, 1, 0, 3, 2}, g.Indices)
	assert.InDelta(t, math32.Sqrt(2), g.Radius, 1e-6)
	for _, n := range g.Normals {
		assert.Equal(t, [3]float32{0, 1, 0}, n)
	}
	assert.Equal(t, Streams(StreamPosition, StreamNormal, StreamTexCoord), g.Streams())
}
