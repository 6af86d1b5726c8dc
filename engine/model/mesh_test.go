package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSet(t *testing.T) {
	s := Streams(StreamPosition, StreamNormal)
	assert.True(t, s.Has(StreamPosition))
	assert.False(t, s.Has(StreamTexCoord))
	assert.True(t, s.Contains(Streams(StreamPosition)))
	assert.False(t, Streams(StreamPosition).Contains(s))
	assert.True(t, s.Contains(0))
	assert.Equal(t, "{Position|Normal}", s.String())
}

func TestMeshLayoutOffsets(t *testing.T) {
	g := Cuboid(Streams(StreamNormal), [3]float32{1, 1, 1})
	layout := NewMeshLayout().Geometry(g)
	data := layout.Bytes()
	mesh := layout.Mesh(nil)

	require.Len(t, mesh.Streams, 2)
	assert.Equal(t, uint32(24), mesh.VertexCount)
	pos, ok := mesh.VertexStream(StreamPosition)
	require.True(t, ok)
	assert.Equal(t, uint64(0), pos.Offset)
	assert.Equal(t, uint64(12), pos.Stride)
	nrm, ok := mesh.VertexStream(StreamNormal)
	require.True(t, ok)
	assert.Equal(t, uint64(24*12), nrm.Offset)
	_, ok = mesh.VertexStream(StreamTexCoord)
	assert.False(t, ok)

	require.NotNil(t, mesh.Index)
	assert.Equal(t, uint64(48*12), mesh.Index.Offset)
	assert.Equal(t, uint32(36), mesh.Index.Count)
	assert.Equal(t, wgpu.IndexFormatUint16, mesh.Index.Format)
	assert.Equal(t, 48*12+72, len(data))
	assert.Zero(t, len(data)%4)

	x := math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, Streams(StreamPosition, StreamNormal), mesh.StreamSet())
	assert.Equal(t, float32(g.Radius), mesh.Radius)
}

func TestMeshLayoutRejectsMismatchedStreams(t *testing.T) {
	layout := NewMeshLayout().Positions([][3]float32{{0, 0, 0}, {1, 0, 0}})
	assert.Panics(t, func() { layout.Normals([][3]float32{{0, 1, 0}}) })
	assert.Panics(t, func() { layout.Positions([][3]float32{{0, 0, 0}, {1, 0, 0}}) })
	layout.Indices([]uint16{0, 1, 0})
	assert.Panics(t, func() { layout.Indices([]uint16{0}) })
}

func TestMarshalIndicesPads(t *testing.T) {
	buf := MarshalIndices([]uint16{1, 2, 3})
	assert.Len(t, buf, 8)
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(buf[4:]))
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(buf[6:]))
	assert.Len(t, MarshalVec2s([][2]float32{{1, 2}}), 8)
}
