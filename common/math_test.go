package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(0), AlignUp(0, 256))
	assert.Equal(t, uint64(256), AlignUp(1, 256))
	assert.Equal(t, uint64(256), AlignUp(256, 256))
	assert.Equal(t, uint64(512), AlignUp(257, 256))
	assert.Equal(t, uint64(48), AlignUp(33, 16))
	assert.Equal(t, uint64(7), AlignUp(7, 0))
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestOrthographicRHMapsDepthToUnitRange(t *testing.T) {
	m := OrthographicRH(-2, 2, -1, 1, 0.5, 10)

	near := TransformPoint(m, [3]float32{2, 1, -0.5})
	assert.InDelta(t, 1, near[0], 1e-6)
	assert.InDelta(t, 1, near[1], 1e-6)
	assert.InDelta(t, 0, near[2], 1e-6)

	far := TransformPoint(m, [3]float32{-2, -1, -10})
	assert.InDelta(t, -1, far[0], 1e-6)
	assert.InDelta(t, -1, far[1], 1e-6)
	assert.InDelta(t, 1, far[2], 1e-6)
}

func TestPerspectiveRHMapsDepthToUnitRange(t *testing.T) {
	m := PerspectiveRH(float32(math.Pi/2), 1, 1, 100)

	near := TransformPoint(m, [3]float32{0, 0, -1})
	assert.InDelta(t, 0, near[2], 1e-5)

	far := TransformPoint(m, [3]float32{0, 0, -100})
	assert.InDelta(t, 1, far[2], 1e-5)

	edge := TransformPoint(m, [3]float32{0, 5, -5})
	assert.InDelta(t, 1, edge[1], 1e-5)
}

func TestPerspectiveInfiniteVariants(t *testing.T) {
	fov := float32(math.Pi / 3)

	inf := PerspectiveInfiniteRH(fov, 1.5, 0.1)
	assert.InDelta(t, 0, TransformPoint(inf, [3]float32{0, 0, -0.1})[2], 1e-5)
	assert.Less(t, TransformPoint(inf, [3]float32{0, 0, -1e6})[2], float32(1))

	rev := PerspectiveInfiniteReverseRH(fov, 1.5, 0.1)
	assert.InDelta(t, 1, TransformPoint(rev, [3]float32{0, 0, -0.1})[2], 1e-5)
	assert.InDelta(t, 0, TransformPoint(rev, [3]float32{0, 0, -1e6})[2], 1e-5)
}

func TestStructToBytes(t *testing.T) {
	v := struct {
		A uint32
		B float32
	}{A: 0x04030201, B: 1}
	b := StructToBytes(&v)
	assert.Len(t, b, 8)
	assert.Equal(t, []byte{1, 2, 3, 4}, b[:4])
	assert.Len(t, SliceToBytes([]uint16{1, 2, 3}), 6)
	assert.Nil(t, SliceToBytes([]uint16{}))
}
