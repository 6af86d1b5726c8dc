package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// AlignUp rounds value up to the next multiple of alignment.
// Alignment must be a power of two; an alignment of 0 returns value unchanged.
//
// Parameters:
//   - value: the value to align
//   - alignment: the required alignment
//
// Returns:
//   - uint64: value rounded up to a multiple of alignment
func AlignUp(value, alignment uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// TransformPoint applies a column-major 4x4 matrix to a point and performs the perspective divide.
//
// Parameters:
//   - m: the matrix (16 elements)
//   - p: the point to transform
//
// Returns:
//   - [3]float32: the transformed point
func TransformPoint(m [16]float32, p [3]float32) [3]float32 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		x, y, z = x/w, y/w, z/w
	}
	return [3]float32{x, y, z}
}

// OrthographicRH creates a right-handed orthographic projection matrix mapping
// depth [near, far] to clip space [0, 1].
//
// Parameters:
//   - left, right, bottom, top: the view volume extents
//   - near, far: the depth range
//
// Returns:
//   - [16]float32: the column-major projection matrix
func OrthographicRH(left, right, bottom, top, near, far float32) [16]float32 {
	rcpW := 1 / (right - left)
	rcpH := 1 / (top - bottom)
	r := 1 / (near - far)
	return [16]float32{
		2 * rcpW, 0, 0, 0,
		0, 2 * rcpH, 0, 0,
		0, 0, r, 0,
		-(left + right) * rcpW, -(top + bottom) * rcpH, r * near, 1,
	}
}

// PerspectiveRH creates a right-handed perspective projection matrix mapping
// depth [near, far] to clip space [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - [16]float32: the column-major projection matrix
func PerspectiveRH(fovY, aspect, near, far float32) [16]float32 {
	h := 1 / math32.Tan(0.5*fovY)
	w := h / aspect
	r := far / (near - far)
	return [16]float32{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, r, -1,
		0, 0, r * near, 0,
	}
}

// PerspectiveInfiniteRH creates a right-handed perspective projection matrix with
// an infinite far plane. Depth near maps to 0 and infinity approaches 1.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//
// Returns:
//   - [16]float32: the column-major projection matrix
func PerspectiveInfiniteRH(fovY, aspect, near float32) [16]float32 {
	h := 1 / math32.Tan(0.5*fovY)
	w := h / aspect
	return [16]float32{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, -1, -1,
		0, 0, -near, 0,
	}
}

// PerspectiveInfiniteReverseRH creates a right-handed perspective projection matrix
// with an infinite far plane and reversed depth. Depth near maps to 1 and infinity approaches 0.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//
// Returns:
//   - [16]float32: the column-major projection matrix
func PerspectiveInfiniteReverseRH(fovY, aspect, near float32) [16]float32 {
	h := 1 / math32.Tan(0.5*fovY)
	w := h / aspect
	return [16]float32{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, 0, -1,
		0, 0, near, 0,
	}
}
