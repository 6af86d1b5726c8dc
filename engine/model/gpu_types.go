package model

import (
	"encoding/binary"
	"math"
)

// MarshalVec3s serializes tightly packed [3]float32 elements, 12 bytes each, for GPU upload.
//
// Parameters:
//   - v: the vectors to serialize
//
// Returns:
//   - []byte: the little-endian bytes
func MarshalVec3s(v [][3]float32) []byte {
	buf := make([]byte, 12*len(v))
	for i, e := range v {
		o := i * 12
		binary.LittleEndian.PutUint32(buf[o:o+4], math.Float32bits(e[0]))
		binary.LittleEndian.PutUint32(buf[o+4:o+8], math.Float32bits(e[1]))
		binary.LittleEndian.PutUint32(buf[o+8:o+12], math.Float32bits(e[2]))
	}
	return buf
}

// MarshalVec2s serializes tightly packed [2]float32 elements, 8 bytes each, for GPU upload.
//
// Parameters:
//   - v: the vectors to serialize
//
// Returns:
//   - []byte: the little-endian bytes
func MarshalVec2s(v [][2]float32) []byte {
	buf := make([]byte, 8*len(v))
	for i, e := range v {
		o := i * 8
		binary.LittleEndian.PutUint32(buf[o:o+4], math.Float32bits(e[0]))
		binary.LittleEndian.PutUint32(buf[o+4:o+8], math.Float32bits(e[1]))
	}
	return buf
}

// MarshalIndices serializes 16-bit indices. The result is padded with a zero index to a multiple of 4 bytes,
// which queue writes require.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: the little-endian bytes
func MarshalIndices(indices []uint16) []byte {
	n := len(indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, ix := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], ix)
	}
	return buf
}
