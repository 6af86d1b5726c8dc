package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// DefaultMaxLights is the default capacity of a pass light storage buffer.
const DefaultMaxLights = 16

// GPULight is the GPU-aligned representation of a single light source.
// Size: 48 bytes.
type GPULight struct {
	Position       [4]float32 // offset  0: xyz position, w = 1 directional / 0 point
	Rotation       [4]float32 // offset 16: node orientation quaternion (x, y, z, w)
	ColorIntensity [4]float32 // offset 32: rgb color, a = intensity
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 48)
	g.marshalInto(buf)
	return buf
}

func (g *GPULight) marshalInto(buf []byte) {
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Rotation[i]))
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(g.ColorIntensity[i]))
	}
}

// MarshalLights serializes up to maxLights lights into one contiguous buffer.
// Lights beyond the capacity are dropped.
//
// Parameters:
//   - lights: the lights to serialize, in scene order
//   - maxLights: the capacity of the destination storage buffer
//
// Returns:
//   - []byte: the serialized lights
//   - int: the number of lights written
func MarshalLights(lights []GPULight, maxLights int) ([]byte, int) {
	count := min(len(lights), maxLights)
	stride := int(unsafe.Sizeof(GPULight{}))
	buf := make([]byte, count*stride)
	for i := range count {
		lights[i].marshalInto(buf[i*stride:])
	}
	return buf, count
}
