package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the material half of the Real pass per-draw uniform.
// Size: 48 bytes.
type GPUMaterialParams struct {
	BaseColor         [4]float32 // offset  0: linear base color factor (16 bytes)
	Emissive          [4]float32 // offset 16: emissive color (16 bytes)
	MetallicRoughness [2]float32 // offset 32: metallic, roughness (8 bytes)
	NormalScale       float32    // offset 40
	OcclusionStrength float32    // offset 44
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 48)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Emissive[i]))
	}
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.MetallicRoughness[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.MetallicRoughness[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.NormalScale))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.OcclusionStrength))
	return buf
}
