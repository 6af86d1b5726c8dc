package pass

import (
	"unsafe"

	"github.com/Carmen-Shannon/baryon-go/engine/camera"
	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/material"
)

// solidLocals is the per-entity uniform of the solid pass.
// Size: 48 bytes.
type solidLocals struct {
	PosScale [4]float32 // offset  0: world position xyz, uniform scale w
	Rot      [4]float32 // offset 16: world orientation quaternion (x, y, z, w)
	Color    [4]float32 // offset 32: linear color
}

// flatLocals is the per-sprite uniform of the flat pass.
// Size: 64 bytes.
type flatLocals struct {
	PosScale  [4]float32 // offset  0
	Rot       [4]float32 // offset 16
	Bounds    [4]float32 // offset 32: local quad corners (min x, min y, max x, max y)
	TexCoords [4]float32 // offset 48: normalized source rectangle (u0, v0, u1, v1)
}

// phongGlobals is the per-frame uniform of the phong pass.
// Size: 96 bytes.
type phongGlobals struct {
	ViewProj  [16]float32 // offset  0
	CameraPos [4]float32  // offset 64
	Ambient   [4]float32  // offset 80: ambient rgb premultiplied by intensity, w = 0
}

// phongLocals is the per-entity uniform of the phong pass.
// Size: 80 bytes.
type phongLocals struct {
	PosScale   [4]float32              // offset  0
	Rot        [4]float32              // offset 16
	Color      [4]float32              // offset 32: gamma-expanded color
	Lights     [light.PerEntity]uint32 // offset 48: indices into the light buffer
	Glossiness float32                 // offset 64
	LightCount uint32                  // offset 68: number of valid entries in Lights
	Pad        [2]float32              // offset 72
}

// realGlobals is the per-frame uniform of the real pass.
// Size: 96 bytes.
type realGlobals struct {
	ViewProj   [16]float32 // offset  0
	CameraPos  [4]float32  // offset 64
	LightCount [4]uint32   // offset 80: x = number of lights in the light buffer
}

// realLocals is the per-entity uniform of the real pass.
// Size: 80 bytes.
type realLocals struct {
	PosScale [4]float32                 // offset  0
	Rot      [4]float32                 // offset 16
	Material material.GPUMaterialParams // offset 32
}

const (
	solidLocalsSize  = uint64(unsafe.Sizeof(solidLocals{}))
	flatLocalsSize   = uint64(unsafe.Sizeof(flatLocals{}))
	phongLocalsSize  = uint64(unsafe.Sizeof(phongLocals{}))
	realLocalsSize   = uint64(unsafe.Sizeof(realLocals{}))
	phongGlobalsSize = uint64(unsafe.Sizeof(phongGlobals{}))
	realGlobalsSize  = uint64(unsafe.Sizeof(realGlobals{}))
	lightSize        = uint64(unsafe.Sizeof(light.GPULight{}))
	cameraSize       = uint64(unsafe.Sizeof(camera.GPUCameraUniform{}))
)
