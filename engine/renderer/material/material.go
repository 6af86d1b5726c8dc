package material

import "github.com/Carmen-Shannon/baryon-go/common"

// Material holds the physically based surface parameters of an entity.
// It is attached to entities as a component and consumed by the Real pass;
// the base color comes from the entity's Color component.
type Material struct {
	// EmissiveColor is the light emitted by the surface, independent of scene lights.
	EmissiveColor common.Color
	// Metallic is 0 for a dielectric surface and 1 for a fully metallic one.
	Metallic float32
	// Roughness is 0 for a perfectly smooth surface and 1 for a fully rough one.
	Roughness float32
	// NormalScale scales the normal perturbation.
	NormalScale float32
	// OcclusionStrength scales the ambient occlusion term.
	OcclusionStrength float32
}

// DefaultMaterial returns a non-emissive, fully metallic, smooth material.
//
// Returns:
//   - Material: the default material
func DefaultMaterial() Material {
	return Material{
		EmissiveColor:     common.ColorBlackTransparent,
		Metallic:          1,
		Roughness:         0,
		NormalScale:       1,
		OcclusionStrength: 1,
	}
}

// NewMaterial creates a Material starting from DefaultMaterial and applying the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: the configured material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := DefaultMaterial()
	for _, opt := range options {
		opt(&m)
	}
	return m
}

// Params packs the material with the given base color into its GPU layout.
//
// Parameters:
//   - base: the entity color used as the base color factor
//
// Returns:
//   - GPUMaterialParams: the packed parameters
func (m Material) Params(base common.Color) GPUMaterialParams {
	return GPUMaterialParams{
		BaseColor:         base.Vec4(),
		Emissive:          m.EmissiveColor.Vec4(),
		MetallicRoughness: [2]float32{m.Metallic, m.Roughness},
		NormalScale:       m.NormalScale,
		OcclusionStrength: m.OcclusionStrength,
	}
}
