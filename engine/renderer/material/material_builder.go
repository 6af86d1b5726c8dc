package material

import "github.com/Carmen-Shannon/baryon-go/common"

// MaterialBuilderOption is a function that configures a material during construction.
type MaterialBuilderOption func(*Material)

// WithEmissive is an option builder that sets the emissive color of the material.
//
// Parameters:
//   - color: the emitted color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(color common.Color) MaterialBuilderOption {
	return func(m *Material) {
		m.EmissiveColor = color
	}
}

// WithMetallic is an option builder that sets the metallic factor of the material.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metallic option to a material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Metallic = metallic
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *Material) {
		m.Roughness = roughness
	}
}

// WithNormalScale is an option builder that sets the normal map scale.
func WithNormalScale(scale float32) MaterialBuilderOption {
	return func(m *Material) {
		m.NormalScale = scale
	}
}

// WithOcclusionStrength is an option builder that sets the occlusion strength.
func WithOcclusionStrength(strength float32) MaterialBuilderOption {
	return func(m *Material) {
		m.OcclusionStrength = strength
	}
}
