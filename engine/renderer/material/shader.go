package material

import "fmt"

// ShaderKind selects the lighting model the Phong pass uses for an entity.
type ShaderKind uint8

const (
	// ShaderGouraud evaluates lighting per vertex.
	ShaderGouraud ShaderKind = iota
	// ShaderPhong evaluates lighting per fragment with a specular term.
	ShaderPhong
)

// Shader is the shading-model component read by the Phong pass.
type Shader struct {
	Kind ShaderKind
	// Flat disables normal interpolation for Gouraud shading.
	Flat bool
	// Glossiness is the specular exponent for Phong shading.
	Glossiness uint8
}

// Gouraud returns a per-vertex lighting shader, optionally flat shaded.
func Gouraud(flat bool) Shader {
	return Shader{Kind: ShaderGouraud, Flat: flat}
}

// Phong returns a per-fragment lighting shader with the given specular exponent.
func Phong(glossiness uint8) Shader {
	return Shader{Kind: ShaderPhong, Glossiness: glossiness}
}

// String implements fmt.Stringer.
func (s Shader) String() string {
	switch s.Kind {
	case ShaderGouraud:
		return fmt.Sprintf("Gouraud{flat: %t}", s.Flat)
	case ShaderPhong:
		return fmt.Sprintf("Phong{glossiness: %d}", s.Glossiness)
	default:
		return "Unknown"
	}
}
