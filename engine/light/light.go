package light

import (
	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
)

// Kind identifies the kind of light source.
type Kind uint8

const (
	// KindDirectional represents a light with no position, only the direction of its node's -Z axis.
	// Used for large distant sources like the sun. Affects every entity with no distance attenuation.
	KindDirectional Kind = iota

	// KindPoint represents a light that emits in all directions from its node's position.
	// Its influence on an entity falls off with the distance to the entity's bounds.
	KindPoint
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDirectional:
		return "Directional"
	case KindPoint:
		return "Point"
	default:
		return "Unknown"
	}
}

// Light is a light source placed in the scene graph.
// Position and direction come from the baked transform of Node.
type Light struct {
	// Node is the scene node the light is attached to.
	Node space.NodeRef
	// Color is the light color. The alpha channel is ignored.
	Color common.Color
	// Intensity is the scalar multiplier applied to Color.
	Intensity float32
	// Kind is the light type.
	Kind Kind
}

// NewLight creates a Light of the given kind with white color and unit intensity,
// then applies the provided options.
//
// Parameters:
//   - kind: the light type
//   - options: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(kind Kind, options ...LightBuilderOption) Light {
	l := Light{
		Color:     common.ColorWhite,
		Intensity: 1,
		Kind:      kind,
	}
	for _, opt := range options {
		opt(&l)
	}
	return l
}

// GPU packs the light with its baked node transform into the GPU layout.
// The w component of the position is 1 for directional lights and 0 for point lights.
//
// Parameters:
//   - s: the baked transform of the light's node
//
// Returns:
//   - GPULight: the packed light
func (l Light) GPU(s space.RawSpace) GPULight {
	pos := s.PosScale
	switch l.Kind {
	case KindDirectional:
		pos[3] = 1
	default:
		pos[3] = 0
	}
	ci := l.Color.Vec4()
	ci[3] = l.Intensity
	return GPULight{
		Position:       pos,
		Rotation:       s.Rot,
		ColorIntensity: ci,
	}
}
