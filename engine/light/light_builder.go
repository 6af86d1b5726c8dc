package light

import (
	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
)

// LightBuilderOption is a function that configures a Light during construction.
type LightBuilderOption func(*Light)

// WithNode is an option builder that attaches the light to a scene node.
//
// Parameters:
//   - node: the node providing the light transform
//
// Returns:
//   - LightBuilderOption: a function that applies the node option to a Light
func WithNode(node space.NodeRef) LightBuilderOption {
	return func(l *Light) {
		l.Node = node
	}
}

// WithColor is an option builder that sets the color of the light.
//
// Parameters:
//   - color: the light color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a Light
func WithColor(color common.Color) LightBuilderOption {
	return func(l *Light) {
		l.Color = color
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a Light
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *Light) {
		l.Intensity = intensity
	}
}
