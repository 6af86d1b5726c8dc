package light

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// PerEntity is the number of light slots each entity draw carries.
const PerEntity = 4

// IntensityThreshold is the score a light must exceed to be selected for an entity.
const IntensityThreshold float32 = 0.1

// Candidate is a light in world space, as seen by the per-entity selection.
type Candidate struct {
	Position  mgl32.Vec3
	Intensity float32
	Kind      Kind
}

// Score estimates how strongly a light affects a bounding sphere.
// Point lights inside the sphere score their intensity. Outside it the intensity is divided by the
// distance to the sphere surface, clamped to at least 1. Directional lights always score their intensity.
//
// Parameters:
//   - c: the light
//   - center: the bounding sphere center
//   - radius: the bounding sphere radius
//
// Returns:
//   - float32: the light score
func Score(c Candidate, center mgl32.Vec3, radius float32) float32 {
	if c.Kind != KindPoint {
		return c.Intensity
	}
	distance := center.Sub(c.Position).Len()
	if distance <= radius {
		return c.Intensity
	}
	bd := max(distance-radius, 1)
	return c.Intensity / bd
}

type scored struct {
	score float32
	index uint32
}

// Selector picks the strongest lights for a bounding sphere.
// A Selector reuses its scratch space and is not safe for concurrent use.
type Selector struct {
	scratch []scored
}

// Select returns the indices of the PerEntity highest scoring candidates whose score exceeds
// IntensityThreshold, strongest first. Ties keep candidate order. Unused slots are 0.
//
// Parameters:
//   - candidates: the lights to rank, indexed as in the light storage buffer
//   - center: the bounding sphere center
//   - radius: the bounding sphere radius
//
// Returns:
//   - [PerEntity]uint32: the selected light indices
//   - int: how many slots are used
func (s *Selector) Select(candidates []Candidate, center mgl32.Vec3, radius float32) ([PerEntity]uint32, int) {
	s.scratch = s.scratch[:0]
	for i, c := range candidates {
		if score := Score(c, center, radius); score > IntensityThreshold {
			s.scratch = append(s.scratch, scored{score: score, index: uint32(i)})
		}
	}
	slices.SortStableFunc(s.scratch, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	var out [PerEntity]uint32
	n := min(len(s.scratch), PerEntity)
	for i := range n {
		out[i] = s.scratch[i].index
	}
	return out, n
}
