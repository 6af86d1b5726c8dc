package camera

import "github.com/Carmen-Shannon/baryon-go/engine/space"

// Controller moves a camera node around a target point using spherical coordinates
// (radius, azimuth, elevation). Implementations are safe for concurrent use.
type Controller interface {
	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Zoom adjusts the orbit radius. Positive delta moves closer to the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// Space returns the camera transform: positioned on the orbit and looking at the target.
	//
	// Returns:
	//   - space.Space: the camera transform
	Space() space.Space

	// Apply writes the camera transform into a node's local transform.
	//
	// Parameters:
	//   - node: the camera node, which should be parented to the root
	Apply(node *space.Node)
}
