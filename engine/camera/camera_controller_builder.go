package camera

import "github.com/go-gl/mathgl/mgl32"

// ControllerBuilderOption is a function that configures an orbit controller during construction.
type ControllerBuilderOption func(*orbitController)

// WithRadius sets the initial orbit radius.
//
// Parameters:
//   - radius: distance from the target
//
// Returns:
//   - ControllerBuilderOption: a function that sets the radius
func WithRadius(radius float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle in radians.
func WithAzimuth(azimuth float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle in radians.
func WithElevation(elevation float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.elevation = elevation
	}
}

// WithTarget sets the point the camera orbits and looks at.
func WithTarget(target mgl32.Vec3) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.target = target
	}
}

// WithRadiusBounds sets the zoom limits.
//
// Parameters:
//   - min: the closest allowed distance
//   - max: the farthest allowed distance
//
// Returns:
//   - ControllerBuilderOption: a function that sets the radius bounds
func WithRadiusBounds(min, max float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithOrbitSpeed sets the angle in radians applied per orbit step.
func WithOrbitSpeed(speed float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the radius change per unit of zoom delta.
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.zoomSpeed = speed
	}
}
