package camera

import (
	"sync"

	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitController is the implementation of Controller.
type orbitController struct {
	mu *sync.Mutex

	target mgl32.Vec3

	radius    float32
	azimuth   float32 // horizontal angle around Y
	elevation float32 // vertical angle from the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
}

var _ Controller = &orbitController{}

// NewOrbitController creates an orbit controller around the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewOrbitController(options ...ControllerBuilderOption) Controller {
	oc := &orbitController{
		mu: &sync.Mutex{},

		radius:    10,
		elevation: math32.Pi / 6,

		minRadius:    1,
		maxRadius:    1000,
		minElevation: -(math32.Pi/2 - 0.1),
		maxElevation: math32.Pi/2 - 0.1,

		orbitSpeed: 0.03,
		zoomSpeed:  1,
	}
	for _, option := range options {
		option(oc)
	}
	oc.clamp()
	return oc
}

// clamp keeps radius and elevation within bounds. Caller must hold the mutex.
func (oc *orbitController) clamp() {
	oc.radius = max(oc.minRadius, min(oc.maxRadius, oc.radius))
	oc.elevation = max(oc.minElevation, min(oc.maxElevation, oc.elevation))
}

// position computes the eye position. Caller must hold the mutex.
func (oc *orbitController) position() mgl32.Vec3 {
	cosElev, sinElev := math32.Cos(oc.elevation), math32.Sin(oc.elevation)
	cosAzim, sinAzim := math32.Cos(oc.azimuth), math32.Sin(oc.azimuth)
	return oc.target.Add(mgl32.Vec3{
		oc.radius * cosElev * sinAzim,
		oc.radius * sinElev,
		oc.radius * cosElev * cosAzim,
	})
}

func (oc *orbitController) OrbitLeft() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth -= oc.orbitSpeed
}

func (oc *orbitController) OrbitRight() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth += oc.orbitSpeed
}

func (oc *orbitController) OrbitUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation += oc.orbitSpeed
	oc.clamp()
}

func (oc *orbitController) OrbitDown() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation -= oc.orbitSpeed
	oc.clamp()
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius -= delta * oc.zoomSpeed
	oc.clamp()
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) Space() space.Space {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	eye := oc.position()
	return space.Space{
		Position:    eye,
		Scale:       1,
		Orientation: space.LookAt(eye, oc.target, mgl32.Vec3{0, 1, 0}),
	}
}

func (oc *orbitController) Apply(node *space.Node) {
	node.SetLocal(oc.Space())
}
