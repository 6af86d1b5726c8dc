package space

import "github.com/go-gl/mathgl/mgl32"

// RawSpace is the flattened, GPU-friendly form of a world transform.
// PosScale holds the position in xyz and the uniform scale in w.
// Rot holds the orientation quaternion as x, y, z, w.
type RawSpace struct {
	PosScale [4]float32
	Rot      [4]float32
}

// Raw flattens the transform into its GPU layout.
//
// Returns:
//   - RawSpace: the flattened transform
func (s Space) Raw() RawSpace {
	return RawSpace{
		PosScale: [4]float32{s.Position[0], s.Position[1], s.Position[2], s.Scale},
		Rot:      [4]float32{s.Orientation.V[0], s.Orientation.V[1], s.Orientation.V[2], s.Orientation.W},
	}
}

// ToSpace expands the flattened transform back into a Space.
//
// Returns:
//   - Space: the equivalent transform
func (r RawSpace) ToSpace() Space {
	return Space{
		Position: mgl32.Vec3{r.PosScale[0], r.PosScale[1], r.PosScale[2]},
		Scale:    r.PosScale[3],
		Orientation: mgl32.Quat{
			W: r.Rot[3],
			V: mgl32.Vec3{r.Rot[0], r.Rot[1], r.Rot[2]},
		},
	}
}

// Position returns the translation component.
func (r RawSpace) Position() mgl32.Vec3 {
	return mgl32.Vec3{r.PosScale[0], r.PosScale[1], r.PosScale[2]}
}

// InverseMatrix returns the matrix of the inverse transform. For a camera node this is the view matrix.
//
// Returns:
//   - mgl32.Mat4: the column-major inverse matrix
func (r RawSpace) InverseMatrix() mgl32.Mat4 {
	return r.ToSpace().Inverse().ToMatrix()
}
