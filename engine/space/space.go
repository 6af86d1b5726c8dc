package space

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Space is a rigid transform with uniform scale: a position, a scale factor and a unit orientation.
// Values are immutable; every operation returns a new Space.
type Space struct {
	Position    mgl32.Vec3
	Scale       float32
	Orientation mgl32.Quat
}

// Identity returns the identity transform: origin position, scale 1, identity orientation.
//
// Returns:
//   - Space: the identity transform
func Identity() Space {
	return Space{
		Position:    mgl32.Vec3{},
		Scale:       1,
		Orientation: mgl32.QuatIdent(),
	}
}

// FromPosition returns a transform that only translates.
//
// Parameters:
//   - position: the translation
//
// Returns:
//   - Space: the translation transform
func FromPosition(position mgl32.Vec3) Space {
	s := Identity()
	s.Position = position
	return s
}

// FromAxisAngle returns a transform that only rotates.
//
// Parameters:
//   - axis: the rotation axis (normalized internally)
//   - angleDeg: the rotation angle in degrees
//
// Returns:
//   - Space: the rotation transform
func FromAxisAngle(axis mgl32.Vec3, angleDeg float32) Space {
	s := Identity()
	s.Orientation = AxisAngle(axis, angleDeg)
	return s
}

// AxisAngle builds a unit quaternion rotating angleDeg degrees around axis.
//
// Parameters:
//   - axis: the rotation axis (normalized internally)
//   - angleDeg: the rotation angle in degrees
//
// Returns:
//   - mgl32.Quat: the rotation quaternion
func AxisAngle(axis mgl32.Vec3, angleDeg float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(angleDeg), axis.Normalize())
}

// Combine composes s as the parent and child as the local transform beneath it.
// The result maps child-local coordinates into the parent's space. Not commutative.
//
// Parameters:
//   - child: the transform expressed in s's space
//
// Returns:
//   - Space: the composed transform
func (s Space) Combine(child Space) Space {
	return Space{
		Scale:       s.Scale * child.Scale,
		Orientation: s.Orientation.Mul(child.Orientation),
		Position:    s.Orientation.Rotate(child.Position).Mul(s.Scale).Add(s.Position),
	}
}

// Inverse returns the transform that undoes s, so that s.Combine(s.Inverse()) is the identity.
// The orientation must be normalized.
//
// Returns:
//   - Space: the inverse transform
func (s Space) Inverse() Space {
	scale := 1 / s.Scale
	orientation := s.Orientation.Conjugate()
	return Space{
		Scale:       scale,
		Orientation: orientation,
		Position:    orientation.Rotate(s.Position).Mul(-scale),
	}
}

// ToMatrix returns the column-major matrix applying scale, then rotation, then translation.
//
// Returns:
//   - mgl32.Mat4: the affine transform matrix
func (s Space) ToMatrix() mgl32.Mat4 {
	m := s.Orientation.Mat4()
	for i := 0; i < 12; i++ {
		if i%4 != 3 {
			m[i] *= s.Scale
		}
	}
	m[12], m[13], m[14] = s.Position[0], s.Position[1], s.Position[2]
	return m
}

// AxisAngle decomposes the orientation into a unit axis and an angle in degrees.
// An identity orientation reports the X axis with a zero angle.
//
// Returns:
//   - mgl32.Vec3: the rotation axis
//   - float32: the rotation angle in degrees
func (s Space) AxisAngle() (mgl32.Vec3, float32) {
	q := s.Orientation.Normalize()
	w := math32.Max(-1, math32.Min(1, q.W))
	angle := 2 * math32.Acos(w)
	sinHalf := math32.Sqrt(1 - w*w)
	if sinHalf < 1e-6 {
		return mgl32.Vec3{1, 0, 0}, mgl32.RadToDeg(angle)
	}
	return q.V.Mul(1 / sinHalf), mgl32.RadToDeg(angle)
}

// LookAt returns the orientation that points the local -Z axis from position towards target,
// with up as the vertical reference. The rotation is extracted from the inverse of a right-handed
// view matrix, which stays well defined in configurations where a direct basis construction does not.
//
// Parameters:
//   - position: the eye position
//   - target: the point to look at
//   - up: the up reference direction
//
// Returns:
//   - mgl32.Quat: the resulting orientation
func LookAt(position, target, up mgl32.Vec3) mgl32.Quat {
	view := mgl32.LookAtV(position, target, up)
	return mgl32.Mat4ToQuat(view.Inv()).Normalize()
}

// ApproxEqual reports whether two transforms match within eps component-wise.
// Orientations q and -q describe the same rotation and compare equal.
//
// Parameters:
//   - other: the transform to compare against
//   - eps: the per-component tolerance
//
// Returns:
//   - bool: true if the transforms are equivalent within tolerance
func (s Space) ApproxEqual(other Space, eps float32) bool {
	if math32.Abs(s.Scale-other.Scale) > eps {
		return false
	}
	for i := 0; i < 3; i++ {
		if math32.Abs(s.Position[i]-other.Position[i]) > eps {
			return false
		}
	}
	dot := math32.Abs(s.Orientation.Dot(other.Orientation))
	return 1-dot <= eps
}

// IsIdentity reports whether s is exactly the identity transform.
//
// Returns:
//   - bool: true if position, scale and orientation are all at their identity values
func (s Space) IsIdentity() bool {
	return s == Identity()
}
