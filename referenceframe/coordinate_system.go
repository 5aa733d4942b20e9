package referenceframe

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/jointkin/spatialmath"
)

// NoOffset is the zero translation correction. Every composition in this module uses it; the
// offset parameter is there for future frame shifts.
var NoOffset = mgl64.Vec4{}

// CoordinateSystem is a rigid-body pose of frame D expressed in frame R: a 4x4 homogeneous
// transform mapping D coordinates to R coordinates, and its translation column cached as a
// homogeneous Origin. The rotation block is orthonormal for every value built by this package.
type CoordinateSystem[D, R Frame] struct {
	Origin    mgl64.Vec4
	Transform mgl64.Mat4
}

// FromTransform wraps a homogeneous transform, caching its translation as the origin.
func FromTransform[D, R Frame](m mgl64.Mat4) CoordinateSystem[D, R] {
	return CoordinateSystem[D, R]{Origin: m.Col(3), Transform: m}
}

// NewCoordinateSystem builds a pose from a rotation and the position of D's origin in R.
func NewCoordinateSystem[D, R Frame](rot mgl64.Mat3, origin r3.Vector) CoordinateSystem[D, R] {
	return FromTransform[D, R](spatialmath.Homogeneous(rot, origin))
}

// Identity returns the pose with no rotation or translation.
func Identity[D, R Frame]() CoordinateSystem[D, R] {
	return FromTransform[D, R](mgl64.Ident4())
}

// Translation returns the position of D's origin in R.
func (cs CoordinateSystem[D, R]) Translation() r3.Vector {
	return spatialmath.Vec3ToR3(cs.Origin.Vec3())
}

// RotationMatrix returns the rotation block of the transform.
func (cs CoordinateSystem[D, R]) RotationMatrix() mgl64.Mat3 {
	return spatialmath.RotationBlock(cs.Transform)
}

// UnitVectors returns D's x, y and z axes expressed in R.
func (cs CoordinateSystem[D, R]) UnitVectors() (x, y, z r3.Vector) {
	return spatialmath.Vec3ToR3(cs.Transform.Col(0).Vec3()),
		spatialmath.Vec3ToR3(cs.Transform.Col(1).Vec3()),
		spatialmath.Vec3ToR3(cs.Transform.Col(2).Vec3())
}

// AlmostEqual returns if the other pose is element-wise within tol of this one.
func (cs CoordinateSystem[D, R]) AlmostEqual(other CoordinateSystem[D, R], tol float64) bool {
	return spatialmath.Mat4AlmostEqual(cs.Transform, other.Transform, tol) &&
		spatialmath.Vec4AlmostEqual(cs.Origin, other.Origin, tol)
}

// String prints the pose as "D in R" followed by its translation and Euler angles in degrees.
func (cs CoordinateSystem[D, R]) String() string {
	t := cs.Translation()
	ea := spatialmath.MatToEuler(cs.RotationMatrix()).Degrees()
	return fmt.Sprintf("%s in %s: X:%.3f, Y:%.3f, Z:%.3f, Roll:%.2f, Pitch:%.2f, Yaw:%.2f",
		FrameName[D](), FrameName[R](), t.X, t.Y, t.Z, ea.X, ea.Y, ea.Z)
}
