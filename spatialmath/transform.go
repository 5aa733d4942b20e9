package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/jointkin/utils"
)

// A homogeneous transform whose determinant is smaller than this is considered singular.
const singularEpsilon = 1e-12

// R3ToVec3 converts a geo vector to a mathgl vector.
func R3ToVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Vec3ToR3 converts a mathgl vector to a geo vector.
func Vec3ToR3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Point4 returns the homogeneous point (x, y, z, 1).
func Point4(v r3.Vector) mgl64.Vec4 {
	return mgl64.Vec4{v.X, v.Y, v.Z, 1}
}

// Homogeneous builds the 4x4 transform with the given rotation block and translation column.
func Homogeneous(rot mgl64.Mat3, translation r3.Vector) mgl64.Mat4 {
	return mgl64.Mat4FromCols(
		rot.Col(0).Vec4(0),
		rot.Col(1).Vec4(0),
		rot.Col(2).Vec4(0),
		Point4(translation),
	)
}

// RotationBlock returns the upper-left 3x3 of a homogeneous transform.
func RotationBlock(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3()
}

// TranslationColumn returns the translation of a homogeneous transform.
func TranslationColumn(m mgl64.Mat4) r3.Vector {
	return Vec3ToR3(m.Col(3).Vec3())
}

// IsSingular reports whether m cannot be inverted.
func IsSingular(m mgl64.Mat4) bool {
	return utils.Float64AlmostEqual(m.Det(), 0, singularEpsilon)
}

// IsOrthonormal reports whether the columns of rot are unit length and mutually orthogonal
// within tol.
func IsOrthonormal(rot mgl64.Mat3, tol float64) bool {
	cols := [3]mgl64.Vec3{rot.Col(0), rot.Col(1), rot.Col(2)}
	for i, c := range cols {
		if !scalar.EqualWithinAbs(c.Len(), 1, tol) {
			return false
		}
		for _, other := range cols[i+1:] {
			if !scalar.EqualWithinAbs(c.Dot(other), 0, tol) {
				return false
			}
		}
	}
	return true
}

// Mat4AlmostEqual compares two transforms element-wise within tol.
func Mat4AlmostEqual(a, b mgl64.Mat4, tol float64) bool {
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

// Vec4AlmostEqual compares two homogeneous vectors element-wise within tol.
func Vec4AlmostEqual(a, b mgl64.Vec4, tol float64) bool {
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

// QuatToRotationMatrix normalizes q and returns the rotation it describes. The second return
// is false when q has no direction (zero or non-finite norm).
func QuatToRotationMatrix(q quat.Number) (mgl64.Mat3, bool) {
	norm := quat.Abs(q)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return mgl64.Ident3(), false
	}
	u := quat.Scale(1/norm, q)
	return mgl64.Quat{W: u.Real, V: mgl64.Vec3{u.Imag, u.Jmag, u.Kmag}}.Mat4().Mat3(), true
}

// RotationMatrixToQuat returns the unit quaternion of a rotation matrix.
func RotationMatrixToQuat(rot mgl64.Mat3) quat.Number {
	q := mgl64.Mat4ToQuat(rot.Mat4())
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}
