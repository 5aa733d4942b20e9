package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis
var (
	th   = math.Pi / 4.
	q45x = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)}
)

func TestEulerRoundTrip(t *testing.T) {
	for _, deg := range []r3.Vector{
		{X: 10, Y: 20, Z: 30},
		{X: -45, Y: 5, Z: 170},
		{X: 0, Y: 0, Z: 0},
		{X: 90, Y: -60, Z: -90},
	} {
		ea := EulerAnglesFromDegrees(deg)
		got := MatToEuler(ea.RotationMatrix()).Degrees()
		test.That(t, got.X, test.ShouldAlmostEqual, deg.X, 1e-9)
		test.That(t, got.Y, test.ShouldAlmostEqual, deg.Y, 1e-9)
		test.That(t, got.Z, test.ShouldAlmostEqual, deg.Z, 1e-9)
	}
}

func TestMatToEulerGimbalLock(t *testing.T) {
	ea := &EulerAngles{Roll: 0.3, Pitch: math.Pi / 2, Yaw: 0}
	got := MatToEuler(ea.RotationMatrix())
	test.That(t, got.Pitch, test.ShouldAlmostEqual, math.Pi/2, 1e-6)
	test.That(t, got.Yaw, test.ShouldEqual, 0.)
	test.That(t, got.Roll, test.ShouldAlmostEqual, 0.3, 1e-6)
}

func TestQuatToRotationMatrix(t *testing.T) {
	rot, ok := QuatToRotationMatrix(q45x)
	test.That(t, ok, test.ShouldBeTrue)
	want := mgl64.Rotate3DX(th)
	for i := range want {
		test.That(t, rot[i], test.ShouldAlmostEqual, want[i])
	}

	// non-unit quaternions are normalized first
	scaled, ok := QuatToRotationMatrix(quat.Scale(3, q45x))
	test.That(t, ok, test.ShouldBeTrue)
	for i := range want {
		test.That(t, scaled[i], test.ShouldAlmostEqual, want[i])
	}

	_, ok = QuatToRotationMatrix(quat.Number{})
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = QuatToRotationMatrix(quat.Number{Real: math.NaN()})
	test.That(t, ok, test.ShouldBeFalse)

	back := RotationMatrixToQuat(rot)
	test.That(t, back.Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, back.Imag, test.ShouldAlmostEqual, q45x.Imag)
}

func TestHomogeneous(t *testing.T) {
	rot := EulerAnglesFromDegrees(r3.Vector{X: 10, Y: 20, Z: 30}).RotationMatrix()
	tr := r3.Vector{X: 1, Y: -2, Z: 3}
	m := Homogeneous(rot, tr)

	test.That(t, TranslationColumn(m), test.ShouldResemble, tr)
	test.That(t, RotationBlock(m), test.ShouldResemble, rot)
	test.That(t, m.Row(3), test.ShouldResemble, mgl64.Vec4{0, 0, 0, 1})
	test.That(t, IsOrthonormal(RotationBlock(m), 1e-9), test.ShouldBeTrue)
	test.That(t, IsSingular(m), test.ShouldBeFalse)

	p := m.Mul4x1(Point4(r3.Vector{}))
	test.That(t, Vec3ToR3(p.Vec3()), test.ShouldResemble, tr)
}

func TestIsOrthonormal(t *testing.T) {
	test.That(t, IsOrthonormal(mgl64.Ident3(), 1e-9), test.ShouldBeTrue)
	stretched := mgl64.Mat3FromCols(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1})
	test.That(t, IsOrthonormal(stretched, 1e-9), test.ShouldBeFalse)
	sheared := mgl64.Mat3FromCols(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}, mgl64.Vec3{0, 0, 1})
	test.That(t, IsOrthonormal(sheared, 1e-9), test.ShouldBeFalse)
}

func TestIsSingular(t *testing.T) {
	test.That(t, IsSingular(mgl64.Mat4{}), test.ShouldBeTrue)
	test.That(t, IsSingular(mgl64.Ident4()), test.ShouldBeFalse)
}

func TestMat4AlmostEqual(t *testing.T) {
	a := mgl64.Translate3D(1, 2, 3)
	b := a
	b[12] += 1e-12
	test.That(t, Mat4AlmostEqual(a, b, 1e-9), test.ShouldBeTrue)
	b[12] += 1
	test.That(t, Mat4AlmostEqual(a, b, 1e-9), test.ShouldBeFalse)
}
