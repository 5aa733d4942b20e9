package referenceframe

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/spatialmath"
)

const tol = 1e-9

func randomPose[D, R Frame](rSeed *rand.Rand) CoordinateSystem[D, R] {
	q := quat.Number{
		Real: rSeed.Float64()*2 - 1,
		Imag: rSeed.Float64()*2 - 1,
		Jmag: rSeed.Float64()*2 - 1,
		Kmag: rSeed.Float64()*2 - 1,
	}
	rot, _ := spatialmath.QuatToRotationMatrix(q)
	t := r3.Vector{X: rSeed.Float64()*200 - 100, Y: rSeed.Float64()*200 - 100, Z: rSeed.Float64()*200 - 100}
	return NewCoordinateSystem[D, R](rot, t)
}

func TestFrameNames(t *testing.T) {
	test.That(t, FrameName[Global](), test.ShouldEqual, "global")
	test.That(t, FrameName[Tibia](), test.ShouldEqual, "tibia")
	test.That(t, FrameName[Femur](), test.ShouldEqual, "femur")
	test.That(t, FrameName[Patella](), test.ShouldEqual, "patella")
	test.That(t, FrameName[Pin1](), test.ShouldEqual, "pin1")
	test.That(t, FrameName[Pin2](), test.ShouldEqual, "pin2")
	test.That(t, FrameName[PatellaTracker](), test.ShouldEqual, "patella_tracker")
}

func TestFromTransform(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3)
	cs := FromTransform[Pin1, Global](m)
	test.That(t, cs.Origin, test.ShouldResemble, mgl64.Vec4{1, 2, 3, 1})
	test.That(t, cs.Translation(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})

	x, y, z := Identity[Pin1, Global]().UnitVectors()
	test.That(t, x, test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, y, test.ShouldResemble, r3.Vector{Y: 1})
	test.That(t, z, test.ShouldResemble, r3.Vector{Z: 1})
}

func TestInverseRoundTrip(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		cs := randomPose[Tibia, Global](rSeed)
		back := cs.Inverse().Inverse()
		test.That(t, back.AlmostEqual(cs, tol), test.ShouldBeTrue)
	}
}

func TestInverseUndoesApply(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(2))
	cs := randomPose[Tibia, Global](rSeed)
	identity := Apply(cs, cs.Inverse(), NoOffset)
	test.That(t, identity.AlmostEqual(Identity[Tibia, Tibia](), tol), test.ShouldBeTrue)
}

func TestCompositionInverse(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		boneInTracker := randomPose[Tibia, Pin1](rSeed)
		trackerInGlobal := randomPose[Pin1, Global](rSeed)

		composed := Apply(boneInTracker, trackerInGlobal, NoOffset)
		lhs := composed.Inverse()
		rhs := Apply(trackerInGlobal.Inverse(), boneInTracker.Inverse(), NoOffset)
		test.That(t, lhs.AlmostEqual(rhs, tol), test.ShouldBeTrue)
	}
}

func TestApplyOffset(t *testing.T) {
	cs := NewCoordinateSystem[Tibia, Pin1](mgl64.Ident3(), r3.Vector{X: 1, Y: 1, Z: 1})
	by := NewCoordinateSystem[Pin1, Global](mgl64.Rotate3DZ(math.Pi/2), r3.Vector{Z: 10})

	moved := Apply(cs, by, NoOffset)
	test.That(t, moved.Translation().X, test.ShouldAlmostEqual, -1.)
	test.That(t, moved.Translation().Y, test.ShouldAlmostEqual, 1.)
	test.That(t, moved.Translation().Z, test.ShouldAlmostEqual, 11.)
	test.That(t, spatialmath.Vec4AlmostEqual(moved.Origin, moved.Transform.Col(3), tol), test.ShouldBeTrue)

	shifted := Apply(cs, by, mgl64.Vec4{1, 1, 1, 0})
	test.That(t, shifted.Translation().X, test.ShouldAlmostEqual, 0.)
	test.That(t, shifted.Translation().Y, test.ShouldAlmostEqual, 0.)
	test.That(t, shifted.Translation().Z, test.ShouldAlmostEqual, 10.)
	test.That(t, shifted.Transform, test.ShouldResemble, moved.Transform)
}

func TestChangeFrame(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(4))
	bone := randomPose[Tibia, Global](rSeed)
	tracker := randomPose[Pin1, Global](rSeed)

	trackerInv, err := InverseAll([]CoordinateSystem[Pin1, Global]{tracker, randomPose[Pin1, Global](rSeed)})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, trackerInv, test.ShouldHaveLength, 2)

	boneInTracker, err := ChangeFrame(bone, trackerInv, NoOffset)
	test.That(t, err, test.ShouldBeNil)

	// putting the static bone-in-tracker back through the same tracker pose recovers the bone
	back, err := Transform(&boneInTracker, tracker, NoOffset)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.AlmostEqual(bone, tol), test.ShouldBeTrue)

	_, err = ChangeFrame(bone, []CoordinateSystem[Global, Pin1]{}, NoOffset)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
	_, err = ChangeFrame[Tibia, Global, Pin1](bone, nil, NoOffset)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)

	_, err = InverseAll[Pin1, Global](nil)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)

	_, err = Transform[Tibia, Pin1, Global](nil, tracker, NoOffset)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
}

func TestInverseSingularPanics(t *testing.T) {
	cs := FromTransform[Tibia, Global](mgl64.Mat4{})
	test.That(t, func() { cs.Inverse() }, test.ShouldPanic)
}

func TestRotationSideCorrection(t *testing.T) {
	rot := spatialmath.EulerAnglesFromDegrees(r3.Vector{X: 10, Y: 20, Z: 30}).RotationMatrix()
	cs := NewCoordinateSystem[Tibia, Global](rot, r3.Vector{})

	right := cs.Rotation(anatomy.Right)
	test.That(t, right.X, test.ShouldAlmostEqual, -10., tol)
	test.That(t, right.Y, test.ShouldAlmostEqual, 20., tol)
	test.That(t, right.Z, test.ShouldAlmostEqual, 30., tol)

	left := cs.Rotation(anatomy.Left)
	test.That(t, left.X, test.ShouldAlmostEqual, -10., tol)
	test.That(t, left.Y, test.ShouldAlmostEqual, -20., tol)
	test.That(t, left.Z, test.ShouldAlmostEqual, -30., tol)
}

func TestRelative(t *testing.T) {
	femur := NewCoordinateSystem[Femur, Global](mgl64.Rotate3DZ(math.Pi/4), r3.Vector{X: 5})
	flexion := spatialmath.EulerAnglesFromDegrees(r3.Vector{X: 40}).RotationMatrix()
	tibia := Apply(NewCoordinateSystem[Tibia, Femur](flexion, r3.Vector{Z: -400}), femur, NoOffset)

	rel := Relative(tibia, femur)
	test.That(t, rel.Translation().Z, test.ShouldAlmostEqual, -400., tol)
	angles := rel.Rotation(anatomy.Right)
	test.That(t, angles.X, test.ShouldAlmostEqual, -40., tol)
	test.That(t, angles.Y, test.ShouldAlmostEqual, 0., tol)
	test.That(t, angles.Z, test.ShouldAlmostEqual, 0., tol)
}

func TestFloatingAxis(t *testing.T) {
	femur := Identity[Femur, Global]()
	tibia := NewCoordinateSystem[Tibia, Global](mgl64.Rotate3DZ(math.Pi/2), r3.Vector{})
	// femur z = (0,0,1), tibia x = (0,1,0)
	axis := FloatingAxis(femur, tibia)
	test.That(t, axis.X, test.ShouldAlmostEqual, -1.)
	test.That(t, axis.Y, test.ShouldAlmostEqual, 0.)
	test.That(t, axis.Z, test.ShouldAlmostEqual, 0.)
}

func TestString(t *testing.T) {
	cs := NewCoordinateSystem[Tibia, Pin1](mgl64.Ident3(), r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, cs.String(), test.ShouldContainSubstring, "tibia in pin1")
	test.That(t, cs.String(), test.ShouldContainSubstring, "X:1.000, Y:2.000, Z:3.000")
}

func TestRelativeRotation(t *testing.T) {
	femur := NewCoordinateSystem[Femur, Global](mgl64.Rotate3DY(0.3), r3.Vector{Y: 2})
	flexion := spatialmath.EulerAnglesFromDegrees(r3.Vector{X: 25, Y: 5, Z: -3}).RotationMatrix()
	tibia := Apply(NewCoordinateSystem[Tibia, Femur](flexion, r3.Vector{}), femur, NoOffset)

	for _, side := range []anatomy.Side{anatomy.Right, anatomy.Left} {
		got := RelativeRotation(tibia, femur, side)
		want := Relative(tibia, femur).Rotation(side)
		vecAlmostEqual(t, got, want)
	}
	vecAlmostEqual(t, RelativeRotation(tibia, femur, anatomy.Left), r3.Vector{X: -25, Y: -5, Z: 3})
}
