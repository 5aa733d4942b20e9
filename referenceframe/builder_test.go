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

func landmark(bone anatomy.Bone, side anatomy.Side, pos anatomy.Position, pts ...r3.Vector) *anatomy.Landmark {
	return &anatomy.Landmark{
		Bone:      bone,
		Positions: []anatomy.Position{pos},
		Side:      side,
		Probe:     &anatomy.Probe{Points: pts},
	}
}

func tibiaLandmarks(side anatomy.Side) []*anatomy.Landmark {
	return []*anatomy.Landmark{
		landmark(anatomy.Tibia, side, anatomy.Medial, r3.Vector{}),
		landmark(anatomy.Tibia, side, anatomy.Lateral, r3.Vector{X: 1}),
		landmark(anatomy.Tibia, side, anatomy.Distal, r3.Vector{Z: -1}),
	}
}

func vecAlmostEqual(t *testing.T, got, want r3.Vector) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, want.X, tol)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, tol)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, tol)
}

func TestFromLandmarksTibia(t *testing.T) {
	t.Run("right", func(t *testing.T) {
		cs, err := FromLandmarks[Tibia](tibiaLandmarks(anatomy.Right))
		test.That(t, err, test.ShouldBeNil)
		vecAlmostEqual(t, cs.Translation(), r3.Vector{X: 0.5})
		x, y, z := cs.UnitVectors()
		vecAlmostEqual(t, x, r3.Vector{X: 1})
		vecAlmostEqual(t, y, r3.Vector{Y: 1})
		vecAlmostEqual(t, z, r3.Vector{Z: 1})
	})

	t.Run("left", func(t *testing.T) {
		cs, err := FromLandmarks[Tibia](tibiaLandmarks(anatomy.Left))
		test.That(t, err, test.ShouldBeNil)
		vecAlmostEqual(t, cs.Translation(), r3.Vector{X: 0.5})
		x, y, z := cs.UnitVectors()
		vecAlmostEqual(t, x, r3.Vector{X: -1})
		vecAlmostEqual(t, y, r3.Vector{Y: -1})
		vecAlmostEqual(t, z, r3.Vector{Z: 1})
	})

	t.Run("probe means", func(t *testing.T) {
		lms := tibiaLandmarks(anatomy.Right)
		lms[1].Probe.Points = []r3.Vector{{X: 0.9, Y: 0.1}, {X: 1.1, Y: -0.1}}
		cs, err := FromLandmarks[Tibia](lms)
		test.That(t, err, test.ShouldBeNil)
		vecAlmostEqual(t, cs.Translation(), r3.Vector{X: 0.5})
	})
}

func TestFromLandmarksFemur(t *testing.T) {
	lms := []*anatomy.Landmark{
		landmark(anatomy.Femur, anatomy.Right, anatomy.Medial, r3.Vector{X: -1}),
		landmark(anatomy.Femur, anatomy.Right, anatomy.Lateral, r3.Vector{X: 1}),
		landmark(anatomy.Femur, anatomy.Right, anatomy.Proximal, r3.Vector{Z: 5}),
	}
	cs, err := FromLandmarks[Femur](lms)
	test.That(t, err, test.ShouldBeNil)
	vecAlmostEqual(t, cs.Translation(), r3.Vector{})
	x, y, z := cs.UnitVectors()
	vecAlmostEqual(t, x, r3.Vector{X: 1})
	vecAlmostEqual(t, y, r3.Vector{Y: 1})
	vecAlmostEqual(t, z, r3.Vector{Z: 1})
}

func TestFromLandmarksOrthonormal(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(5))
	randVec := func() r3.Vector {
		return r3.Vector{X: rSeed.Float64()*100 - 50, Y: rSeed.Float64()*100 - 50, Z: rSeed.Float64()*100 - 50}
	}
	for _, side := range []anatomy.Side{anatomy.Right, anatomy.Left} {
		for i := 0; i < 50; i++ {
			lms := []*anatomy.Landmark{
				landmark(anatomy.Tibia, side, anatomy.Medial, randVec()),
				landmark(anatomy.Tibia, side, anatomy.Lateral, randVec()),
				landmark(anatomy.Tibia, side, anatomy.Distal, randVec()),
			}
			cs, err := FromLandmarks[Tibia](lms)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, spatialmath.IsOrthonormal(cs.RotationMatrix(), 1e-9), test.ShouldBeTrue)
			test.That(t, cs.RotationMatrix().Det(), test.ShouldAlmostEqual, 1., 1e-9)
		}
	}
}

func TestFromLandmarksMissing(t *testing.T) {
	t.Run("no medial", func(t *testing.T) {
		lms := tibiaLandmarks(anatomy.Right)[1:]
		_, err := FromLandmarks[Tibia](lms)
		test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "medial")
	})

	t.Run("no distal", func(t *testing.T) {
		_, err := FromLandmarks[Tibia](tibiaLandmarks(anatomy.Right)[:2])
		test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
	})

	t.Run("no probe", func(t *testing.T) {
		lms := tibiaLandmarks(anatomy.Right)
		lms[1].Probe = nil
		_, err := FromLandmarks[Tibia](lms)
		test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := FromLandmarks[Tibia](nil)
		test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
	})
}

func TestFromLandmarksPatellaPanics(t *testing.T) {
	lms := []*anatomy.Landmark{
		landmark(anatomy.Patella, anatomy.Right, anatomy.Medial, r3.Vector{}),
		landmark(anatomy.Patella, anatomy.Right, anatomy.Lateral, r3.Vector{X: 1}),
		landmark(anatomy.Patella, anatomy.Right, anatomy.Distal, r3.Vector{Z: -1}),
	}
	test.That(t, func() { FromLandmarks[Patella](lms) }, test.ShouldPanic)
}

func TestFromLandmarksWrongBone(t *testing.T) {
	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		FromLandmarks[Femur](tibiaLandmarks(anatomy.Right)) //nolint:errcheck
	}()
	err, ok := recovered.(error)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "femur frame from tibia landmarks")
	test.That(t, func() { FromLandmarks[Pin1](tibiaLandmarks(anatomy.Left)) }, test.ShouldPanic)
}

func TestFromTrackerSeries(t *testing.T) {
	coords := &anatomy.Coords{}
	coords.Append(quat.Number{Real: 1}, r3.Vector{X: 1, Y: 2, Z: 3})
	half := math.Sqrt2 / 2
	coords.Append(quat.Number{Real: half, Kmag: half}, r3.Vector{X: 4})
	// unnormalized quaternions are scaled to unit length
	coords.Append(quat.Number{Real: 2}, r3.Vector{})

	series, err := FromTrackerSeries[Pin1](coords)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, series, test.ShouldHaveLength, 3)

	vecAlmostEqual(t, series[0].Translation(), r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, spatialmath.Mat4AlmostEqual(series[0].Transform, mgl64.Translate3D(1, 2, 3), tol), test.ShouldBeTrue)

	x, _, _ := series[1].UnitVectors()
	vecAlmostEqual(t, x, r3.Vector{Y: 1})
	test.That(t, series[2].AlmostEqual(Identity[Pin1, Global](), tol), test.ShouldBeTrue)

	single, err := FromTrackerSample[Pin1](coords, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, single.AlmostEqual(series[1], tol), test.ShouldBeTrue)
}

func TestFromTrackerSeriesMissing(t *testing.T) {
	_, err := FromTrackerSeries[Pin1](nil)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)

	_, err = FromTrackerSeries[Pin1](&anatomy.Coords{})
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)

	ragged := &anatomy.Coords{}
	ragged.Append(quat.Number{Real: 1}, r3.Vector{})
	ragged.Z = nil
	_, err = FromTrackerSeries[Pin1](ragged)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)

	degenerate := &anatomy.Coords{}
	degenerate.Append(quat.Number{Real: 1}, r3.Vector{})
	degenerate.Append(quat.Number{}, r3.Vector{})
	_, err = FromTrackerSeries[Pin1](degenerate)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)

	// the per-sample builder only rejects the bad sample
	_, err = FromTrackerSample[Pin1](degenerate, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = FromTrackerSample[Pin1](degenerate, 1)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
	_, err = FromTrackerSample[Pin1](degenerate, 2)
	test.That(t, anatomy.IsMissingData(err), test.ShouldBeTrue)
}

// A bone held still relative to its tracker reads the same pose in global however the tracker
// moves afterwards, once the motion is undone.
func TestStaticToDynamicChain(t *testing.T) {
	bone, err := FromLandmarks[Tibia](tibiaLandmarks(anatomy.Right))
	test.That(t, err, test.ShouldBeNil)

	static := &anatomy.Coords{}
	static.Append(quat.Number{Real: 1}, r3.Vector{X: 10, Y: 20, Z: 30})
	staticSeries, err := FromTrackerSeries[Pin1](static)
	test.That(t, err, test.ShouldBeNil)
	inv, err := InverseAll(staticSeries)
	test.That(t, err, test.ShouldBeNil)
	boneInTracker, err := ChangeFrame(bone, inv, NoOffset)
	test.That(t, err, test.ShouldBeNil)

	// the tracker later sits at the calibration pose: the bone reads its digitized pose
	dynamic, err := FromTrackerSample[Pin1](static, 0)
	test.That(t, err, test.ShouldBeNil)
	moved, err := Transform(&boneInTracker, dynamic, NoOffset)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, moved.AlmostEqual(bone, tol), test.ShouldBeTrue)
	rel := Relative(moved, bone)
	vecAlmostEqual(t, rel.Rotation(anatomy.Right), r3.Vector{})
}
