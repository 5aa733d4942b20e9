package referenceframe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/spatialmath"
)

// FromLandmarks builds the anatomical frame of a bone from its digitized landmarks.
//
// The origin is the midpoint of the medial and lateral probe means. The x axis runs medial to
// lateral on a right limb and lateral to medial on a left one, so the axes mean the same thing
// on both sides. A temporary longitudinal vector is taken from the distal landmark to the origin
// for a tibia, and as the proximal mean for a femur; y is the normalized longitudinal vector
// crossed with x, and z is x crossed with y.
//
// Side and bone are read from the first landmark. Any absent landmark or probe is missing data.
// A bone without a defined convention, such as the patella, panics, as does a bone that is not
// the frame D.
func FromLandmarks[D Frame](landmarks []*anatomy.Landmark) (CoordinateSystem[D, Global], error) {
	if len(landmarks) > 0 && landmarks[0] != nil {
		if name := FrameName[D](); name != landmarks[0].Bone.String() {
			panic(NewFrameMismatchError(name, landmarks[0].Bone))
		}
	}
	rot, origin, err := bodyFrame(landmarks)
	if err != nil {
		return CoordinateSystem[D, Global]{}, err
	}
	return NewCoordinateSystem[D, Global](rot, origin), nil
}

func bodyFrame(landmarks []*anatomy.Landmark) (mgl64.Mat3, r3.Vector, error) {
	if len(landmarks) == 0 || landmarks[0] == nil {
		return mgl64.Mat3{}, r3.Vector{}, anatomy.NewMissingDataError("no landmarks to build a bone frame from")
	}
	first := landmarks[0]
	locations := anatomy.NewBoneLocations(landmarks)

	med, err := locations.Mean(anatomy.Medial)
	if err != nil {
		return mgl64.Mat3{}, r3.Vector{}, err
	}
	lat, err := locations.Mean(anatomy.Lateral)
	if err != nil {
		return mgl64.Mat3{}, r3.Vector{}, err
	}

	origin := med.Add(lat).Mul(0.5)
	var i r3.Vector
	switch first.Side {
	case anatomy.Left:
		i = med.Sub(lat).Normalize()
	default:
		i = lat.Sub(med).Normalize()
	}

	var tempk r3.Vector
	switch first.Bone {
	case anatomy.Tibia:
		distal, err := locations.Mean(anatomy.Distal)
		if err != nil {
			return mgl64.Mat3{}, r3.Vector{}, err
		}
		tempk = origin.Sub(distal)
	case anatomy.Femur:
		proximal, err := locations.Mean(anatomy.Proximal)
		if err != nil {
			return mgl64.Mat3{}, r3.Vector{}, err
		}
		tempk = proximal
	default:
		panic(NewUndefinedConventionError(first.Bone))
	}

	// tempk is not necessarily perpendicular to i, so j is normalized to keep the rotation
	// orthonormal.
	j := tempk.Normalize().Cross(i).Normalize()
	k := i.Cross(j).Normalize()

	rot := mgl64.Mat3FromCols(spatialmath.R3ToVec3(i), spatialmath.R3ToVec3(j), spatialmath.R3ToVec3(k))
	return rot, origin, nil
}

// FromTrackerSeries builds one pose of the tracker per recorded sample, from the sample's
// orientation quaternion and position. A nil, empty or ragged recording, or a sample whose
// quaternion has no direction, is missing data.
func FromTrackerSeries[D Frame](coords *anatomy.Coords) ([]CoordinateSystem[D, Global], error) {
	if coords.Len() == 0 {
		return nil, anatomy.NewMissingDataError("no %s recording", FrameName[D]())
	}
	if !coords.Valid() {
		return nil, anatomy.NewMissingDataError("%s recording has columns of different lengths", FrameName[D]())
	}
	series := make([]CoordinateSystem[D, Global], 0, coords.Len())
	for idx := 0; idx < coords.Len(); idx++ {
		rot, ok := spatialmath.QuatToRotationMatrix(coords.Quaternion(idx))
		if !ok {
			return nil, anatomy.NewMissingDataError("%s sample %d has a degenerate quaternion", FrameName[D](), idx)
		}
		series = append(series, NewCoordinateSystem[D, Global](rot, coords.Position(idx)))
	}
	return series, nil
}

// FromTrackerSample builds the pose of the tracker at a single sample.
func FromTrackerSample[D Frame](coords *anatomy.Coords, idx int) (CoordinateSystem[D, Global], error) {
	if idx < 0 || idx >= coords.Len() || !coords.Valid() {
		return CoordinateSystem[D, Global]{}, anatomy.NewMissingDataError("no %s sample %d", FrameName[D](), idx)
	}
	rot, ok := spatialmath.QuatToRotationMatrix(coords.Quaternion(idx))
	if !ok {
		return CoordinateSystem[D, Global]{}, anatomy.NewMissingDataError("%s sample %d has a degenerate quaternion", FrameName[D](), idx)
	}
	return NewCoordinateSystem[D, Global](rot, coords.Position(idx)), nil
}
