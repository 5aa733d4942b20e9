package referenceframe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/spatialmath"
)

// Apply re-expresses cs (D in R) in frame X by left-multiplying with by (R in X):
// the result's transform is by*cs and its origin is by*(origin-offset).
func Apply[D, R, X Frame](cs CoordinateSystem[D, R], by CoordinateSystem[R, X], offset mgl64.Vec4) CoordinateSystem[D, X] {
	return CoordinateSystem[D, X]{
		Origin:    by.Transform.Mul4x1(cs.Origin.Sub(offset)),
		Transform: by.Transform.Mul4(cs.Transform),
	}
}

// ChangeFrame applies the first pose of candidates to cs. It is meant for a true one-to-one
// static mapping, such as the inverse of a tracker's calibration pose; use Transform per sample
// when candidates is a time series. An empty candidate list is missing data.
func ChangeFrame[D, R, X Frame](
	cs CoordinateSystem[D, R],
	candidates []CoordinateSystem[R, X],
	offset mgl64.Vec4,
) (CoordinateSystem[D, X], error) {
	if len(candidates) == 0 {
		return CoordinateSystem[D, X]{}, NewEmptySeriesError(FrameName[R]() + " in " + FrameName[X]())
	}
	return Apply(cs, candidates[0], offset), nil
}

// Transform moves a possibly absent static pose (typically a bone in its tracker) into X using
// the pose of R in X at one captured instant. A nil cs is missing data.
func Transform[D, R, X Frame](cs *CoordinateSystem[D, R], by CoordinateSystem[R, X], offset mgl64.Vec4) (CoordinateSystem[D, X], error) {
	if cs == nil {
		return CoordinateSystem[D, X]{}, anatomy.NewMissingDataError("no %s in %s pose", FrameName[D](), FrameName[R]())
	}
	return Apply(*cs, by, offset), nil
}

// Inverse returns the pose of R in D. A singular transform cannot come from a valid rigid
// body and panics.
func (cs CoordinateSystem[D, R]) Inverse() CoordinateSystem[R, D] {
	if spatialmath.IsSingular(cs.Transform) {
		panic(NewSingularTransformError(FrameName[D]() + " in " + FrameName[R]()))
	}
	return FromTransform[R, D](cs.Transform.Inv())
}

// InverseAll inverts every pose of a series. An empty series is missing data.
func InverseAll[D, R Frame](series []CoordinateSystem[D, R]) ([]CoordinateSystem[R, D], error) {
	if len(series) == 0 {
		return nil, NewEmptySeriesError(FrameName[D]() + " in " + FrameName[R]())
	}
	inverted := make([]CoordinateSystem[R, D], 0, len(series))
	for _, cs := range series {
		inverted = append(inverted, cs.Inverse())
	}
	return inverted, nil
}

// Relative expresses distal in the frame of proximal, both being known in the same frame R.
func Relative[A, B, R Frame](distal CoordinateSystem[A, R], proximal CoordinateSystem[B, R]) CoordinateSystem[A, B] {
	return Apply(distal, proximal.Inverse(), NoOffset)
}

// FloatingAxis returns the joint coordinate system floating axis between two bones known in
// the same frame: the normalized cross product of a's z axis and b's x axis.
func FloatingAxis[A, B, R Frame](a CoordinateSystem[A, R], b CoordinateSystem[B, R]) r3.Vector {
	_, _, az := a.UnitVectors()
	bx, _, _ := b.UnitVectors()
	return az.Cross(bx).Normalize()
}
