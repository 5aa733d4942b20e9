// Package pipeline turns a subject folder of digitized landmarks and tracker recordings into
// per-sample knee kinematics.
package pipeline

import (
	"context"
	"sync"

	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/ingest"
	"go.viam.com/jointkin/logging"
	rf "go.viam.com/jointkin/referenceframe"
	"go.viam.com/jointkin/utils"
)

// Statics holds the poses computed once per subject: each bone in the global frame at
// digitization, and each bone in the frame of its tracker. A nil pose could not be built
// from the digitization files.
type Statics struct {
	Side anatomy.Side

	Tibia       *rf.CoordinateSystem[rf.Tibia, rf.Global]
	Femur       *rf.CoordinateSystem[rf.Femur, rf.Global]
	TibiaInPin1 *rf.CoordinateSystem[rf.Tibia, rf.Pin1]
	FemurInPin2 *rf.CoordinateSystem[rf.Femur, rf.Pin2]
}

// staticPoses builds a bone's global pose from its landmarks and re-expresses it in the frame
// of its tracker, using the inverse of the tracker's pose recorded during digitization.
func staticPoses[B, T rf.Frame](lms []*anatomy.Landmark) (
	*rf.CoordinateSystem[B, rf.Global],
	*rf.CoordinateSystem[B, T],
	error,
) {
	bone, err := rf.FromLandmarks[B](lms)
	if err != nil {
		return nil, nil, err
	}
	tracker, err := rf.FromTrackerSeries[T](lms[0].Tracker)
	if err != nil {
		return &bone, nil, err
	}
	globalInTracker, err := rf.InverseAll(tracker)
	if err != nil {
		return &bone, nil, err
	}
	inTracker, err := rf.ChangeFrame(bone, globalInTracker, rf.NoOffset)
	if err != nil {
		return &bone, nil, err
	}
	return &bone, &inTracker, nil
}

// ComputeStatics builds the static poses of the tibia and femur concurrently. Missing
// digitization data is logged and leaves the affected poses nil; only other failures are
// returned.
func ComputeStatics(ctx context.Context, lms ingest.Landmarks, side anatomy.Side, logger logging.Logger) (*Statics, error) {
	statics := &Statics{Side: side}
	var mu sync.Mutex
	missing := func(bone anatomy.Bone, err error) error {
		if !anatomy.IsMissingData(err) {
			return err
		}
		logger.Warnw("cannot build static pose", "bone", bone.String(), "error", err)
		return nil
	}

	_, err := utils.RunInParallel(ctx, []utils.SimpleFunc{
		func(ctx context.Context) error {
			bone, inTracker, err := staticPoses[rf.Tibia, rf.Pin1](lms[anatomy.Tibia])
			mu.Lock()
			statics.Tibia, statics.TibiaInPin1 = bone, inTracker
			mu.Unlock()
			return missing(anatomy.Tibia, err)
		},
		func(ctx context.Context) error {
			bone, inTracker, err := staticPoses[rf.Femur, rf.Pin2](lms[anatomy.Femur])
			mu.Lock()
			statics.Femur, statics.FemurInPin2 = bone, inTracker
			mu.Unlock()
			return missing(anatomy.Femur, err)
		},
	})
	if err != nil {
		return nil, err
	}
	return statics, nil
}
