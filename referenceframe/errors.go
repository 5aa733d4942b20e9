package referenceframe

import (
	"github.com/pkg/errors"

	"go.viam.com/jointkin/anatomy"
)

// NewUndefinedConventionError is used when a bone has no anatomical axis rule. This is a gap in
// the program, not in the data, and is raised as a panic.
func NewUndefinedConventionError(bone anatomy.Bone) error {
	return errors.Errorf("no anatomical axis convention defined for bone %q", bone)
}

// NewFrameMismatchError is used when landmarks of one bone are asked to build the frame of
// another. It is raised as a panic.
func NewFrameMismatchError(frame string, bone anatomy.Bone) error {
	return errors.Errorf("cannot build the %s frame from %s landmarks", frame, bone)
}

// NewSingularTransformError is used when a pose cannot be inverted. A valid rigid transform is
// always invertible, so this means upstream corruption such as duplicate landmark points.
func NewSingularTransformError(name string) error {
	return errors.Errorf("transform %s is singular and cannot be inverted", name)
}

// NewEmptySeriesError is used when a frame series has no element to change frame with.
func NewEmptySeriesError(name string) error {
	return anatomy.NewMissingDataError("no %s frames available", name)
}
