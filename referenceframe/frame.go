// Package referenceframe defines the api and does the math of translating between reference frames.
// Useful for if you have a bone, a tracker pinned to that bone, and a motion capture system recording
// the tracker, and need the bone's pose in the lab at every captured instant.
//
// Every CoordinateSystem is tagged at compile time with the frame it defines and the frame it is
// expressed in. Composing poses whose frames do not line up is a type error rather than a silently
// wrong answer.
package referenceframe

// Frame is a tag naming a coordinate frame. Implementations are zero-size and carry no data.
type Frame interface {
	Name() string
}

type (
	// Global is the motion capture (lab) frame.
	Global struct{}
	// Tibia is the anatomical frame of the tibia.
	Tibia struct{}
	// Femur is the anatomical frame of the femur.
	Femur struct{}
	// Patella is the anatomical frame of the patella.
	Patella struct{}
	// Pin1 is the tracker pinned to the tibia.
	Pin1 struct{}
	// Pin2 is the tracker pinned to the femur.
	Pin2 struct{}
	// PatellaTracker is the tracker attached to the patella.
	PatellaTracker struct{}
)

// Name returns "global".
func (Global) Name() string { return "global" }

// Name returns "tibia".
func (Tibia) Name() string { return "tibia" }

// Name returns "femur".
func (Femur) Name() string { return "femur" }

// Name returns "patella".
func (Patella) Name() string { return "patella" }

// Name returns "pin1".
func (Pin1) Name() string { return "pin1" }

// Name returns "pin2".
func (Pin2) Name() string { return "pin2" }

// Name returns "patella_tracker".
func (PatellaTracker) Name() string { return "patella_tracker" }

// FrameName returns the name of the frame tag F.
func FrameName[F Frame]() string {
	var f F
	return f.Name()
}
