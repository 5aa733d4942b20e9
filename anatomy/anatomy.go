// Package anatomy describes the digitized anatomical landmarks and tracker recordings
// that bone and tracker reference frames are built from.
package anatomy

import (
	"strings"

	"github.com/pkg/errors"
)

// Side is the body side a limb belongs to.
type Side int

// The two body sides. Landmark axis conventions are mirrored between them.
const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// ParseSide accepts r/right or l/left in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "right":
		return Right, nil
	case "l", "left":
		return Left, nil
	default:
		return Right, errors.Errorf("invalid side %q, valid options are l/left or r/right", s)
	}
}

// Bone identifies a digitized bone.
type Bone int

// Bones with landmarks. Only Tibia and Femur have an anatomical axis convention.
const (
	Tibia Bone = iota
	Femur
	Patella
)

var boneNames = map[Bone]string{
	Tibia:   "tibia",
	Femur:   "femur",
	Patella: "patella",
}

func (b Bone) String() string {
	if n, ok := boneNames[b]; ok {
		return n
	}
	return "unknown"
}

// Tracker returns the name of the tracker rigidly attached to the bone.
func (b Bone) Tracker() string {
	switch b {
	case Tibia:
		return "pin1"
	case Femur:
		return "pin2"
	case Patella:
		return "patella"
	default:
		return ""
	}
}

// ParseBone parses a bone name such as "tibia".
func ParseBone(s string) (Bone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for b, n := range boneNames {
		if n == s {
			return b, nil
		}
	}
	return Tibia, errors.Errorf("unknown bone %q", s)
}

// Position is the anatomical role of a digitized point on a bone.
type Position int

// The six mutually exclusive probe roles.
const (
	Medial Position = iota
	Lateral
	Anterior
	Posterior
	Proximal
	Distal
)

var positionNames = map[Position]string{
	Medial:    "medial",
	Lateral:   "lateral",
	Anterior:  "anterior",
	Posterior: "posterior",
	Proximal:  "proximal",
	Distal:    "distal",
}

func (p Position) String() string {
	if n, ok := positionNames[p]; ok {
		return n
	}
	return "unknown"
}

// ParsePosition parses a position name such as "medial".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, n := range positionNames {
		if n == s {
			return p, nil
		}
	}
	return Medial, errors.Errorf("unknown position %q", s)
}
