package referenceframe

import (
	"github.com/golang/geo/r3"

	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/spatialmath"
)

// Rotation returns the side-corrected Euler angles of the pose in degrees, as
// (x, y, z) = (roll, pitch, yaw) of spatialmath.MatToEuler.
//
// Landmark axes are mirrored between limbs, so the signs are fixed per side:
// right is (-x, y, z) and left is (-x, -y, -z).
func (cs CoordinateSystem[D, R]) Rotation(side anatomy.Side) r3.Vector {
	ang := spatialmath.MatToEuler(cs.RotationMatrix()).Degrees()
	if side == anatomy.Left {
		return r3.Vector{X: -ang.X, Y: -ang.Y, Z: -ang.Z}
	}
	return r3.Vector{X: -ang.X, Y: ang.Y, Z: ang.Z}
}

// RelativeRotation returns the side-corrected angles of distal expressed in proximal, both
// known in the same frame. For the tibia in the femur the x angle is knee flexion.
func RelativeRotation[A, B, R Frame](distal CoordinateSystem[A, R], proximal CoordinateSystem[B, R], side anatomy.Side) r3.Vector {
	return Relative(distal, proximal).Rotation(side)
}
