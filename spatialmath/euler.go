// Package spatialmath defines the vector, rotation and homogeneous transform operations
// the reference frame engine is built on.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/jointkin/utils"
)

// Below this, cos(pitch) is treated as zero and the decomposition is in gimbal lock.
const gimbalEpsilon = 1e-6

// EulerAngles are Tait-Bryan angles in radians. The rotation they describe is
// Rz(Yaw) * Ry(Pitch) * Rx(Roll), i.e. roll about x, pitch about y, yaw about z.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles returns angles describing no rotation.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{}
}

// EulerAnglesFromDegrees builds angles from an (x, y, z) triple in degrees.
func EulerAnglesFromDegrees(deg r3.Vector) *EulerAngles {
	return &EulerAngles{Roll: utils.DegToRad(deg.X), Pitch: utils.DegToRad(deg.Y), Yaw: utils.DegToRad(deg.Z)}
}

// RotationMatrix returns the 3x3 rotation described by the angles.
func (ea *EulerAngles) RotationMatrix() mgl64.Mat3 {
	return mgl64.Rotate3DZ(ea.Yaw).Mul3(mgl64.Rotate3DY(ea.Pitch)).Mul3(mgl64.Rotate3DX(ea.Roll))
}

// Radians returns the angles as an (x, y, z) = (roll, pitch, yaw) vector.
func (ea *EulerAngles) Radians() r3.Vector {
	return r3.Vector{X: ea.Roll, Y: ea.Pitch, Z: ea.Yaw}
}

// Degrees returns the angles as an (x, y, z) = (roll, pitch, yaw) vector in degrees.
func (ea *EulerAngles) Degrees() r3.Vector {
	return r3.Vector{X: utils.RadToDeg(ea.Roll), Y: utils.RadToDeg(ea.Pitch), Z: utils.RadToDeg(ea.Yaw)}
}

// MatToEuler decomposes a rotation matrix into Euler angles.
// Euler angles are terrible, don't use them for anything but reporting.
func MatToEuler(mat mgl64.Mat3) *EulerAngles {
	sy := math.Hypot(mat.At(0, 0), mat.At(1, 0))
	if sy < gimbalEpsilon {
		return &EulerAngles{
			Roll:  math.Atan2(-mat.At(1, 2), mat.At(1, 1)),
			Pitch: math.Atan2(-mat.At(2, 0), sy),
			Yaw:   0,
		}
	}
	return &EulerAngles{
		Roll:  math.Atan2(mat.At(2, 1), mat.At(2, 2)),
		Pitch: math.Atan2(-mat.At(2, 0), sy),
		Yaw:   math.Atan2(mat.At(1, 0), mat.At(0, 0)),
	}
}
