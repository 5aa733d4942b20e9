package anatomy

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Coords is a tracker recording: parallel columns of orientation quaternion components
// and position, one entry per captured instant.
type Coords struct {
	Q0 []float64
	QX []float64
	QY []float64
	QZ []float64
	X  []float64
	Y  []float64
	Z  []float64
}

// Append adds one sample to the end of the recording.
func (c *Coords) Append(q quat.Number, p r3.Vector) {
	c.Q0 = append(c.Q0, q.Real)
	c.QX = append(c.QX, q.Imag)
	c.QY = append(c.QY, q.Jmag)
	c.QZ = append(c.QZ, q.Kmag)
	c.X = append(c.X, p.X)
	c.Y = append(c.Y, p.Y)
	c.Z = append(c.Z, p.Z)
}

// Len returns the number of samples. A nil recording has none.
func (c *Coords) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Q0)
}

// Valid reports whether every column has the same length.
func (c *Coords) Valid() bool {
	if c == nil {
		return false
	}
	n := len(c.Q0)
	for _, col := range [][]float64{c.QX, c.QY, c.QZ, c.X, c.Y, c.Z} {
		if len(col) != n {
			return false
		}
	}
	return true
}

// Quaternion returns the raw (not necessarily unit) orientation of sample i.
func (c *Coords) Quaternion(i int) quat.Number {
	return quat.Number{Real: c.Q0[i], Imag: c.QX[i], Jmag: c.QY[i], Kmag: c.QZ[i]}
}

// Position returns the position of sample i.
func (c *Coords) Position(i int) r3.Vector {
	return r3.Vector{X: c.X[i], Y: c.Y[i], Z: c.Z[i]}
}
