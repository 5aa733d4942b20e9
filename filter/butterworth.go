// Package filter smooths output channels with a low order recursive low-pass filter.
package filter

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MisuseError is returned when a filter is constructed with parameters it cannot run with.
type MisuseError struct {
	msg string
}

func (e *MisuseError) Error() string {
	return "filter misuse: " + e.msg
}

// IsMisuse returns if err is, or wraps, a MisuseError.
func IsMisuse(err error) bool {
	var m *MisuseError
	return errors.As(err, &m)
}

func newMisuseError(format string, args ...interface{}) error {
	return errors.WithStack(&MisuseError{msg: errors.Errorf(format, args...).Error()})
}

// Butterworth is a recursive low-pass filter with Butterworth-derived coefficients.
//
// Both histories hold order entries, most recent first. Each call computes
//
//	y[n] = y[n-1] + sum_i c[i] * (x[n-i] - y[n-1-i])
//
// which starts at c[0]*x for a fresh filter and settles on a constant input when the
// recurrence is stable. Parameters giving an unstable recurrence are rejected.
type Butterworth struct {
	mu         sync.Mutex
	order      int
	cutOffFreq float64
	smpFreq    float64
	coeffs     []float64
	xHist      []float64
	yHist      []float64
}

// NewButterworth returns a filter of the given order, cutoff and sampling frequencies in Hz.
// The order must be at least one, both frequencies positive and the cutoff below Nyquist.
// Higher orders also bound the cutoff: at 100 Hz sampling, order 4 runs up to about 14 Hz
// and order 8 up to about 5.5 Hz.
func NewButterworth(order int, cutOffFreq, smpFreq float64) (*Butterworth, error) {
	switch {
	case order < 1:
		return nil, newMisuseError("order must be at least 1, got %d", order)
	case !(smpFreq > 0) || math.IsInf(smpFreq, 0):
		return nil, newMisuseError("sampling frequency must be positive, got %v", smpFreq)
	case !(cutOffFreq > 0) || math.IsInf(cutOffFreq, 0):
		return nil, newMisuseError("cutoff frequency must be positive, got %v", cutOffFreq)
	case cutOffFreq >= smpFreq/2:
		return nil, newMisuseError("cutoff frequency %v must be below the Nyquist frequency %v", cutOffFreq, smpFreq/2)
	}
	coeffs := coefficients(order, cutOffFreq, smpFreq)
	radius, err := spectralRadius(coeffs)
	if err != nil {
		return nil, err
	}
	if radius >= 1 {
		return nil, newMisuseError(
			"order %d with cutoff %v Hz at %v Hz sampling is unstable (spectral radius %.4f)",
			order, cutOffFreq, smpFreq, radius)
	}
	b := &Butterworth{
		order:      order,
		cutOffFreq: cutOffFreq,
		smpFreq:    smpFreq,
		coeffs:     coeffs,
	}
	b.reset()
	return b, nil
}

func coefficients(order int, cutOffFreq, smpFreq float64) []float64 {
	omega := math.Pi * cutOffFreq / smpFreq
	den := 4*omega*omega + 1
	c := make([]float64, order)
	for k := range c {
		f := float64(2*k+1) * math.Pi / float64(2*order)
		a := 2 * omega * math.Sin(f)
		c[k] = a * a / den
	}
	return c
}

// spectralRadius returns the largest eigenvalue magnitude of the companion matrix of the
// output recurrence y[n] = (1-c[0])*y[n-1] - c[1]*y[n-2] - ... - c[k]*y[n-1-k].
func spectralRadius(coeffs []float64) (float64, error) {
	n := len(coeffs)
	companion := mat.NewDense(n, n, nil)
	companion.Set(0, 0, 1-coeffs[0])
	for i := 1; i < n; i++ {
		companion.Set(0, i, -coeffs[i])
		companion.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return 0, errors.New("failed to compute filter eigenvalues")
	}
	var radius float64
	for _, v := range eig.Values(nil) {
		radius = math.Max(radius, cmplx.Abs(v))
	}
	return radius, nil
}

// Filter filters one sample. Samples must be fed in time order.
func (b *Butterworth) Filter(x float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	copy(b.xHist[1:], b.xHist[:b.order-1])
	b.xHist[0] = x

	y := b.yHist[0]
	for i, c := range b.coeffs {
		y += c * (b.xHist[i] - b.yHist[i])
	}

	copy(b.yHist[1:], b.yHist[:b.order-1])
	b.yHist[0] = y
	return y
}

// Reset clears both histories.
func (b *Butterworth) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Butterworth) reset() {
	b.xHist = make([]float64, b.order)
	b.yHist = make([]float64, b.order)
}

// Order returns the filter order.
func (b *Butterworth) Order() int {
	return b.order
}

// Coefficients returns a copy of the filter coefficients.
func (b *Butterworth) Coefficients() []float64 {
	return append([]float64(nil), b.coeffs...)
}
