package multiplier

import (
	"github.com/agbru/bigcalc/internal/bigfft"
)

// FFT multiplies by floating-point convolution. For operands beyond the
// proven-exact range, or when the rounding guard trips, it returns an
// *apperrors.PrecisionError instead of a value.
type FFT struct{}

// Name implements Multiplier.
func (FFT) Name() string { return "FFT" }

// Multiply implements Multiplier.
func (FFT) Multiply(left, right []uint32) ([]uint32, error) {
	x, y, zero := normalize(left, right)
	if zero {
		return nil, nil
	}
	if len(x) == len(y) && &x[0] == &y[0] {
		return bigfft.Sqr(x)
	}
	return bigfft.Mul(x, y)
}
