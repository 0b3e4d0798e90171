package bigfft

import (
	"math"
	"math/bits"

	"github.com/agbru/bigcalc/internal/arith"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Name is the strategy name reported in precision errors.
const Name = "fft"

const (
	// RoundingGuard is the largest accepted distance between a convolution
	// coefficient and its nearest integer.
	RoundingGuard = 0.25

	// maxLog16 is the largest transform (log2) that uses 16-bit digits.
	maxLog16 = 13
	// maxLog8 is the largest transform (log2) that uses 8-bit digits.
	maxLog8 = maxLogN
)

// plan describes one convolution: digit width and transform size.
type plan struct {
	digitBits uint
	logN      uint
	n         int
	digitsX   int
	digitsY   int
}

// newPlan picks the widest digit that keeps the transform within its proven
// exact range. Operands too long even for 8-bit digits are rejected before
// any work is done.
func newPlan(lenX, lenY int) (plan, error) {
	var digits int
	for _, b := range [...]uint{16, 8} {
		per := arith.WordBits / int(b)
		digits = (lenX + lenY) * per
		logN := uint(bits.Len(uint(digits - 1)))
		limit := uint(maxLog8)
		if b == 16 {
			limit = maxLog16
		}
		if logN <= limit {
			return plan{
				digitBits: b,
				logN:      logN,
				n:         1 << logN,
				digitsX:   lenX * per,
				digitsY:   lenY * per,
			}, nil
		}
	}
	return plan{}, &apperrors.PrecisionError{Strategy: Name, Length: digits}
}

// DigitBits reports the digit width Mul would use for operands of the given
// limb lengths, or 0 when they exceed the supported range.
func DigitBits(lenX, lenY int) uint {
	p, err := newPlan(lenX, lenY)
	if err != nil {
		return 0
	}
	return p.digitBits
}

// Mul returns x*y. Inputs are not modified; the result is a fresh normalized
// slice, empty when either operand is zero.
func Mul(x, y []uint32) ([]uint32, error) {
	x, y = arith.Norm(x), arith.Norm(y)
	if len(x) == 0 || len(y) == 0 {
		return nil, nil
	}
	p, err := newPlan(len(x), len(y))
	if err != nil {
		return nil, err
	}
	return p.convolve(x, y, false)
}

// Sqr returns x*x using a single forward transform.
func Sqr(x []uint32) ([]uint32, error) {
	x = arith.Norm(x)
	if len(x) == 0 {
		return nil, nil
	}
	p, err := newPlan(len(x), len(x))
	if err != nil {
		return nil, err
	}
	return p.convolve(x, x, true)
}

func (p plan) convolve(x, y []uint32, square bool) ([]uint32, error) {
	fx := acquireComplexSlice(p.n)
	defer releaseComplexSlice(fx)
	p.load(fx, x)
	transform(fx, p.logN, false)

	fy := fx
	if !square {
		fy = acquireComplexSlice(p.n)
		defer releaseComplexSlice(fy)
		p.load(fy, y)
		transform(fy, p.logN, false)
	}
	for i := range fx {
		fx[i] *= fy[i]
	}
	transform(fx, p.logN, true)
	return p.recover(fx, len(x)+len(y))
}

// load writes the digits of x into the real parts of a. The tail of a is
// expected to be zero.
func (p plan) load(a []complex128, x []uint32) {
	per := arith.WordBits / int(p.digitBits)
	mask := uint32(1)<<p.digitBits - 1
	for i, limb := range x {
		for j := 0; j < per; j++ {
			a[i*per+j] = complex(float64(limb>>(uint(j)*p.digitBits)&mask), 0)
		}
	}
}

// recover rounds the convolution, propagates carries and repacks the digits
// into limbs.
func (p plan) recover(a []complex128, limbs int) ([]uint32, error) {
	per := arith.WordBits / int(p.digitBits)
	mask := uint64(1)<<p.digitBits - 1
	maxCoeff := float64(min(p.digitsX, p.digitsY)) * float64(mask) * float64(mask)
	total := p.digitsX + p.digitsY

	out := make([]uint32, limbs)
	var carry uint64
	var maxErr float64
	for i := 0; i < total; i++ {
		if i < total-1 {
			re := real(a[i])
			r := math.Round(re)
			if math.IsNaN(re) || r < 0 || r > maxCoeff {
				return nil, &apperrors.PrecisionError{Strategy: Name, Length: p.n, MaxError: 1}
			}
			maxErr = max(maxErr, math.Abs(re-r))
			carry += uint64(r)
		}
		out[i/per] |= uint32(carry&mask) << (uint(i%per) * p.digitBits)
		carry >>= p.digitBits
	}
	if maxErr >= RoundingGuard || carry != 0 {
		return nil, &apperrors.PrecisionError{Strategy: Name, Length: p.n, MaxError: max(maxErr, RoundingGuard)}
	}
	return arith.Norm(out), nil
}
