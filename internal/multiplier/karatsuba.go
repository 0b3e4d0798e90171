package multiplier

import (
	"github.com/agbru/bigcalc/internal/arith"
)

const (
	// DefaultKaratsubaThreshold is the operand length in limbs below which
	// Karatsuba hands off to the schoolbook product.
	DefaultKaratsubaThreshold = 32

	// minKaratsubaThreshold keeps every recursive split strictly smaller than
	// its parent.
	minKaratsubaThreshold = 4
)

// Karatsuba splits both operands at half the longer length and computes the
// product from three half-size products:
//
//	x*y = z2·B^(2h) + (z1 − z2 − z0)·B^h + z0
//
// where z0 = x0*y0, z2 = x1*y1 and z1 = (x0+x1)*(y0+y1).
type Karatsuba struct {
	// Threshold is the shorter-operand length (in limbs) below which the
	// schoolbook product is used. Zero selects DefaultKaratsubaThreshold.
	Threshold int
}

// Name implements Multiplier.
func (Karatsuba) Name() string { return "Karatsuba" }

// Multiply implements Multiplier. It never fails.
func (k Karatsuba) Multiply(left, right []uint32) ([]uint32, error) {
	x, y, zero := normalize(left, right)
	if zero {
		return nil, nil
	}
	return arith.Norm(karatsuba(x, y, k.threshold())), nil
}

func (k Karatsuba) threshold() int {
	switch {
	case k.Threshold == 0:
		return DefaultKaratsubaThreshold
	case k.Threshold < minKaratsubaThreshold:
		return minKaratsubaThreshold
	}
	return k.Threshold
}

// karatsuba multiplies two normalized magnitudes. The result may carry high
// zero limbs.
func karatsuba(x, y []uint32, threshold int) []uint32 {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) == 0 {
		return nil
	}
	if len(y) < threshold {
		return schoolbook(x, y)
	}

	n := len(x)
	half := n / 2
	if len(y) <= half {
		return karatsubaUnbalanced(x, y, threshold)
	}

	x0, x1 := arith.Norm(x[:half]), x[half:]
	y0, y1 := arith.Norm(y[:half]), y[half:]

	z0 := arith.Norm(karatsuba(x0, y0, threshold))
	z2 := arith.Norm(karatsuba(x1, y1, threshold))
	z1 := arith.Norm(karatsuba(arith.Add(x0, x1), arith.Add(y0, y1), threshold))
	z1 = arith.Sub(arith.Sub(z1, z0), z2)

	z := make([]uint32, n+len(y)+1)
	arith.AddAt(z, z0, 0)
	arith.AddAt(z, z1, half)
	arith.AddAt(z, z2, 2*half)
	return z
}

// karatsubaUnbalanced multiplies a long x by a short y by slicing x into
// chunks of len(y) limbs and summing the shifted chunk products.
func karatsubaUnbalanced(x, y []uint32, threshold int) []uint32 {
	m := len(y)
	z := make([]uint32, len(x)+m+1)
	for off := 0; off < len(x); off += m {
		chunk := arith.Norm(x[off:min(off+m, len(x))])
		if len(chunk) == 0 {
			continue
		}
		arith.AddAt(z, arith.Norm(karatsuba(chunk, y, threshold)), off)
	}
	return z
}
