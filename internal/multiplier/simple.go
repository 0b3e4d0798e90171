package multiplier

import (
	"github.com/agbru/bigcalc/internal/arith"
)

// Simple is the schoolbook strategy: each limb of the shorter operand scales
// the longer one and accumulates into its column with 64-bit intermediates.
type Simple struct{}

// Name implements Multiplier.
func (Simple) Name() string { return "Simple" }

// Multiply implements Multiplier. It never fails.
func (Simple) Multiply(left, right []uint32) ([]uint32, error) {
	x, y, zero := normalize(left, right)
	if zero {
		return nil, nil
	}
	return arith.Norm(schoolbook(x, y)), nil
}

// schoolbook returns the unnormalized product in len(x)+len(y) limbs.
func schoolbook(x, y []uint32) []uint32 {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make([]uint32, len(x)+len(y))
	for i, yi := range y {
		if yi == 0 {
			continue
		}
		z[len(x)+i] = arith.AddMulVVW(z[i:i+len(x)], x, yi)
	}
	return z
}
