//go:generate mockgen -source=multiplier.go -destination=mocks/mock_multiplier.go -package=mocks

package multiplier

import (
	"github.com/agbru/bigcalc/internal/arith"
)

// Multiplier multiplies two non-negative magnitudes given as little-endian
// 32-bit limbs.
type Multiplier interface {
	// Multiply returns left*right as a fresh normalized slice. Implementations
	// must not modify or retain their inputs.
	Multiply(left, right []uint32) ([]uint32, error)
	// Name returns a short human-readable identifier.
	Name() string
}

// Kind identifies a concrete strategy chosen by a Policy.
type Kind int

const (
	KindSimple Kind = iota
	KindKaratsuba
	KindFFT
)

// String returns the registry name of the strategy.
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindKaratsuba:
		return "karatsuba"
	case KindFFT:
		return "fft"
	}
	return "unknown"
}

// normalize trims both operands and reports whether the product is zero.
func normalize(left, right []uint32) ([]uint32, []uint32, bool) {
	left, right = arith.Norm(left), arith.Norm(right)
	return left, right, len(left) == 0 || len(right) == 0
}
