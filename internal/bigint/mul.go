package bigint

import (
	"fmt"
	"sync/atomic"

	"github.com/agbru/bigcalc/internal/multiplier"
)

type multiplierHolder struct{ m multiplier.Multiplier }

var defaultMultiplier atomic.Pointer[multiplierHolder]

// DefaultMultiplier returns the strategy used by Int.Mul.
func DefaultMultiplier() multiplier.Multiplier {
	if h := defaultMultiplier.Load(); h != nil {
		return h.m
	}
	return multiplier.Default()
}

// SetDefaultMultiplier replaces the strategy used by Int.Mul and returns the
// previous one. Passing nil restores the automatic selector.
func SetDefaultMultiplier(m multiplier.Multiplier) multiplier.Multiplier {
	prev := DefaultMultiplier()
	if m == nil {
		defaultMultiplier.Store(nil)
	} else {
		defaultMultiplier.Store(&multiplierHolder{m: m})
	}
	return prev
}

// Mul returns x*y using the default strategy. The built-in default never
// fails; if a strategy installed with SetDefaultMultiplier returns an error,
// Mul panics with it.
func (x Int) Mul(y Int) Int {
	if x.large == nil && y.large == nil {
		z := FromUint64(uint64(x.small) * uint64(y.small))
		z.neg = x.neg != y.neg && !z.IsZero()
		return z
	}
	z, err := x.MulWith(y, DefaultMultiplier())
	if err != nil {
		panic(fmt.Errorf("bigint: default multiplier failed: %w", err))
	}
	return z
}

// MulWith returns x*y computed by m, propagating any strategy error.
func (x Int) MulWith(y Int, m multiplier.Multiplier) (Int, error) {
	if x.IsZero() || y.IsZero() {
		return Int{}, nil
	}
	xm := x.mag()
	ym := xm
	if !sameStorage(x, y) {
		ym = y.mag()
	}
	prod, err := m.Multiply(xm, ym)
	if err != nil {
		return Int{}, err
	}
	return fromMag(prod, x.neg != y.neg), nil
}

// Sqr returns x*x.
func (x Int) Sqr() Int { return x.Mul(x) }

// sameStorage reports whether x and y share one heap magnitude, letting
// strategies detect squaring.
func sameStorage(x, y Int) bool {
	return x.large != nil && y.large != nil && len(x.large) == len(y.large) && &x.large[0] == &y.large[0]
}
