package bigint

import (
	"github.com/agbru/bigcalc/internal/arith"
)

// Neg returns -x.
func (x Int) Neg() Int {
	if x.IsZero() {
		return x
	}
	x.neg = !x.neg
	return x
}

// Abs returns |x|.
func (x Int) Abs() Int {
	x.neg = false
	return x
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.large == nil && y.large == nil && x.neg == y.neg {
		s := uint64(x.small) + uint64(y.small)
		z := FromUint64(s)
		z.neg = x.neg && s != 0
		return z
	}
	if x.neg == y.neg {
		return fromMag(arith.Add(x.mag(), y.mag()), x.neg)
	}
	switch x.CmpAbs(y) {
	case 0:
		return Int{}
	case 1:
		return fromMag(arith.Sub(x.mag(), y.mag()), x.neg)
	}
	return fromMag(arith.Sub(y.mag(), x.mag()), y.neg)
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int { return x.Add(y.Neg()) }
