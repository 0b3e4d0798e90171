package bigint

import (
	"github.com/agbru/bigcalc/internal/arith"
)

// Cmp compares x and y and returns -1, 0 or +1.
func Cmp(x, y Int) int { return x.Cmp(y) }

// Cmp compares x and y: signs first, then magnitudes, with the magnitude
// order inverted when both are negative.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	}
	c := x.CmpAbs(y)
	if x.neg {
		return -c
	}
	return c
}

// CmpAbs compares |x| and |y|.
func (x Int) CmpAbs(y Int) int {
	if x.large == nil && y.large == nil {
		switch {
		case x.small < y.small:
			return -1
		case x.small > y.small:
			return 1
		}
		return 0
	}
	return arith.Cmp(x.mag(), y.mag())
}

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x Int) Less(y Int) bool { return x.Cmp(y) < 0 }

// LessEq reports whether x <= y.
func (x Int) LessEq(y Int) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x Int) Greater(y Int) bool { return x.Cmp(y) > 0 }

// GreaterEq reports whether x >= y.
func (x Int) GreaterEq(y Int) bool { return x.Cmp(y) >= 0 }
