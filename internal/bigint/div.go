package bigint

import (
	"math/bits"

	"github.com/agbru/bigcalc/internal/arith"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// QuoRem returns the truncated quotient and remainder of x / y:
// x = q*y + r with |r| < |y|, q rounded toward zero and r carrying the sign
// of x. A zero divisor yields an *apperrors.DivideByZeroError.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if y.IsZero() {
		return Int{}, Int{}, &apperrors.DivideByZeroError{Op: "quorem"}
	}
	if x.large == nil && y.large == nil {
		return fromWord(x.small/y.small, x.neg != y.neg), fromWord(x.small%y.small, x.neg), nil
	}
	qm, rm := divMag(x.mag(), y.mag())
	return fromMag(qm, x.neg != y.neg), fromMag(rm, x.neg), nil
}

// Quo returns x / y truncated toward zero.
func (x Int) Quo(y Int) (Int, error) {
	if y.IsZero() {
		return Int{}, &apperrors.DivideByZeroError{Op: "quo"}
	}
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns x % y, which has the sign of x.
func (x Int) Rem(y Int) (Int, error) {
	if y.IsZero() {
		return Int{}, &apperrors.DivideByZeroError{Op: "rem"}
	}
	_, r, err := x.QuoRem(y)
	return r, err
}

// DivMod returns the Euclidean quotient and modulus: x = q*y + m with
// 0 <= m < |y|.
func (x Int) DivMod(y Int) (q, m Int, err error) {
	if y.IsZero() {
		return Int{}, Int{}, &apperrors.DivideByZeroError{Op: "divmod"}
	}
	q, m, err = x.QuoRem(y)
	if err != nil || !m.neg {
		return q, m, err
	}
	m = m.Add(y.Abs())
	if y.neg {
		q = q.Add(One)
	} else {
		q = q.Sub(One)
	}
	return q, m, nil
}

func fromWord(w uint32, neg bool) Int {
	if w == 0 {
		return Int{}
	}
	return Int{neg: neg, small: w}
}

// divMag divides normalized magnitudes, v non-empty.
func divMag(u, v []uint32) (q, r []uint32) {
	if arith.Cmp(u, v) < 0 {
		return nil, append([]uint32(nil), u...)
	}
	if len(v) == 1 {
		q = make([]uint32, len(u))
		rw := arith.DivWVW(q, 0, u, v[0])
		return q, []uint32{rw}
	}
	return divKnuth(u, v)
}

// divKnuth is Knuth's Algorithm D (TAOCP vol. 2, 4.3.1) for len(v) >= 2 and
// u >= v.
func divKnuth(uIn, vIn []uint32) (q, r []uint32) {
	n := len(vIn)
	m := len(uIn) - n

	// D1: normalize so the top bit of v is set.
	s := uint(bits.LeadingZeros32(vIn[n-1]))
	v := make([]uint32, n)
	arith.ShlVU(v, vIn, s)
	u := make([]uint32, len(uIn)+1)
	u[len(uIn)] = arith.ShlVU(u[:len(uIn)], uIn, s)

	q = make([]uint32, m+1)
	qhatv := make([]uint32, n+1)
	vn1, vn2 := v[n-1], v[n-2]

	for j := m; j >= 0; j-- {
		// D3: estimate qhat from the top two remainder limbs.
		qhat := uint32(arith.WordMask)
		if ujn := u[j+n]; ujn != vn1 {
			var rhat uint32
			qhat, rhat = bits.Div32(ujn, u[j+n-1], vn1)

			// Refine with the second divisor limb; at most two corrections.
			hi, lo := bits.Mul32(qhat, vn2)
			for hi > rhat || (hi == rhat && lo > u[j+n-2]) {
				qhat--
				prev := rhat
				rhat += vn1
				if rhat < prev {
					break
				}
				hi, lo = bits.Mul32(qhat, vn2)
			}
		}

		// D4: multiply and subtract.
		qhatv[n] = arith.MulAddVWW(qhatv[:n], v, qhat, 0)
		if arith.SubVV(u[j:j+n+1], u[j:], qhatv) != 0 {
			// D6: add back.
			c := arith.AddVV(u[j:j+n], u[j:], v)
			u[j+n] += c
			qhat--
		}
		q[j] = qhat
	}

	// D8: unnormalize the remainder.
	r = make([]uint32, n)
	arith.ShrVU(r, u[:n], s)
	return q, r
}
