package bigint

import (
	"math/big"
	"math/bits"

	"github.com/agbru/bigcalc/internal/arith"
)

// Int is an immutable signed integer of arbitrary size. The zero value is 0.
//
// Storage is tagged by large: when large is nil the magnitude is the single
// limb small (zero when small == 0); otherwise large holds at least two limbs
// with a non-zero top limb. Zero is never negative.
type Int struct {
	neg   bool
	small uint32
	large []uint32
}

// Zero and One are convenience constants.
var (
	Zero = Int{}
	One  = Int{small: 1}
)

// fromMag wraps a magnitude without copying it. The caller gives up
// ownership of mag.
func fromMag(mag []uint32, neg bool) Int {
	mag = arith.Norm(mag)
	switch len(mag) {
	case 0:
		return Int{}
	case 1:
		return Int{neg: neg, small: mag[0]}
	}
	return Int{neg: neg, large: mag}
}

// FromLimbs returns the integer with the given little-endian magnitude and
// sign. limbs is copied; high zero limbs are ignored and an empty magnitude
// yields a non-negative zero.
func FromLimbs(limbs []uint32, negative bool) Int {
	limbs = arith.Norm(limbs)
	return fromMag(append([]uint32(nil), limbs...), negative)
}

// FromUint32 returns v as an Int.
func FromUint32(v uint32) Int { return Int{small: v} }

// FromUint64 returns v as an Int.
func FromUint64(v uint64) Int {
	if v>>32 == 0 {
		return Int{small: uint32(v)}
	}
	return Int{large: []uint32{uint32(v), uint32(v >> 32)}}
}

// FromInt64 returns v as an Int.
func FromInt64(v int64) Int {
	if v >= 0 {
		return FromUint64(uint64(v))
	}
	z := FromUint64(uint64(-(v + 1)) + 1)
	z.neg = true
	return z
}

// mag returns the magnitude as a read-only slice.
func (x Int) mag() []uint32 {
	if x.large != nil {
		return x.large
	}
	if x.small == 0 {
		return nil
	}
	return []uint32{x.small}
}

// Digits returns a fresh little-endian copy of the magnitude. Zero yields an
// empty slice.
func (x Int) Digits() []uint32 {
	return append([]uint32{}, x.mag()...)
}

// IsNegative reports whether x < 0.
func (x Int) IsNegative() bool { return x.neg }

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.large == nil && x.small == 0 }

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// Len returns the number of limbs in the magnitude.
func (x Int) Len() int {
	if x.large != nil {
		return len(x.large)
	}
	if x.small == 0 {
		return 0
	}
	return 1
}

// BitLen returns the length of |x| in bits. BitLen of 0 is 0.
func (x Int) BitLen() int {
	if x.large == nil {
		return bits.Len32(x.small)
	}
	return arith.BitLen(x.large)
}

// IsInline reports whether the magnitude is stored without a heap slice.
func (x Int) IsInline() bool { return x.large == nil }

// Int64 returns x as an int64 and whether it fits.
func (x Int) Int64() (int64, bool) {
	if x.Len() > 2 {
		return 0, false
	}
	m, _ := x.Uint64Abs()
	switch {
	case !x.neg && m <= 1<<63-1:
		return int64(m), true
	case x.neg && m <= 1<<63:
		return -int64(m-1) - 1, true
	}
	return 0, false
}

// Uint64Abs returns |x| as a uint64 and whether it fits.
func (x Int) Uint64Abs() (uint64, bool) {
	switch x.Len() {
	case 0:
		return 0, true
	case 1:
		return uint64(x.small), true
	case 2:
		return uint64(x.large[1])<<32 | uint64(x.large[0]), true
	}
	return 0, false
}

// FromBig converts a math/big integer.
func FromBig(b *big.Int) Int {
	if b == nil {
		return Int{}
	}
	buf := b.Bytes()
	mag := make([]uint32, (len(buf)+3)/4)
	for i := range mag {
		end := len(buf) - 4*i
		start := max(end-4, 0)
		var w uint32
		for _, c := range buf[start:end] {
			w = w<<8 | uint32(c)
		}
		mag[i] = w
	}
	return fromMag(mag, b.Sign() < 0)
}

// Big converts x to a newly allocated math/big integer.
func (x Int) Big() *big.Int {
	mag := x.mag()
	buf := make([]byte, 4*len(mag))
	for i, w := range mag {
		o := len(buf) - 4*(i+1)
		buf[o] = byte(w >> 24)
		buf[o+1] = byte(w >> 16)
		buf[o+2] = byte(w >> 8)
		buf[o+3] = byte(w)
	}
	z := new(big.Int).SetBytes(buf)
	if x.neg {
		z.Neg(z)
	}
	return z
}
