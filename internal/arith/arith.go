package arith

import "math/bits"

// Word is a single limb.
type Word = uint32

const (
	// WordBits is the number of bits in a limb.
	WordBits = 32
	// WordMask masks the low limb of a 64-bit accumulator.
	WordMask = 1<<WordBits - 1
)

// AddVV sets z = x + y for len(z) limbs and returns the carry.
func AddVV(z, x, y []Word) (c Word) {
	var carry uint64
	for i := range z {
		carry += uint64(x[i]) + uint64(y[i])
		z[i] = Word(carry)
		carry >>= WordBits
	}
	return Word(carry)
}

// SubVV sets z = x - y for len(z) limbs and returns the borrow (0 or 1).
func SubVV(z, x, y []Word) (b Word) {
	for i := range z {
		d, borrow := bits.Sub32(x[i], y[i], b)
		z[i] = d
		b = borrow
	}
	return b
}

// AddVW sets z = x + y for a single word y and returns the carry.
func AddVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := range z {
		s, carry := bits.Add32(x[i], c, 0)
		z[i] = s
		c = carry
	}
	return c
}

// SubVW sets z = x - y for a single word y and returns the borrow.
func SubVW(z, x []Word, y Word) (b Word) {
	b = y
	for i := range z {
		d, borrow := bits.Sub32(x[i], b, 0)
		z[i] = d
		b = borrow
	}
	return b
}

// MulAddVWW sets z = x*y + r and returns the high limb of the result.
func MulAddVWW(z, x []Word, y, r Word) (c Word) {
	acc := uint64(r)
	for i := range z {
		acc += uint64(x[i]) * uint64(y)
		z[i] = Word(acc)
		acc >>= WordBits
	}
	return Word(acc)
}

// AddMulVVW sets z += x*y and returns the carry out of len(z) limbs.
func AddMulVVW(z, x []Word, y Word) (c Word) {
	var acc uint64
	for i := range z {
		acc += uint64(z[i]) + uint64(x[i])*uint64(y)
		z[i] = Word(acc)
		acc >>= WordBits
	}
	return Word(acc)
}

// ShlVU sets z = x << s for 0 <= s < WordBits and returns the bits shifted out
// of the top limb. z may alias x.
func ShlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	ŝ := WordBits - s
	n := len(z)
	c = x[n-1] >> ŝ
	for i := n - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return c
}

// ShrVU sets z = x >> s for 0 <= s < WordBits and returns the bits shifted
// out of the bottom limb, left-aligned. z may alias x.
func ShrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	ŝ := WordBits - s
	c = x[0] << ŝ
	n := len(z)
	for i := 0; i < n-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[n-1] = x[n-1] >> s
	return c
}

// DivWVW sets z = (xn:x) / y, where xn < y, and returns the remainder.
func DivWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = bits.Div32(r, x[i], y)
	}
	return r
}

// Norm returns x without its high zero limbs.
func Norm(x []Word) []Word {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

// Cmp compares two normalized magnitudes and returns -1, 0 or +1.
func Cmp(x, y []Word) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// Add returns a fresh normalized x + y.
func Add(x, y []Word) []Word {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) == 0 {
		return Norm(append([]Word(nil), x...))
	}
	z := make([]Word, len(x)+1)
	c := AddVV(z[:len(y)], x, y)
	c = AddVW(z[len(y):len(x)], x[len(y):], c)
	z[len(x)] = c
	return Norm(z)
}

// Sub returns a fresh normalized x - y. It requires Cmp(x, y) >= 0.
func Sub(x, y []Word) []Word {
	z := make([]Word, len(x))
	b := SubVV(z[:len(y)], x, y)
	SubVW(z[len(y):], x[len(y):], b)
	return Norm(z)
}

// AddAt adds x into z starting at limb offset i, propagating the carry
// through the rest of z. It returns any carry that falls off the end.
func AddAt(z, x []Word, i int) Word {
	if len(x) == 0 {
		return 0
	}
	c := AddVV(z[i:i+len(x)], z[i:], x)
	if c != 0 && i+len(x) < len(z) {
		c = AddVW(z[i+len(x):], z[i+len(x):], c)
	}
	return c
}

// SubAt subtracts x from z starting at limb offset i, propagating the borrow.
func SubAt(z, x []Word, i int) Word {
	if len(x) == 0 {
		return 0
	}
	b := SubVV(z[i:i+len(x)], z[i:], x)
	if b != 0 && i+len(x) < len(z) {
		b = SubVW(z[i+len(x):], z[i+len(x):], b)
	}
	return b
}

// BitLen returns the number of significant bits of a normalized magnitude.
func BitLen(x []Word) int {
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*WordBits + bits.Len32(x[len(x)-1])
}

// TrailingZeros returns the number of trailing zero bits of a non-empty
// normalized magnitude, or 0 when x is empty.
func TrailingZeros(x []Word) uint {
	for i, w := range x {
		if w != 0 {
			return uint(i)*WordBits + uint(bits.TrailingZeros32(w))
		}
	}
	return 0
}
