package bigint

import (
	"github.com/agbru/bigcalc/internal/arith"
)

// twos returns x in n-limb two's complement. n must exceed x.Len().
func twos(x Int, n int) []uint32 {
	z := make([]uint32, n)
	copy(z, x.mag())
	if x.neg {
		for i := range z {
			z[i] = ^z[i]
		}
		arith.AddVW(z, z, 1)
	}
	return z
}

// fromTwos interprets z as a two's-complement value, consuming z.
func fromTwos(z []uint32) Int {
	if len(z) == 0 || z[len(z)-1]>>(arith.WordBits-1) == 0 {
		return fromMag(z, false)
	}
	for i := range z {
		z[i] = ^z[i]
	}
	arith.AddVW(z, z, 1)
	return fromMag(z, true)
}

func bitwise(x, y Int, op func(a, b uint32) uint32) Int {
	n := max(x.Len(), y.Len()) + 1
	a, b := twos(x, n), twos(y, n)
	for i := range a {
		a[i] = op(a[i], b[i])
	}
	return fromTwos(a)
}

// And returns x & y.
func (x Int) And(y Int) Int {
	if x.large == nil && y.large == nil && !x.neg && !y.neg {
		return Int{small: x.small & y.small}
	}
	return bitwise(x, y, func(a, b uint32) uint32 { return a & b })
}

// Or returns x | y.
func (x Int) Or(y Int) Int {
	if x.large == nil && y.large == nil && !x.neg && !y.neg {
		return Int{small: x.small | y.small}
	}
	return bitwise(x, y, func(a, b uint32) uint32 { return a | b })
}

// Xor returns x ^ y.
func (x Int) Xor(y Int) Int {
	if x.large == nil && y.large == nil && !x.neg && !y.neg {
		return Int{small: x.small ^ y.small}
	}
	return bitwise(x, y, func(a, b uint32) uint32 { return a ^ b })
}

// AndNot returns x &^ y.
func (x Int) AndNot(y Int) Int {
	return bitwise(x, y, func(a, b uint32) uint32 { return a &^ b })
}

// Not returns ^x, which equals -(x+1).
func (x Int) Not() Int {
	return x.Add(One).Neg()
}

// Lsh returns x << k.
func (x Int) Lsh(k uint) Int {
	if k == 0 || x.IsZero() {
		return x
	}
	return fromMag(shlMag(x.mag(), k), x.neg)
}

// Rsh returns x >> k. Negative values round toward negative infinity, so
// -1 >> k is -1 for every k.
func (x Int) Rsh(k uint) Int {
	if k == 0 || x.IsZero() {
		return x
	}
	if !x.neg {
		return fromMag(shrMag(x.mag(), k), false)
	}
	// -((|x|-1) >> k) - 1
	t := arith.Sub(x.mag(), []uint32{1})
	t = shrMag(t, k)
	return fromMag(arith.Add(t, []uint32{1}), true)
}

func shlMag(m []uint32, k uint) []uint32 {
	limbs := int(k / arith.WordBits)
	s := k % arith.WordBits
	z := make([]uint32, len(m)+limbs+1)
	z[len(m)+limbs] = arith.ShlVU(z[limbs:len(m)+limbs], m, s)
	return z
}

func shrMag(m []uint32, k uint) []uint32 {
	limbs := k / arith.WordBits
	if limbs >= uint(len(m)) {
		return nil
	}
	src := m[limbs:]
	z := make([]uint32, len(src))
	arith.ShrVU(z, src, k%arith.WordBits)
	return z
}

// Bit returns the value of bit i of x in two's complement.
func (x Int) Bit(i int) uint {
	if i < 0 {
		panic("bigint: negative bit index")
	}
	m := x.mag()
	if x.neg {
		m = arith.Sub(m, []uint32{1})
	}
	b := uint(0)
	if w := i / arith.WordBits; w < len(m) {
		b = uint(m[w]>>(uint(i)%arith.WordBits)) & 1
	}
	if x.neg {
		return b ^ 1
	}
	return b
}

// TrailingZeroBits returns the number of consecutive zero bits at the bottom
// of |x|. It returns 0 for x == 0.
func (x Int) TrailingZeroBits() uint {
	return arith.TrailingZeros(x.mag())
}
