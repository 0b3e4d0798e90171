// Package bigint implements Int, an immutable arbitrary-precision signed
// integer.
//
// An Int stores its magnitude as little-endian 32-bit limbs together with a
// sign flag. Values whose magnitude fits in one limb are held inline without a
// heap allocation; longer magnitudes live in a slice that is never mutated
// after construction, so Int values can be copied and shared freely between
// goroutines.
//
// Multiplication is delegated to a multiplier.Multiplier. Int.Mul uses the
// package default (an automatic selector over schoolbook, Karatsuba and FFT
// products); Int.MulWith runs a caller-chosen strategy.
//
// Division and modulo truncate toward zero, matching Go's integer operators:
// the quotient's sign is the XOR of the operand signs and the remainder takes
// the sign of the dividend. DivMod provides Euclidean division. Bitwise
// operations act on the infinite two's-complement representation, and Rsh of
// a negative value rounds toward negative infinity.
package bigint
