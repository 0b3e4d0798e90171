// Package bigfft multiplies arbitrary-precision magnitudes by floating-point
// convolution.
//
// Operands are little-endian slices of 32-bit limbs. Each limb is split into
// 16-bit digits (8-bit digits once the transform would grow past the size at
// which 16-bit digits are known to round exactly), both digit sequences are
// transformed with an iterative radix-2 complex FFT, multiplied pointwise and
// transformed back. Every output coefficient is rounded to the nearest integer
// and the largest rounding distance is checked against a guard; a product that
// cannot be recovered exactly is reported as an *apperrors.PrecisionError and
// never returned as a value.
//
// Complex buffers are recycled through size-classed sync.Pools.
package bigfft
