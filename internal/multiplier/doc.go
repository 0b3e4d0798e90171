// Package multiplier provides the interchangeable multiplication strategies
// used by bigint.Int.
//
// Every strategy implements Multiplier over raw little-endian magnitudes of
// 32-bit limbs: inputs are never modified, the product is a fresh normalized
// slice and an empty operand yields an empty product. All strategies return
// identical limbs for identical inputs; they differ only in cost.
//
//   - Simple: schoolbook product, O(n·m).
//   - Karatsuba: divide and conquer with three half-size products, O(n^1.585).
//   - FFT: floating-point convolution from package bigfft, O(n log n). It can
//     fail with *apperrors.PrecisionError for very long operands.
//   - Selector: picks one of the above per call from operand lengths and falls
//     back to Karatsuba when FFT reports a precision failure.
//
// Registry maps CLI names to strategies.
package multiplier
