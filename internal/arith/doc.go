// Package arith implements the vector kernels that operate on little-endian
// magnitudes of 32-bit limbs. All higher-level arithmetic in bigcalc
// (schoolbook and Karatsuba products, Knuth division, radix conversion,
// shifts) is written in terms of these primitives.
//
// Kernels never allocate. Unless stated otherwise, z may alias x or y as long
// as the alias starts at the same index.
package arith
