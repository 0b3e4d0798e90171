// This file provides memory pooling for FFT operations to reduce GC pressure.

package bigfft

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Complex Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// complexSlicePools pools []complex128 transform buffers by size class.
// Transform sizes are powers of two, so size classes are powers of four:
// 64, 256, 1K, 4K, 16K, 64K, 256K, 1M, 4M elements.
var complexSlicePools = [...]sync.Pool{
	{New: func() any { return make([]complex128, 64) }},
	{New: func() any { return make([]complex128, 256) }},
	{New: func() any { return make([]complex128, 1024) }},
	{New: func() any { return make([]complex128, 4096) }},
	{New: func() any { return make([]complex128, 16384) }},
	{New: func() any { return make([]complex128, 65536) }},
	{New: func() any { return make([]complex128, 262144) }},
	{New: func() any { return make([]complex128, 1048576) }}, // 16MB
	{New: func() any { return make([]complex128, 4194304) }}, // 64MB
}

// complexSliceSizes defines the size classes for complex slice pools.
var complexSliceSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304}

// getComplexSlicePoolIndex returns the pool index for a given size, or -1 if
// the size is too large for pooling.
//
// complexSliceSizes are powers of 4 starting from 4^3 = 64: index i holds
// size 4^(i+3), so bits.Len(size-1) maps directly to the index.
func getComplexSlicePoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > complexSliceSizes[len(complexSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// getComplexSlicePoolIndexLinear is the O(n) reference for
// getComplexSlicePoolIndex.
func getComplexSlicePoolIndexLinear(size int) int {
	for i, s := range complexSliceSizes {
		if size <= s {
			return i
		}
	}
	return -1
}

// acquireComplexSlice gets a zeroed []complex128 of exactly the given length.
//
// The returned slice should be released using releaseComplexSlice, preferably
// with defer:
//
//	buf := acquireComplexSlice(n)
//	defer releaseComplexSlice(buf)
func acquireComplexSlice(size int) []complex128 {
	idx := getComplexSlicePoolIndex(size)
	if idx < 0 {
		return make([]complex128, size)
	}
	slice := complexSlicePools[idx].Get().([]complex128)
	clear(slice)
	return slice[:size]
}

// releaseComplexSlice returns a slice obtained from acquireComplexSlice to
// its pool. Safe to call with nil.
func releaseComplexSlice(slice []complex128) {
	if slice == nil {
		return
	}
	c := cap(slice)
	idx := getComplexSlicePoolIndex(c)
	if idx >= 0 && complexSliceSizes[idx] == c {
		complexSlicePools[idx].Put(slice[:c])
	}
	// Capacity outside the size classes means it was allocated directly.
}
