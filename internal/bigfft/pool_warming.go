// Pool pre-warming for adaptive buffer pre-allocation based on operand size.

package bigfft

import (
	"sync/atomic"
)

// MemoryEstimate describes the transform a product of two operands needs.
type MemoryEstimate struct {
	// DigitBits is the digit width (16 or 8), or 0 when unsupported.
	DigitBits uint
	// TransformSize is the number of complex points per transform.
	TransformSize int
	// Bytes is the memory held by the two transform buffers.
	Bytes uint64
}

// EstimateMemoryNeeds returns the transform layout for multiplying two
// operands of the given limb count.
func EstimateMemoryNeeds(limbs int) MemoryEstimate {
	if limbs <= 0 {
		return MemoryEstimate{}
	}
	p, err := newPlan(limbs, limbs)
	if err != nil {
		return MemoryEstimate{}
	}
	return MemoryEstimate{
		DigitBits:     p.digitBits,
		TransformSize: p.n,
		Bytes:         2 * uint64(p.n) * 16,
	}
}

// PreWarmPools pre-allocates transform buffers and twiddle tables for
// products of operands up to the given limb count. The number of buffers
// grows with operand size:
//   - < 4K limbs: 2 buffers
//   - < 64K limbs: 4 buffers
//   - larger: 6 buffers
func PreWarmPools(limbs int) {
	est := EstimateMemoryNeeds(limbs)
	if est.TransformSize == 0 {
		return
	}

	numBuffers := 2
	if limbs >= 65536 {
		numBuffers = 6
	} else if limbs >= 4096 {
		numBuffers = 4
	}

	idx := getComplexSlicePoolIndex(est.TransformSize)
	if idx >= 0 {
		for i := 0; i < numBuffers; i++ {
			complexSlicePools[idx].Put(make([]complex128, complexSliceSizes[idx]))
		}
	}
	p, _ := newPlan(limbs, limbs)
	twiddles(p.logN)
}

// poolsWarmed tracks whether pools have been pre-warmed.
var poolsWarmed atomic.Bool

// EnsurePoolsWarmed pre-warms the pools exactly once. Safe for concurrent use.
func EnsurePoolsWarmed(maxLimbs int) {
	if poolsWarmed.CompareAndSwap(false, true) {
		PreWarmPools(maxLimbs)
	}
}
