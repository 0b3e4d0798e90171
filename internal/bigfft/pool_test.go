package bigfft

import (
	"fmt"
	"testing"
)

func TestComplexSlicePool(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		size int
	}{
		{"small", 10},
		{"medium", 100},
		{"large", 1000},
		{"xlarge", 5000},
		{"too_large", 5000000}, // Direct allocation
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			slice := acquireComplexSlice(tt.size)
			if len(slice) != tt.size {
				t.Errorf("acquireComplexSlice(%d) got length %d", tt.size, len(slice))
			}
			for i := range slice {
				if slice[i] != 0 {
					t.Errorf("acquireComplexSlice(%d) not zeroed at index %d", tt.size, i)
					break
				}
			}
			releaseComplexSlice(slice)
		})
	}
}

func TestComplexSliceReuseIsZeroed(t *testing.T) {
	for i := 0; i < 4; i++ {
		buf := acquireComplexSlice(256)
		for j := range buf {
			buf[j] = complex(float64(j), 1)
		}
		releaseComplexSlice(buf)
	}
	buf := acquireComplexSlice(200)
	defer releaseComplexSlice(buf)
	for j := range buf {
		if buf[j] != 0 {
			t.Fatalf("recycled buffer not cleared at %d: %v", j, buf[j])
		}
	}
}

func TestReleaseNilSafe(t *testing.T) {
	t.Parallel()
	releaseComplexSlice(nil)
	releaseComplexSlice(make([]complex128, 100)) // not a size class
}

func TestGetComplexSlicePoolIndexConsistency(t *testing.T) {
	t.Parallel()
	maxSize := complexSliceSizes[len(complexSliceSizes)-1]
	for size := 0; size <= maxSize+100; size += 1 + size/4096 {
		got := getComplexSlicePoolIndex(size)
		want := getComplexSlicePoolIndexLinear(size)
		if got != want {
			t.Fatalf("getComplexSlicePoolIndex(%d): got %d, want %d", size, got, want)
		}
	}
}

func TestPoolIndexBoundaryValues(t *testing.T) {
	t.Parallel()
	for i, size := range complexSliceSizes {
		if got := getComplexSlicePoolIndex(size); got != i {
			t.Errorf("getComplexSlicePoolIndex(%d) = %d, want %d", size, got, i)
		}
		if i > 0 {
			if got := getComplexSlicePoolIndex(complexSliceSizes[i-1] + 1); got != i {
				t.Errorf("getComplexSlicePoolIndex(%d) = %d, want %d", complexSliceSizes[i-1]+1, got, i)
			}
		}
	}
	if got := getComplexSlicePoolIndex(complexSliceSizes[len(complexSliceSizes)-1] + 1); got != -1 {
		t.Errorf("getComplexSlicePoolIndex(max+1) = %d, want -1", got)
	}
}

func TestEstimateMemoryNeeds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		limbs     int
		digitBits uint
		size      int
	}{
		{0, 0, 0},
		{1, 16, 4},
		{1024, 16, 4096},
		{4096, 8, 32768},
		{1 << 20, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("limbs=%d", tt.limbs), func(t *testing.T) {
			t.Parallel()
			est := EstimateMemoryNeeds(tt.limbs)
			if est.DigitBits != tt.digitBits || est.TransformSize != tt.size {
				t.Errorf("EstimateMemoryNeeds(%d) = %+v, want bits=%d size=%d", tt.limbs, est, tt.digitBits, tt.size)
			}
			if est.Bytes != 32*uint64(tt.size) {
				t.Errorf("Bytes = %d, want %d", est.Bytes, 32*uint64(tt.size))
			}
		})
	}
}

func TestEnsurePoolsWarmed(t *testing.T) {
	EnsurePoolsWarmed(2048)
	EnsurePoolsWarmed(2048)
	if !poolsWarmed.Load() {
		t.Error("pools should be marked warm")
	}
	PreWarmPools(0)
}

func BenchmarkGetComplexSlicePoolIndex(b *testing.B) {
	sizes := []int{1, 32, 65, 200, 1000, 5000, 50000, 500000, 5000000}
	b.Run("bitwise", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			for _, s := range sizes {
				getComplexSlicePoolIndex(s)
			}
		}
	})
	b.Run("linear", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			for _, s := range sizes {
				getComplexSlicePoolIndexLinear(s)
			}
		}
	})
}

func BenchmarkComplexSlicePool(b *testing.B) {
	for _, size := range []int{64, 4096, 65536} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				slice := acquireComplexSlice(size)
				releaseComplexSlice(slice)
			}
		})
	}
}
