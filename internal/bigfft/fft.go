package bigfft

import (
	"math"
	"math/bits"
	"sync"
)

// maxLogN bounds the transform size the package will ever plan for.
const maxLogN = 22

// twiddleTables caches exp(-2πik/N) for k < N/2, one table per transform size.
var twiddleTables [maxLogN + 1]struct {
	once sync.Once
	w    []complex128
}

// twiddles returns the forward roots of unity for a transform of size 1<<logN.
func twiddles(logN uint) []complex128 {
	t := &twiddleTables[logN]
	t.once.Do(func() {
		n := 1 << logN
		t.w = make([]complex128, n/2)
		for k := range t.w {
			sin, cos := math.Sincos(2 * math.Pi * float64(k) / float64(n))
			t.w[k] = complex(cos, -sin)
		}
	})
	return t.w
}

// bitReverse permutes a into bit-reversed index order.
func bitReverse(a []complex128, logN uint) {
	shift := bits.UintSize - int(logN)
	for i := range a {
		j := int(bits.Reverse(uint(i)) >> uint(shift))
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

// transform computes the in-place discrete Fourier transform of a, whose
// length must be 1<<logN. The inverse transform includes the 1/N scaling.
func transform(a []complex128, logN uint, inverse bool) {
	n := len(a)
	w := twiddles(logN)
	bitReverse(a, logN)
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				t := w[k*step]
				if inverse {
					t = complex(real(t), -imag(t))
				}
				u := a[start+k]
				v := a[start+k+half] * t
				a[start+k] = u + v
				a[start+k+half] = u - v
			}
		}
	}
	if inverse {
		scale := 1 / float64(n)
		for i := range a {
			a[i] = complex(real(a[i])*scale, imag(a[i])*scale)
		}
	}
}
