//go:build gmp

package multiplier

import (
	"encoding/binary"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/arith"
)

func init() {
	extraMultipliers["gmp"] = func() Multiplier { return GMP{} }
}

// GMP delegates products to the GNU Multiple Precision library via cgo.
// Only available when built with -tags gmp.
type GMP struct{}

// Name implements Multiplier.
func (GMP) Name() string { return "GMP" }

// Multiply implements Multiplier.
func (GMP) Multiply(left, right []uint32) ([]uint32, error) {
	x, y, zero := normalize(left, right)
	if zero {
		return nil, nil
	}
	z := new(gmp.Int).Mul(toGMP(x), toGMP(y))
	return fromGMP(z), nil
}

func toGMP(x []uint32) *gmp.Int {
	buf := make([]byte, 4*len(x))
	for i, w := range x {
		binary.BigEndian.PutUint32(buf[len(buf)-4*(i+1):], w)
	}
	return new(gmp.Int).SetBytes(buf)
}

func fromGMP(z *gmp.Int) []uint32 {
	buf := z.Bytes()
	out := make([]uint32, (len(buf)+3)/4)
	for i := range out {
		end := len(buf) - 4*i
		start := max(end-4, 0)
		var w uint32
		for _, b := range buf[start:end] {
			w = w<<8 | uint32(b)
		}
		out[i] = w
	}
	return arith.Norm(out)
}
