package bigint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// genInt produces Ints of mixed size: word-sized values (inline and
// two-limb) and multi-limb magnitudes of either sign.
func genInt() gopter.Gen {
	limbs := gopter.CombineGens(gen.SliceOf(gen.UInt32()), gen.Bool()).
		Map(func(v []interface{}) Int {
			return FromLimbs(v[0].([]uint32), v[1].(bool))
		})
	words := gen.Int64().Map(func(v int64) Int { return FromInt64(v) })
	return gen.OneGenOf(words, limbs)
}

func bigOf(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test literal " + s)
	}
	return b
}

// checkCanonical fails the test if x violates the storage invariants.
func checkCanonical(t *testing.T, x Int) {
	t.Helper()
	if x.IsZero() && x.IsNegative() {
		t.Errorf("negative zero: %#v", x)
	}
	if x.large != nil {
		if len(x.large) < 2 {
			t.Errorf("heap magnitude shorter than two limbs: %v", x.large)
		}
		if x.large[len(x.large)-1] == 0 {
			t.Errorf("heap magnitude has a high zero limb: %v", x.large)
		}
	}
}

func isCanonical(x Int) bool {
	if x.IsZero() && x.neg {
		return false
	}
	if x.large != nil && (len(x.large) < 2 || x.large[len(x.large)-1] == 0) {
		return false
	}
	return true
}

func defaultParameters(minSuccess int) *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = minSuccess
	return parameters
}
