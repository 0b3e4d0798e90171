package bigint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
)

func TestAddSub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		x, y      string
		sum, diff string
	}{
		{"small positives", "2", "3", "5", "-1"},
		{"carry into second limb", "4294967295", "1", "4294967296", "4294967294"},
		{"mixed signs", "-10", "4", "-6", "-14"},
		{"cancel to zero", "123456789012345678901234567890", "-123456789012345678901234567890", "0", "246913578024691357802469135780"},
		{"both negative", "-4294967295", "-4294967295", "-8589934590", "0"},
		{"borrow across limbs", "18446744073709551616", "-1", "18446744073709551615", "18446744073709551617"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x, y := MustParse(tt.x, 10), MustParse(tt.y, 10)
			sum, diff := x.Add(y), x.Sub(y)
			checkCanonical(t, sum)
			checkCanonical(t, diff)
			if sum.String() != tt.sum {
				t.Errorf("%s + %s = %s, want %s", tt.x, tt.y, sum, tt.sum)
			}
			if diff.String() != tt.diff {
				t.Errorf("%s - %s = %s, want %s", tt.x, tt.y, diff, tt.diff)
			}
		})
	}
}

func TestNegAbs(t *testing.T) {
	t.Parallel()
	x := MustParse("-18446744073709551616", 10)
	if x.Neg().String() != "18446744073709551616" || x.Abs().String() != "18446744073709551616" {
		t.Errorf("Neg/Abs of %s", x)
	}
	if Zero.Neg().IsNegative() {
		t.Error("-0 must stay non-negative")
	}
	if !x.Neg().Neg().Equal(x) {
		t.Error("double negation")
	}
}

func TestImmutability(t *testing.T) {
	t.Parallel()
	x := MustParse("79228162514264337593543950335", 10) // 2^96 - 1
	y := MustParse("1", 10)
	before := x.String()
	_ = x.Add(y)
	_ = x.Sub(y)
	_ = x.Neg()
	_ = x.Mul(x)
	_, _ = x.Quo(y.Add(y))
	_ = x.Lsh(7)
	_ = x.Rsh(7)
	_ = x.And(y.Neg())
	if x.String() != before {
		t.Errorf("operations mutated their receiver: %s -> %s", before, x)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	ordered := []Int{
		MustParse("-18446744073709551617", 10),
		MustParse("-18446744073709551616", 10),
		MustParse("-4294967296", 10),
		FromInt64(-1),
		Zero,
		One,
		FromUint32(4294967295),
		MustParse("4294967296", 10),
		MustParse("18446744073709551616", 10),
	}
	for i := range ordered {
		for j := range ordered {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			if got := Cmp(ordered[i], ordered[j]); got != want {
				t.Errorf("Cmp(%s, %s) = %d, want %d", ordered[i], ordered[j], got, want)
			}
		}
	}
	a, b := FromInt64(-3), FromInt64(2)
	if !a.Less(b) || !a.LessEq(b) || a.Greater(b) || a.GreaterEq(b) || a.Equal(b) {
		t.Error("helper predicates disagree with Cmp")
	}
	if a.CmpAbs(b) != 1 {
		t.Error("CmpAbs(-3, 2) should be 1")
	}
}

func TestArithmetic_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(defaultParameters(300))

	properties.Property("Add matches math/big", prop.ForAll(
		func(x, y Int) bool {
			z := x.Add(y)
			return isCanonical(z) && z.Big().Cmp(new(big.Int).Add(x.Big(), y.Big())) == 0
		},
		genInt(), genInt(),
	))

	properties.Property("Sub matches math/big", prop.ForAll(
		func(x, y Int) bool {
			z := x.Sub(y)
			return isCanonical(z) && z.Big().Cmp(new(big.Int).Sub(x.Big(), y.Big())) == 0
		},
		genInt(), genInt(),
	))

	properties.Property("x - x == 0", prop.ForAll(
		func(x Int) bool { return x.Sub(x).IsZero() && !x.Sub(x).IsNegative() },
		genInt(),
	))

	properties.Property("Cmp is a consistent total order", prop.ForAll(
		func(x, y Int) bool {
			c := x.Cmp(y)
			return c == -y.Cmp(x) &&
				c == x.Big().Cmp(y.Big()) &&
				(c == 0) == x.Equal(y)
		},
		genInt(), genInt(),
	))

	properties.Property("Cmp is transitive", prop.ForAll(
		func(x, y, z Int) bool {
			if x.LessEq(y) && y.LessEq(z) {
				return x.LessEq(z)
			}
			return true
		},
		genInt(), genInt(), genInt(),
	))

	properties.TestingRun(t)
}

var benchSink Int

func BenchmarkAddInline(b *testing.B) {
	x, y := FromUint32(123456), FromUint32(654321)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchSink = x.Add(y)
	}
}
