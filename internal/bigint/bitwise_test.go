package bigint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBitwiseTable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y         string
		and, or, xor string
	}{
		{"12", "10", "8", "14", "6"},
		{"-1", "5", "5", "-1", "-6"},
		{"-12", "10", "0", "-2", "-2"},
		{"-12", "-10", "-12", "-10", "2"},
		{"0", "-7", "0", "-7", "-7"},
		{"-4294967296", "4294967295", "0", "-1", "-1"},
		{"18446744073709551615", "-18446744073709551616", "0", "-1", "-1"},
	}
	for _, tt := range tests {
		x, y := MustParse(tt.x, 10), MustParse(tt.y, 10)
		if got := x.And(y); got.String() != tt.and {
			t.Errorf("%s & %s = %s, want %s", tt.x, tt.y, got, tt.and)
		}
		if got := x.Or(y); got.String() != tt.or {
			t.Errorf("%s | %s = %s, want %s", tt.x, tt.y, got, tt.or)
		}
		if got := x.Xor(y); got.String() != tt.xor {
			t.Errorf("%s ^ %s = %s, want %s", tt.x, tt.y, got, tt.xor)
		}
	}
}

func TestNot(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0", "-1", "1", "4294967295", "-4294967296", "18446744073709551616"} {
		x := MustParse(s, 10)
		got := x.Not()
		checkCanonical(t, got)
		want := new(big.Int).Not(x.Big())
		if got.Big().Cmp(want) != 0 {
			t.Errorf("^%s = %s, want %s", s, got, want)
		}
		if !got.Not().Equal(x) {
			t.Errorf("^^%s != %s", s, s)
		}
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()
	values := []string{
		"1", "-1", "3", "-3", "4294967295", "-4294967296",
		"123456789012345678901234567890", "-123456789012345678901234567890",
	}
	for _, s := range values {
		x := MustParse(s, 10)
		for k := uint(0); k < 128; k++ {
			l := x.Lsh(k)
			checkCanonical(t, l)
			if l.Big().Cmp(new(big.Int).Lsh(x.Big(), k)) != 0 {
				t.Fatalf("%s << %d = %s", s, k, l)
			}
			r := x.Rsh(k)
			checkCanonical(t, r)
			if r.Big().Cmp(new(big.Int).Rsh(x.Big(), k)) != 0 {
				t.Fatalf("%s >> %d = %s", s, k, r)
			}
			if !l.Rsh(k).Equal(x) {
				t.Fatalf("(%s << %d) >> %d != %s", s, k, k, s)
			}
		}
	}
}

func TestRshNegativeFloors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x    string
		k    uint
		want string
	}{
		{"-1", 1, "-1"},
		{"-1", 1000, "-1"},
		{"-3", 1, "-2"},
		{"-4", 1, "-2"},
		{"-5", 2, "-2"},
		{"-4294967296", 32, "-1"},
		{"-4294967297", 32, "-2"},
		{"7", 1000, "0"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.x, 10).Rsh(tt.k); got.String() != tt.want {
			t.Errorf("%s >> %d = %s, want %s", tt.x, tt.k, got, tt.want)
		}
	}
}

func TestBit(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0", "5", "-5", "-4294967296", "340282366920938463463374607431768211455"} {
		x := MustParse(s, 10)
		b := x.Big()
		for i := 0; i < 200; i++ {
			if got, want := x.Bit(i), b.Bit(i); got != want {
				t.Errorf("bit %d of %s = %d, want %d", i, s, got, want)
			}
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("Bit(-1) should panic")
		}
	}()
	One.Bit(-1)
}

func TestTrailingZeroBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x    string
		want uint
	}{
		{"0", 0},
		{"1", 0},
		{"-8", 3},
		{"4294967296", 32},
		{"-340282366920938463463374607431768211456", 128},
	}
	for _, tt := range tests {
		if got := MustParse(tt.x, 10).TrailingZeroBits(); got != tt.want {
			t.Errorf("TrailingZeroBits(%s) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestBitwise_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(defaultParameters(300))

	ops := []struct {
		name string
		got  func(x, y Int) Int
		want func(z, x, y *big.Int) *big.Int
	}{
		{"And", Int.And, (*big.Int).And},
		{"Or", Int.Or, (*big.Int).Or},
		{"Xor", Int.Xor, (*big.Int).Xor},
		{"AndNot", Int.AndNot, (*big.Int).AndNot},
	}
	for _, op := range ops {
		properties.Property(op.name+" matches math/big", prop.ForAll(
			func(x, y Int) bool {
				z := op.got(x, y)
				return isCanonical(z) && z.Big().Cmp(op.want(new(big.Int), x.Big(), y.Big())) == 0
			},
			genInt(), genInt(),
		))
	}

	properties.Property("x << k >> k == x", prop.ForAll(
		func(x Int, k uint) bool { return x.Lsh(k).Rsh(k).Equal(x) },
		genInt(), gen.UIntRange(0, 200),
	))

	properties.Property("x << k == x * 2^k", prop.ForAll(
		func(x Int, k uint) bool { return x.Lsh(k).Equal(x.Mul(One.Lsh(k))) },
		genInt(), gen.UIntRange(0, 200),
	))

	properties.Property("Rsh matches math/big", prop.ForAll(
		func(x Int, k uint) bool {
			return x.Rsh(k).Big().Cmp(new(big.Int).Rsh(x.Big(), k)) == 0
		},
		genInt(), gen.UIntRange(0, 200),
	))

	properties.TestingRun(t)
}
