package bigint

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func TestDivideByZero(t *testing.T) {
	t.Parallel()
	x := FromLimbs([]uint32{1}, false)
	y := FromLimbs([]uint32{0}, false)

	calls := map[string]func() error{
		"Quo":    func() error { _, err := x.Quo(y); return err },
		"Rem":    func() error { _, err := x.Rem(y); return err },
		"QuoRem": func() error { _, _, err := x.QuoRem(y); return err },
		"DivMod": func() error { _, _, err := x.DivMod(y); return err },
	}
	for name, call := range calls {
		err := call()
		if !errors.Is(err, apperrors.ErrDivideByZero) {
			t.Errorf("%s: expected ErrDivideByZero, got %v", name, err)
		}
		var dz *apperrors.DivideByZeroError
		if !errors.As(err, &dz) {
			t.Errorf("%s: expected *DivideByZeroError", name)
		}
	}
	if _, err := Zero.Quo(Zero); !errors.Is(err, apperrors.ErrDivideByZero) {
		t.Error("0 / 0 must also fail")
	}
}

func TestTruncatedDivision(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y, q, r string
	}{
		{"7", "2", "3", "1"},
		{"-7", "2", "-3", "-1"},
		{"7", "-2", "-3", "1"},
		{"-7", "-2", "3", "-1"},
		{"1", "5", "0", "1"},
		{"-1", "5", "0", "-1"},
		{"0", "-5", "0", "0"},
		{"18446744073709551616", "4294967296", "4294967296", "0"},
		{"-18446744073709551617", "4294967296", "-4294967296", "-1"},
		{"121932631137021795226185032733622923332237463801111263526900", "987654321098765432109876543210", "123456789012345678901234567890", "0"},
		{"121932631137021795226185032733622923332237463801111263526901", "-987654321098765432109876543210", "-123456789012345678901234567890", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.x+"/"+tt.y, func(t *testing.T) {
			t.Parallel()
			x, y := MustParse(tt.x, 10), MustParse(tt.y, 10)
			q, r, err := x.QuoRem(y)
			if err != nil {
				t.Fatal(err)
			}
			checkCanonical(t, q)
			checkCanonical(t, r)
			if q.String() != tt.q || r.String() != tt.r {
				t.Errorf("QuoRem = (%s, %s), want (%s, %s)", q, r, tt.q, tt.r)
			}
		})
	}
}

func TestRemainderSignScenario(t *testing.T) {
	t.Parallel()
	r, err := MustParse("-7", 10).Rem(MustParse("2", 10))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsNegative() || r.Abs().CmpAbs(FromUint32(2)) >= 0 {
		t.Errorf("-7 %% 2 = %s, want a negative value with magnitude < 2", r)
	}
}

func TestDivMod(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y, q, m string
	}{
		{"7", "2", "3", "1"},
		{"-7", "2", "-4", "1"},
		{"7", "-2", "-3", "1"},
		{"-7", "-2", "4", "1"},
		{"-8", "2", "-4", "0"},
	}
	for _, tt := range tests {
		q, m, err := MustParse(tt.x, 10).DivMod(MustParse(tt.y, 10))
		if err != nil {
			t.Fatal(err)
		}
		if q.String() != tt.q || m.String() != tt.m {
			t.Errorf("DivMod(%s, %s) = (%s, %s), want (%s, %s)", tt.x, tt.y, q, m, tt.q, tt.m)
		}
	}
}

// Divisors whose second limb forces the qhat refinement and add-back paths.
func TestKnuthCorrectionPaths(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		n := 2 + r.Intn(6)
		v := make([]uint32, n)
		for j := range v {
			v[j] = r.Uint32()
		}
		v[n-1] = 0x80000000 | uint32(r.Intn(4))
		v[n-2] = 0xffffffff - uint32(r.Intn(3))
		u := make([]uint32, n+1+r.Intn(6))
		for j := range u {
			u[j] = r.Uint32()
		}
		x, y := FromLimbs(u, r.Intn(2) == 0), FromLimbs(v, r.Intn(2) == 0)
		q, rem, err := x.QuoRem(y)
		if err != nil {
			t.Fatal(err)
		}
		wq, wr := new(big.Int).QuoRem(x.Big(), y.Big(), new(big.Int))
		if q.Big().Cmp(wq) != 0 || rem.Big().Cmp(wr) != 0 {
			t.Fatalf("QuoRem(%s, %s) = (%s, %s), want (%s, %s)", x, y, q, rem, wq, wr)
		}
	}
}

func TestDivision_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(defaultParameters(300))

	properties.Property("QuoRem matches math/big", prop.ForAll(
		func(x, y Int) bool {
			if y.IsZero() {
				return true
			}
			q, r, err := x.QuoRem(y)
			if err != nil || !isCanonical(q) || !isCanonical(r) {
				return false
			}
			wq, wr := new(big.Int).QuoRem(x.Big(), y.Big(), new(big.Int))
			return q.Big().Cmp(wq) == 0 && r.Big().Cmp(wr) == 0
		},
		genInt(), genInt(),
	))

	properties.Property("q*y + r == x and |r| < |y|", prop.ForAll(
		func(x, y Int) bool {
			if y.IsZero() {
				return true
			}
			q, r, _ := x.QuoRem(y)
			return q.Mul(y).Add(r).Equal(x) &&
				r.CmpAbs(y) < 0 &&
				(r.IsZero() || r.IsNegative() == x.IsNegative())
		},
		genInt(), genInt(),
	))

	properties.Property("DivMod matches math/big Div/Mod", prop.ForAll(
		func(x, y Int) bool {
			if y.IsZero() {
				return true
			}
			q, m, err := x.DivMod(y)
			if err != nil {
				return false
			}
			wq, wm := new(big.Int).DivMod(x.Big(), y.Big(), new(big.Int))
			return q.Big().Cmp(wq) == 0 && m.Big().Cmp(wm) == 0
		},
		genInt(), genInt(),
	))

	properties.TestingRun(t)
}
