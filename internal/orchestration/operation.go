package orchestration

import (
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/multiplier"
)

// Operation is a fully parsed request: an operation name, its integer
// operands and, for shifts, the bit count.
type Operation struct {
	Op    string
	X, Y  bigint.Int
	Shift uint
}

// ParseOperation parses the operand texts of op in the given radix.
// y is ignored for unary operations and shifts.
func ParseOperation(op, x, y string, radix int, shift uint) (Operation, error) {
	arity, ok := config.OpArity(op)
	if !ok {
		return Operation{}, apperrors.NewConfigError("unknown operation '%s'", op)
	}
	o := Operation{Op: op, Shift: shift}
	var err error
	if o.X, err = bigint.Parse(x, radix); err != nil {
		return Operation{}, err
	}
	if arity == 2 {
		if o.Y, err = bigint.Parse(y, radix); err != nil {
			return Operation{}, err
		}
	}
	return o, nil
}

// NewOperation builds the Operation described by cfg.
func NewOperation(cfg config.AppConfig) (Operation, error) {
	var shift uint
	if cfg.Op == "lsh" || cfg.Op == "rsh" {
		k, err := cfg.ShiftCount()
		if err != nil {
			return Operation{}, err
		}
		shift = k
	}
	return ParseOperation(cfg.Op, cfg.Left, cfg.Right, cfg.Radix, shift)
}

// UsesMultiplier reports whether the result depends on the multiplication
// strategy, which is what makes comparing strategies meaningful.
func (o Operation) UsesMultiplier() bool {
	return o.Op == "mul" || o.Op == "sqr"
}

// Labels names the values returned by Apply.
func (o Operation) Labels() []string {
	switch o.Op {
	case "divmod":
		return []string{"quotient", "modulus"}
	case "cmp":
		return []string{"comparison"}
	}
	return []string{"result"}
}

// MaxLimbs is the limb count of the larger operand.
func (o Operation) MaxLimbs() int {
	return max(o.X.Len(), o.Y.Len())
}

// String renders the operation in prefix form, e.g. "mul 12 34".
func (o Operation) String() string {
	arity, _ := config.OpArity(o.Op)
	switch {
	case o.Op == "lsh" || o.Op == "rsh":
		return fmt.Sprintf("%s %s %d", o.Op, o.X, o.Shift)
	case arity == 2:
		return fmt.Sprintf("%s %s %s", o.Op, o.X, o.Y)
	}
	return fmt.Sprintf("%s %s", o.Op, o.X)
}

// Apply evaluates the operation, using m for multiplications.
func (o Operation) Apply(m multiplier.Multiplier) ([]bigint.Int, error) {
	x, y := o.X, o.Y
	one := func(v bigint.Int) ([]bigint.Int, error) { return []bigint.Int{v}, nil }
	switch o.Op {
	case "add":
		return one(x.Add(y))
	case "sub":
		return one(x.Sub(y))
	case "mul":
		z, err := x.MulWith(y, m)
		if err != nil {
			return nil, err
		}
		return one(z)
	case "sqr":
		z, err := x.MulWith(x, m)
		if err != nil {
			return nil, err
		}
		return one(z)
	case "quo":
		q, err := x.Quo(y)
		if err != nil {
			return nil, err
		}
		return one(q)
	case "rem":
		r, err := x.Rem(y)
		if err != nil {
			return nil, err
		}
		return one(r)
	case "divmod":
		q, r, err := x.DivMod(y)
		if err != nil {
			return nil, err
		}
		return []bigint.Int{q, r}, nil
	case "and":
		return one(x.And(y))
	case "or":
		return one(x.Or(y))
	case "xor":
		return one(x.Xor(y))
	case "andnot":
		return one(x.AndNot(y))
	case "not":
		return one(x.Not())
	case "neg":
		return one(x.Neg())
	case "abs":
		return one(x.Abs())
	case "lsh":
		return one(x.Lsh(o.Shift))
	case "rsh":
		return one(x.Rsh(o.Shift))
	case "cmp":
		return one(bigint.FromInt64(int64(x.Cmp(y))))
	}
	return nil, apperrors.NewConfigError("unknown operation '%s'", o.Op)
}
