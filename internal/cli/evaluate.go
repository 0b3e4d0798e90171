package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// infixOperators maps operator symbols to operation names.
var infixOperators = map[string]string{
	"+":   "add",
	"-":   "sub",
	"*":   "mul",
	"/":   "quo",
	"%":   "rem",
	"&":   "and",
	"|":   "or",
	"^":   "xor",
	"&^":  "andnot",
	"<<":  "lsh",
	">>":  "rsh",
	"<=>": "cmp",
}

// ParseExpression reads a one-line expression in either form:
//
//	<x> <operator> <y>     e.g. "12 * 34", "ff << 8", "7 divmod -2"
//	<op> <x> [y]           e.g. "mul 12 34", "neg 5", "rsh -9 1"
//
// Tokens are separated by whitespace. Operands are read in radix; shift
// counts are always decimal.
func ParseExpression(expr string, radix int) (orchestration.Operation, error) {
	tokens := strings.Fields(expr)
	if len(tokens) == 0 {
		return orchestration.Operation{}, apperrors.NewConfigError("empty expression")
	}

	op := strings.ToLower(tokens[0])
	var x, y string
	if _, ok := config.OpArity(op); ok {
		if len(tokens) < 2 {
			return orchestration.Operation{}, apperrors.NewConfigError("'%s' needs an operand", op)
		}
		x = tokens[1]
		if len(tokens) > 2 {
			y = tokens[2]
		}
		if len(tokens) > 3 {
			return orchestration.Operation{}, apperrors.NewConfigError("too many operands in %q", expr)
		}
	} else {
		if len(tokens) != 3 {
			return orchestration.Operation{}, apperrors.NewConfigError("cannot read %q: expected '<x> <operator> <y>' or '<op> <x> [y]'", expr)
		}
		x, y = tokens[0], tokens[2]
		sym := strings.ToLower(tokens[1])
		if name, ok := infixOperators[sym]; ok {
			op = name
		} else if arity, ok := config.OpArity(sym); ok && (arity == 2 || sym == "lsh" || sym == "rsh") {
			op = sym
		} else {
			return orchestration.Operation{}, apperrors.NewConfigError("unknown operator '%s'", tokens[1])
		}
	}

	arity, _ := config.OpArity(op)
	var shift uint
	switch {
	case op == "lsh" || op == "rsh":
		if y == "" {
			return orchestration.Operation{}, apperrors.NewConfigError("'%s' needs a shift count", op)
		}
		k, err := strconv.ParseUint(y, 10, 32)
		if err != nil {
			return orchestration.Operation{}, apperrors.NewConfigError("invalid shift count '%s'", y)
		}
		shift = uint(k)
		y = ""
	case arity == 2 && y == "":
		return orchestration.Operation{}, apperrors.NewConfigError("'%s' needs two operands", op)
	case arity == 1 && y != "":
		return orchestration.Operation{}, apperrors.NewConfigError("'%s' takes a single operand", op)
	}
	return orchestration.ParseOperation(op, x, y, radix, shift)
}

// Evaluate parses expr and evaluates it with m under ctx. It is shared by
// the REPL and the TUI.
func Evaluate(ctx context.Context, expr string, radix int, m multiplier.Multiplier) (orchestration.Operation, orchestration.CalculationResult, error) {
	op, err := ParseExpression(expr, radix)
	if err != nil {
		return orchestration.Operation{}, orchestration.CalculationResult{}, err
	}
	results := orchestration.Execute(ctx, []multiplier.Multiplier{m}, op, orchestration.NullProgressReporter{}, io.Discard)
	return op, results[0], results[0].Err
}
