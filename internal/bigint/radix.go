package bigint

import (
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/internal/arith"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const (
	// MinRadix is the smallest radix accepted by Parse and Text.
	MinRadix = 2
	// MaxRadix is the largest radix accepted by Parse and Text, using
	// digits 0-9 then letters a-z.
	MaxRadix = 36
)

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// radixChunk is the largest power of a radix that fits in one limb, and the
// number of digits it spans.
type radixChunk struct {
	base   uint32
	digits int
}

var radixChunks = func() (t [MaxRadix + 1]radixChunk) {
	for r := MinRadix; r <= MaxRadix; r++ {
		base, n := uint64(r), 1
		for base*uint64(r) <= 1<<32-1 {
			base *= uint64(r)
			n++
		}
		t[r] = radixChunk{base: uint32(base), digits: n}
	}
	return t
}()

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return MaxRadix
}

// Parse converts text in the given radix (2..36) into an Int. An optional
// leading '-' or '+' is accepted; digits above 9 are case-insensitive letters.
// Empty input, a lone sign, an unsupported radix or a character outside the
// radix alphabet yield an *apperrors.FormatError.
func Parse(text string, radix int) (Int, error) {
	if radix < MinRadix || radix > MaxRadix {
		return Int{}, apperrors.NewFormatError(text, radix, -1, "unsupported radix")
	}
	if text == "" {
		return Int{}, apperrors.NewFormatError(text, radix, -1, "empty string")
	}
	neg := false
	start := 0
	switch text[0] {
	case '-':
		neg, start = true, 1
	case '+':
		start = 1
	}
	if start == len(text) {
		return Int{}, apperrors.NewFormatError(text, radix, start, "missing digits")
	}

	chunk := radixChunks[radix]
	var mag []uint32
	var word uint32
	var mult uint32 = 1
	flush := func() {
		z := make([]uint32, len(mag)+1)
		z[len(mag)] = arith.MulAddVWW(z[:len(mag)], mag, mult, word)
		mag = arith.Norm(z)
		word, mult = 0, 1
	}
	for i := start; i < len(text); i++ {
		d := digitValue(text[i])
		if d >= radix {
			return Int{}, apperrors.NewFormatError(text, radix, i, fmt.Sprintf("invalid digit %q", text[i]))
		}
		word = word*uint32(radix) + uint32(d)
		mult *= uint32(radix)
		if mult == chunk.base {
			flush()
		}
	}
	if mult != 1 {
		flush()
	}
	return fromMag(mag, neg), nil
}

// MustParse is like Parse but panics on error. Intended for constants and
// tests.
func MustParse(text string, radix int) Int {
	x, err := Parse(text, radix)
	if err != nil {
		panic(err)
	}
	return x
}

// Text returns x in the given radix using lowercase letters for digits above
// 9. It panics if radix is outside 2..36, like strconv.FormatInt.
func (x Int) Text(radix int) string {
	if radix < MinRadix || radix > MaxRadix {
		panic(fmt.Sprintf("bigint: invalid radix %d", radix))
	}
	if x.IsZero() {
		return "0"
	}
	chunk := radixChunks[radix]

	q := append([]uint32(nil), x.mag()...)
	// Digits are produced least significant first.
	out := make([]byte, 0, x.BitLen()/bitsPerDigitFloor(radix)+2)
	for len(q) > 0 {
		rem := arith.DivWVW(q, 0, q, chunk.base)
		q = arith.Norm(q)
		for i := 0; i < chunk.digits && (len(q) > 0 || rem != 0); i++ {
			out = append(out, digitChars[rem%uint32(radix)])
			rem /= uint32(radix)
		}
	}
	if x.neg {
		out = append(out, '-')
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func bitsPerDigitFloor(radix int) int {
	n := 0
	for r := radix; r > 1; r >>= 1 {
		n++
	}
	return n
}

// String returns the decimal representation of x.
func (x Int) String() string { return x.Text(10) }

// Format implements fmt.Formatter. It supports %d %s %v (decimal), %b, %o,
// %x and %X, the '+' and ' ' sign flags, '#' prefixes, width and the '0'
// padding flag.
func (x Int) Format(s fmt.State, verb rune) {
	var radix int
	var prefix string
	switch verb {
	case 'd', 's', 'v':
		radix = 10
	case 'b':
		radix, prefix = 2, "0b"
	case 'o':
		radix, prefix = 8, "0"
	case 'x':
		radix, prefix = 16, "0x"
	case 'X':
		radix, prefix = 16, "0X"
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", verb, x.String())
		return
	}

	digits := x.Abs().Text(radix)
	if verb == 'X' {
		digits = strings.ToUpper(digits)
	}
	sign := ""
	switch {
	case x.neg:
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}
	if !s.Flag('#') {
		prefix = ""
	}

	body := sign + prefix + digits
	if width, ok := s.Width(); ok && len(body) < width {
		pad := width - len(body)
		switch {
		case s.Flag('-'):
			body += strings.Repeat(" ", pad)
		case s.Flag('0'):
			body = sign + prefix + strings.Repeat("0", pad) + digits
		default:
			body = strings.Repeat(" ", pad) + body
		}
	}
	fmt.Fprint(s, body)
}
