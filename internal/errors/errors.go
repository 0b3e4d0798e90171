package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between multiplication strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors for the arithmetic engine. The typed errors below unwrap to
// these so callers can test with errors.Is without caring about details.
var (
	// ErrFormat is reported for any malformed digit string or unsupported radix.
	ErrFormat = errors.New("invalid number format")
	// ErrDivideByZero is reported by division and modulo with a zero divisor.
	ErrDivideByZero = errors.New("division by zero")
	// ErrPrecision is reported when an FFT product could not be recovered exactly.
	ErrPrecision = errors.New("fft precision exceeded")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause, together with the name of the strategy that produced it.
type CalculationError struct {
	// Strategy is the multiplier or operation that failed, if known.
	Strategy string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string {
	if e.Strategy == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is match context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// FormatError is returned when a digit string cannot be parsed in the
// requested radix: empty input, a character outside the radix alphabet,
// or a radix outside [2, 36].
type FormatError struct {
	// Input is the text being parsed.
	Input string
	// Radix is the requested radix.
	Radix int
	// Pos is the byte offset of the offending character, or -1.
	Pos int
	// Reason is a short description of the failure.
	Reason string
}

// Error returns a formatted message describing the parse failure.
func (e *FormatError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("invalid number %q (radix %d): %s at offset %d", e.Input, e.Radix, e.Reason, e.Pos)
	}
	return fmt.Sprintf("invalid number %q (radix %d): %s", e.Input, e.Radix, e.Reason)
}

// Unwrap returns ErrFormat.
func (e *FormatError) Unwrap() error { return ErrFormat }

// NewFormatError builds a FormatError.
func NewFormatError(input string, radix, pos int, reason string) error {
	return &FormatError{Input: input, Radix: radix, Pos: pos, Reason: reason}
}

// DivideByZeroError is returned by division and modulo when the divisor's
// magnitude is empty. No partial result is ever produced alongside it.
type DivideByZeroError struct {
	// Op names the operation ("quo", "rem", "divmod").
	Op string
}

// Error returns a formatted message naming the operation.
func (e *DivideByZeroError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrDivideByZero)
}

// Unwrap returns ErrDivideByZero.
func (e *DivideByZeroError) Unwrap() error { return ErrDivideByZero }

// PrecisionError is returned by the FFT strategy when the floating-point
// convolution cannot be proven (or observed) to round to the exact product.
type PrecisionError struct {
	// Strategy is the name of the multiplier that gave up.
	Strategy string
	// Length is the convolution length (number of small-radix digits).
	Length int
	// MaxError is the observed distance to the nearest integer, or 0 when the
	// operand was rejected before transforming.
	MaxError float64
}

// Error returns a formatted message describing the precision failure.
func (e *PrecisionError) Error() string {
	if e.MaxError > 0 {
		return fmt.Sprintf("%s: %v (length %d, rounding error %.3g)", e.Strategy, ErrPrecision, e.Length, e.MaxError)
	}
	return fmt.Sprintf("%s: %v (length %d exceeds safe bound)", e.Strategy, ErrPrecision, e.Length)
}

// Unwrap returns ErrPrecision.
func (e *PrecisionError) Unwrap() error { return ErrPrecision }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
