// Package calcerr defines the failure taxonomy shared by the calculation
// engines. Engines wrap these sentinels with context, so callers match with
// errors.Is.
package calcerr

import "errors"

var (
	// ErrDivisionByZero is returned by "/" with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain is returned when an operand is outside a function's domain,
	// e.g. the square root of a negative number.
	ErrDomain = errors.New("domain error")

	// ErrInvalidBase is returned for a radix outside binary/octal/decimal/hexadecimal.
	ErrInvalidBase = errors.New("invalid base")

	// ErrInvalidDigit is returned when a digit is outside the radix alphabet.
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrInvalidBitWidth is returned when a rotate width is outside 1..32.
	ErrInvalidBitWidth = errors.New("invalid bit width")

	// ErrEvaluation is returned when an expression is malformed or unsafe.
	ErrEvaluation = errors.New("evaluation error")

	// ErrInvalidInput is returned by input validators.
	ErrInvalidInput = errors.New("invalid input")
)

// IsUserError reports whether err belongs to the calculation taxonomy, as
// opposed to an infrastructure failure such as a storage write.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrDivisionByZero, ErrDomain, ErrInvalidBase, ErrInvalidDigit,
		ErrInvalidBitWidth, ErrEvaluation, ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
