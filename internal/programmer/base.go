// Package programmer implements base conversion and fixed-width bitwise
// operations for the programmer calculator mode.
//
// All bitwise operations use 32-bit two's-complement semantics: values are
// int32, shift counts are taken modulo 32, and rotates work on an explicit
// window of 1..32 bits.
package programmer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-calculator/internal/calcerr"
)

// Base names a supported radix.
type Base string

const (
	Binary      Base = "binary"
	Octal       Base = "octal"
	Decimal     Base = "decimal"
	Hexadecimal Base = "hexadecimal"
)

// Bases lists the supported bases in ascending radix order.
var Bases = []Base{Binary, Octal, Decimal, Hexadecimal}

// Radix returns the numeric radix for b.
func (b Base) Radix() (int, error) {
	switch b {
	case Binary:
		return 2, nil
	case Octal:
		return 8, nil
	case Decimal:
		return 10, nil
	case Hexadecimal:
		return 16, nil
	}
	return 0, fmt.Errorf("%w: %q", calcerr.ErrInvalidBase, string(b))
}

// Parse reads value as a signed integer in base b.
func Parse(value string, b Base) (int64, error) {
	radix, err := b.Radix()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), radix, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q overflows 64 bits", calcerr.ErrInvalidDigit, value)
		}
		return 0, fmt.Errorf("%w: %q is not a %s number", calcerr.ErrInvalidDigit, value, b)
	}
	return n, nil
}

// Format renders n in base b. Hexadecimal output is upper-case.
func Format(n int64, b Base) (string, error) {
	radix, err := b.Radix()
	if err != nil {
		return "", err
	}
	s := strconv.FormatInt(n, radix)
	if b == Hexadecimal {
		s = strings.ToUpper(s)
	}
	return s, nil
}

// ConvertBase re-renders value from one base into another.
func ConvertBase(value string, from, to Base) (string, error) {
	if _, err := to.Radix(); err != nil {
		return "", err
	}
	n, err := Parse(value, from)
	if err != nil {
		return "", err
	}
	return Format(n, to)
}

// ConvertAll renders value in every supported base.
func ConvertAll(value string, from Base) (map[Base]string, error) {
	n, err := Parse(value, from)
	if err != nil {
		return nil, err
	}
	out := make(map[Base]string, len(Bases))
	for _, b := range Bases {
		// Radix is known valid for every entry in Bases.
		out[b], _ = Format(n, b)
	}
	return out, nil
}

// ValidDigit reports whether the single character digit belongs to b's
// alphabet. Hexadecimal accepts either case.
func ValidDigit(digit string, b Base) (bool, error) {
	radix, err := b.Radix()
	if err != nil {
		return false, err
	}
	if len(digit) != 1 {
		return false, nil
	}
	_, err = strconv.ParseUint(digit, radix, 8)
	return err == nil, nil
}
