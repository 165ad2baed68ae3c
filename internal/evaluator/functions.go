package evaluator

import (
	"fmt"
	"math"

	"go-calculator/internal/calcerr"
)

// AngleMode selects how trigonometric functions interpret angles.
type AngleMode string

const (
	Degrees AngleMode = "deg"
	Radians AngleMode = "rad"
)

// ParseAngleMode defaults to radians for an empty string.
func ParseAngleMode(s string) (AngleMode, error) {
	switch AngleMode(s) {
	case "", Radians:
		return Radians, nil
	case Degrees:
		return Degrees, nil
	}
	return "", fmt.Errorf("%w: unknown angle mode %q", calcerr.ErrInvalidInput, s)
}

func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

func (m AngleMode) in(v float64) float64 {
	if m == Degrees {
		return DegToRad(v)
	}
	return v
}

func (m AngleMode) out(v float64) float64 {
	if m == Degrees {
		return RadToDeg(v)
	}
	return v
}

func Sin(v float64, m AngleMode) float64 { return math.Sin(m.in(v)) }

func Cos(v float64, m AngleMode) float64 { return math.Cos(m.in(v)) }

func Tan(v float64, m AngleMode) float64 { return math.Tan(m.in(v)) }

func Asin(v float64, m AngleMode) float64 { return m.out(math.Asin(v)) }

func Acos(v float64, m AngleMode) float64 { return m.out(math.Acos(v)) }

func Atan(v float64, m AngleMode) float64 { return m.out(math.Atan(v)) }

// maxFactorial is the largest n whose factorial is finite in float64.
const maxFactorial = 170

// Factorial is defined for non-negative integers only.
func Factorial(n float64) (float64, error) {
	if n < 0 || n != math.Trunc(n) || math.IsNaN(n) {
		return 0, fmt.Errorf("%w: factorial requires a non-negative integer, got %g", calcerr.ErrDomain, n)
	}
	if n > maxFactorial {
		return math.Inf(1), nil
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result, nil
}
