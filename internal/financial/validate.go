package financial

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"go-calculator/internal/calcerr"
)

// MaxRate is the highest annual rate Validate accepts.
const MaxRate = 100

// Validate checks a named input before it reaches a formula. Only "years"
// and "rate" fields may be negative.
func Validate(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be a valid number", calcerr.ErrInvalidInput, field)
	}

	name := strings.ToLower(field)
	if value < 0 && name != "years" && name != "rate" {
		return fmt.Errorf("%w: %s cannot be negative", calcerr.ErrInvalidInput, field)
	}
	if name == "rate" && value > MaxRate {
		return fmt.Errorf("%w: interest rate seems unusually high (>%d%%)", calcerr.ErrInvalidInput, MaxRate)
	}
	return nil
}

// RoundCents rounds a result to two decimal places for display. Non-finite
// values pass through unchanged.
func RoundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
