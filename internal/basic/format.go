package basic

import (
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatNumber renders f with the shortest decimal digits that round-trip,
// never in exponent form. Non-finite values render as NaN, Infinity and
// -Infinity.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return decimal.NewFromFloat(f).String()
}

// parseNumber reads an entry leniently: "5." is 5, and anything that is not
// a number ("", "-", "NaN") is NaN.
func parseNumber(s string) float64 {
	switch s {
	case "Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}
