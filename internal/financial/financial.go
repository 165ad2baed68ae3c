// Package financial implements standard time-value-of-money formulas.
//
// Rates are annual percentages (5 means 5%). Loan and annuity formulas use
// monthly periods. Nothing here validates its inputs; see Validate.
package financial

import "math"

// DefaultCompoundingFrequency is monthly compounding.
const DefaultCompoundingFrequency = 12

// LoanPayment returns the monthly payment that amortizes principal over years.
func LoanPayment(principal, annualRate, years float64) float64 {
	r := annualRate / 100 / 12
	n := years * 12
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// CompoundInterest returns the interest earned, excluding the principal.
func CompoundInterest(principal, annualRate, years, frequency float64) float64 {
	return FutureValue(principal, annualRate, years, frequency) - principal
}

func FutureValue(principal, annualRate, years, frequency float64) float64 {
	rate := annualRate / 100
	return principal * math.Pow(1+rate/frequency, frequency*years)
}

func SimpleInterest(principal, annualRate, years float64) float64 {
	return principal * annualRate * years / 100
}

// ROI returns the return on investment as a percentage.
func ROI(initial, final float64) float64 {
	return (final - initial) / initial * 100
}

// StraightLineDepreciation returns the constant yearly depreciation.
func StraightLineDepreciation(cost, salvage, usefulLife float64) float64 {
	return (cost - salvage) / usefulLife
}

// DecliningBalanceDepreciation returns the depreciation charged in the given
// year (1-based) at a fixed percentage rate.
func DecliningBalanceDepreciation(cost, rate, year float64) float64 {
	return cost * math.Pow(1-rate/100, year-1) * (rate / 100)
}

// PresentValue discounts futureValue with yearly compounding.
func PresentValue(futureValue, annualRate, years float64) float64 {
	return futureValue / math.Pow(1+annualRate/100, years)
}

// AnnuityFutureValue is the value of monthly payments at the end of the term.
func AnnuityFutureValue(payment, annualRate, years float64) float64 {
	r := annualRate / 100 / 12
	n := years * 12
	if r == 0 {
		return payment * n
	}
	return payment * (math.Pow(1+r, n) - 1) / r
}

// AnnuityPresentValue is the value today of monthly payments.
func AnnuityPresentValue(payment, annualRate, years float64) float64 {
	r := annualRate / 100 / 12
	n := years * 12
	if r == 0 {
		return payment * n
	}
	return payment * (1 - math.Pow(1+r, -n)) / r
}

// BreakEvenUnits returns the number of units needed to cover fixed costs.
func BreakEvenUnits(fixedCosts, pricePerUnit, variableCostPerUnit float64) float64 {
	return fixedCosts / (pricePerUnit - variableCostPerUnit)
}

// NPV discounts cashFlows, the first of which arrives one period after the
// initial investment.
func NPV(initialInvestment float64, cashFlows []float64, discountRate float64) float64 {
	rate := discountRate / 100
	npv := -initialInvestment
	for i, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(i+1))
	}
	return npv
}
