package financial

import (
	"errors"
	"math"
	"testing"

	"go-calculator/internal/calcerr"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if tol == 0 {
		tol = 1e-9
	}
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: expected %.6f, got %.6f", name, want, got)
	}
}

func TestFormulas(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{name: "straight line", got: StraightLineDepreciation(50000, 5000, 10), want: 4500},
		{name: "roi", got: ROI(10000, 12000), want: 20},
		{name: "zero-rate loan", got: LoanPayment(12000, 0, 2), want: 500},
		{name: "loan", got: LoanPayment(200000, 6, 30), want: 1199.10, tol: 0.01},
		{name: "simple interest", got: SimpleInterest(1000, 5, 2), want: 100},
		{name: "compound interest yearly", got: CompoundInterest(1000, 10, 2, 1), want: 210, tol: 1e-9},
		{name: "future value monthly", got: FutureValue(1000, 12, 1, 12), want: 1126.825, tol: 0.001},
		{name: "present value", got: PresentValue(1210, 10, 2), want: 1000, tol: 1e-9},
		{name: "declining balance year 1", got: DecliningBalanceDepreciation(10000, 20, 1), want: 2000, tol: 1e-9},
		{name: "declining balance year 2", got: DecliningBalanceDepreciation(10000, 20, 2), want: 1600, tol: 1e-9},
		{name: "zero-rate annuity fv", got: AnnuityFutureValue(100, 0, 1), want: 1200},
		{name: "zero-rate annuity pv", got: AnnuityPresentValue(100, 0, 1), want: 1200},
		{name: "annuity fv", got: AnnuityFutureValue(100, 12, 1), want: 1268.25, tol: 0.01},
		{name: "annuity pv", got: AnnuityPresentValue(100, 12, 1), want: 1125.51, tol: 0.01},
		{name: "break even", got: BreakEvenUnits(10000, 50, 30), want: 500},
		{name: "npv", got: NPV(1000, []float64{500, 500, 500}, 10), want: 243.43, tol: 0.01},
		{name: "npv no flows", got: NPV(1000, nil, 10), want: -1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			approx(t, tc.name, tc.got, tc.want, tc.tol)
		})
	}
}

func TestFormulasDoNotValidate(t *testing.T) {
	got := SimpleInterest(1000, 5, -2)
	if got != -100 {
		t.Fatalf("expected negative years to compute as-is, got %g", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		field   string
		value   float64
		wantErr bool
	}{
		{field: "principal", value: 1000},
		{field: "principal", value: -1, wantErr: true},
		{field: "Years", value: -1},
		{field: "rate", value: -2},
		{field: "rate", value: 101, wantErr: true},
		{field: "payment", value: math.NaN(), wantErr: true},
		{field: "payment", value: math.Inf(1), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			err := Validate(tc.field, tc.value)
			if tc.wantErr {
				if !errors.Is(err, calcerr.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRoundCents(t *testing.T) {
	if got := RoundCents(1199.1010503); got != 1199.10 {
		t.Fatalf("expected 1199.10, got %g", got)
	}
	if got := RoundCents(2.675); got != 2.68 {
		t.Fatalf("expected 2.68, got %g", got)
	}
	if got := RoundCents(math.Inf(1)); !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf to pass through, got %g", got)
	}
}
