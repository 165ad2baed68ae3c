package basic

import (
	"errors"
	"strings"
	"testing"

	"go-calculator/internal/calcerr"

	"pgregory.net/rapid"
)

func enter(e *Engine, digits string) {
	for _, d := range digits {
		e.InputDigit(string(d))
	}
}

func mustOperate(t *testing.T, e *Engine, op Operator) string {
	t.Helper()
	got, err := e.PerformOperation(op)
	if err != nil {
		t.Fatalf("operation %q: %v", op, err)
	}
	return got
}

func TestInputDigitConcatenates(t *testing.T) {
	e := NewEngine()

	if got := e.InputDigit("5"); got != "5" {
		t.Fatalf("expected %q, got %q", "5", got)
	}
	if got := e.InputDigit("7"); got != "57" {
		t.Fatalf("expected %q, got %q", "57", got)
	}
}

func TestInputDigitCollapsesLeadingZeros(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		digits := rapid.SliceOfN(rapid.IntRange(0, 9), 1, 15).Draw(rt, "digits")

		e := NewEngine()
		var sb strings.Builder
		for _, d := range digits {
			s := string(rune('0' + d))
			sb.WriteString(s)
			e.InputDigit(s)
		}

		want := strings.TrimLeft(sb.String(), "0")
		if want == "" {
			want = "0"
		}
		if got := e.CurrentValue(); got != want {
			rt.Fatalf("digits %v: expected %q, got %q", digits, want, got)
		}
	})
}

func TestInputDecimal(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
		want  string
	}{
		{name: "fresh engine", setup: func(e *Engine) {}, want: "0."},
		{name: "after digit", setup: func(e *Engine) { e.InputDigit("5") }, want: "5."},
		{name: "idempotent", setup: func(e *Engine) { e.InputDigit("5"); e.InputDecimal(); e.InputDecimal() }, want: "5."},
		{name: "after operator", setup: func(e *Engine) { e.InputDigit("5"); _, _ = e.PerformOperation(Add) }, want: "0."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine()
			tc.setup(e)
			if got := e.InputDecimal(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPerformOperationFoldsLeftToRight(t *testing.T) {
	tests := []struct {
		name string
		keys []any
		want string
	}{
		{name: "addition", keys: []any{"5", Add, "3", Equals}, want: "8"},
		{name: "chained addition", keys: []any{"5", Add, "3", Add, "2", Equals}, want: "10"},
		{name: "no precedence", keys: []any{"5", Add, "3", Multiply, "2", Equals}, want: "16"},
		{name: "negative result", keys: []any{"3", Subtract, "10", Equals}, want: "-7"},
		{name: "multiply by zero", keys: []any{"5", Multiply, "0", Equals}, want: "0"},
		{name: "division", keys: []any{"15", Divide, "3", Equals}, want: "5"},
		{name: "fractional division", keys: []any{"1", Divide, "4", Equals}, want: "0.25"},
		{name: "modulo", keys: []any{"10", Modulo, "3", Equals}, want: "1"},
		{name: "new entry after equals", keys: []any{"5", Add, "3", Equals, "2", Add, "4", Equals}, want: "6"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine()
			var got string
			for _, k := range tc.keys {
				switch v := k.(type) {
				case string:
					enter(e, v)
				case Operator:
					got = mustOperate(t, e, v)
				}
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDivisionByZeroThenClear(t *testing.T) {
	e := NewEngine()
	enter(e, "10")
	mustOperate(t, e, Divide)
	enter(e, "0")

	_, err := e.PerformOperation(Equals)
	if !errors.Is(err, calcerr.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}

	if got := e.Clear(); got != "0" {
		t.Fatalf("expected %q after clear, got %q", "0", got)
	}
	if got := e.State(); got != (State{Current: "0"}) {
		t.Fatalf("expected initial state after clear, got %+v", got)
	}
}

func TestClearEntryKeepsPendingOperation(t *testing.T) {
	e := NewEngine()
	enter(e, "5")
	mustOperate(t, e, Add)
	enter(e, "9")

	if got := e.ClearEntry(); got != "0" {
		t.Fatalf("expected %q, got %q", "0", got)
	}

	enter(e, "3")
	if got := mustOperate(t, e, Equals); got != "8" {
		t.Fatalf("expected %q, got %q", "8", got)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		a, b float64
		op   Operator
		want float64
	}{
		{a: 2, b: 3, op: Add, want: 5},
		{a: 2, b: 3, op: Subtract, want: -1},
		{a: 2, b: 3, op: Multiply, want: 6},
		{a: 2, b: 3, op: "×", want: 6},
		{a: 3, b: 2, op: Divide, want: 1.5},
		{a: -7, b: 3, op: Modulo, want: -1},
		{a: 7, b: -3, op: Modulo, want: 1},
		{a: 2, b: 3, op: "^", want: 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.op), func(t *testing.T) {
			got, err := Calculate(tc.a, tc.b, tc.op)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("%g %s %g: expected %g, got %g", tc.a, tc.op, tc.b, tc.want, got)
			}
		})
	}
}

func TestUnaryTransforms(t *testing.T) {
	e := NewEngine()
	enter(e, "16")
	got, err := e.SquareRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "4" {
		t.Fatalf("expected %q, got %q", "4", got)
	}

	if got := e.Square(); got != "16" {
		t.Fatalf("expected %q, got %q", "16", got)
	}
	if got := e.Percentage(); got != "0.16" {
		t.Fatalf("expected %q, got %q", "0.16", got)
	}
	if got := e.Negate(); got != "-0.16" {
		t.Fatalf("expected %q, got %q", "-0.16", got)
	}
}

func TestSquareRootOfNegative(t *testing.T) {
	e := NewEngine()
	enter(e, "5")
	e.Negate()

	_, err := e.SquareRoot()
	if !errors.Is(err, calcerr.ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
}

func TestUnaryTransformsLeavePendingState(t *testing.T) {
	e := NewEngine()
	enter(e, "5")
	mustOperate(t, e, Add)
	e.Square()

	st := e.State()
	if st.Operator != Add || st.Previous != "5" || !st.AwaitingNewEntry {
		t.Fatalf("expected pending 5 + with awaiting flag, got %+v", st)
	}

	enter(e, "3")
	if got := mustOperate(t, e, Equals); got != "8" {
		t.Fatalf("expected %q, got %q", "8", got)
	}
}

func TestExpression(t *testing.T) {
	e := NewEngine()
	enter(e, "12")
	if got := e.Expression(); got != "12" {
		t.Fatalf("expected %q, got %q", "12", got)
	}

	mustOperate(t, e, Multiply)
	enter(e, "3")
	if got := e.Expression(); got != "12 * 3" {
		t.Fatalf("expected %q, got %q", "12 * 3", got)
	}

	mustOperate(t, e, Equals)
	if got := e.Expression(); got != "36" {
		t.Fatalf("expected %q, got %q", "36", got)
	}
}

func TestParseOperator(t *testing.T) {
	if op, err := ParseOperator("÷"); err != nil || op != Divide {
		t.Fatalf("expected Divide, got %q (%v)", op, err)
	}
	if _, err := ParseOperator("^"); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
