package programmer

import (
	"errors"
	"strconv"
	"testing"

	"go-calculator/internal/calcerr"

	"pgregory.net/rapid"
)

func TestConvertBase(t *testing.T) {
	tests := []struct {
		value    string
		from, to Base
		want     string
	}{
		{value: "255", from: Decimal, to: Hexadecimal, want: "FF"},
		{value: "ff", from: Hexadecimal, to: Binary, want: "11111111"},
		{value: "777", from: Octal, to: Decimal, want: "511"},
		{value: "1010", from: Binary, to: Octal, want: "12"},
		{value: "-10", from: Decimal, to: Binary, want: "-1010"},
		{value: "0", from: Decimal, to: Hexadecimal, want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.value+"_"+string(tc.to), func(t *testing.T) {
			got, err := ConvertBase(tc.value, tc.from, tc.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestConvertBaseRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.Int64Range(0, 1<<31-1).Draw(rt, "n")
		b := rapid.SampledFrom(Bases).Draw(rt, "base")

		dec := strconv.FormatInt(n, 10)
		there, err := ConvertBase(dec, Decimal, b)
		if err != nil {
			rt.Fatalf("to %s: %v", b, err)
		}
		back, err := ConvertBase(there, b, Decimal)
		if err != nil {
			rt.Fatalf("from %s: %v", b, err)
		}
		if back != dec {
			rt.Fatalf("round trip through %s: expected %q, got %q (via %q)", b, dec, back, there)
		}
	})
}

func TestConvertBaseErrors(t *testing.T) {
	if _, err := ConvertBase("12", Decimal, Base("base64")); !errors.Is(err, calcerr.ErrInvalidBase) {
		t.Fatalf("expected ErrInvalidBase for target, got %v", err)
	}
	if _, err := ConvertBase("12", Base("ternary"), Decimal); !errors.Is(err, calcerr.ErrInvalidBase) {
		t.Fatalf("expected ErrInvalidBase for source, got %v", err)
	}
	if _, err := ConvertBase("102", Binary, Decimal); !errors.Is(err, calcerr.ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
	if _, err := ConvertBase("", Decimal, Binary); !errors.Is(err, calcerr.ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit for empty input, got %v", err)
	}
}

func TestConvertAll(t *testing.T) {
	got, err := ConvertAll("42", Decimal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[Base]string{Binary: "101010", Octal: "52", Decimal: "42", Hexadecimal: "2A"}
	for b, w := range want {
		if got[b] != w {
			t.Fatalf("%s: expected %q, got %q", b, w, got[b])
		}
	}
}

func TestValidDigit(t *testing.T) {
	tests := []struct {
		digit string
		base  Base
		want  bool
	}{
		{digit: "1", base: Binary, want: true},
		{digit: "2", base: Binary, want: false},
		{digit: "7", base: Octal, want: true},
		{digit: "8", base: Octal, want: false},
		{digit: "9", base: Decimal, want: true},
		{digit: "a", base: Hexadecimal, want: true},
		{digit: "G", base: Hexadecimal, want: false},
		{digit: "10", base: Decimal, want: false},
	}

	for _, tc := range tests {
		t.Run(string(tc.base)+"_"+tc.digit, func(t *testing.T) {
			got, err := ValidDigit(tc.digit, tc.base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %t, got %t", tc.want, got)
			}
		})
	}
}
