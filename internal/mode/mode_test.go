package mode

import "testing"

func TestParse(t *testing.T) {
	for _, m := range All {
		got, err := Parse(string(m))
		if err != nil {
			t.Fatalf("parsing %q: %v", m, err)
		}
		if got != m {
			t.Fatalf("expected %q, got %q", m, got)
		}
	}

	if _, err := Parse("unit-converter"); err == nil {
		t.Fatal("expected error for unknown mode")
	}

	if Mode("").Valid() {
		t.Fatal("empty mode should not be valid")
	}
}
