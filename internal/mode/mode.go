package mode

import "fmt"

// Mode identifies one of the calculator's interchangeable modes.
type Mode string

const (
	Basic      Mode = "basic"
	Scientific Mode = "scientific"
	Programmer Mode = "programmer"
	Graphing   Mode = "graphing"
	Financial  Mode = "financial"
)

// All lists every mode in display order.
var All = []Mode{Basic, Scientific, Programmer, Graphing, Financial}

// Parse returns the Mode named by s.
func Parse(s string) (Mode, error) {
	for _, m := range All {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

func (m Mode) Valid() bool {
	_, err := Parse(string(m))
	return err == nil
}
