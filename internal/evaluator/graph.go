package evaluator

import (
	"fmt"
	"math"

	"go-calculator/internal/calcerr"
)

const (
	// DefaultIntervals is the number of steps between XMin and XMax.
	DefaultIntervals = 200
	MaxIntervals     = 2000

	minSpan = 0.001
	maxSpan = 1_000_000
)

// PlotOptions bounds a sampled plot. YMin/YMax are optional clip limits.
type PlotOptions struct {
	XMin, XMax float64
	Intervals  int
	YMin, YMax *float64
}

// Point is one sample. Y is nil where the function is undefined, not finite
// or outside the clip range.
type Point struct {
	X float64  `json:"x"`
	Y *float64 `json:"y"`
}

type Series struct {
	Expression string  `json:"expression"`
	Points     []Point `json:"points"`
}

// ValidateRange checks that [min, max] is a usable plot window.
func ValidateRange(min, max float64) error {
	switch {
	case math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0):
		return fmt.Errorf("%w: range values must be finite numbers", calcerr.ErrInvalidInput)
	case min >= max:
		return fmt.Errorf("%w: minimum must be less than maximum", calcerr.ErrInvalidInput)
	case max-min < minSpan:
		return fmt.Errorf("%w: range is too small", calcerr.ErrInvalidInput)
	case max-min > maxSpan:
		return fmt.Errorf("%w: range is too large", calcerr.ErrInvalidInput)
	}
	return nil
}

// Plot samples a function of x at Intervals+1 evenly spaced points. The
// expression must evaluate cleanly at x = 0 before sampling starts.
func (e *Evaluator) Plot(expression string, opts PlotOptions) (Series, error) {
	if err := ValidateRange(opts.XMin, opts.XMax); err != nil {
		return Series{}, err
	}
	if opts.YMin != nil && opts.YMax != nil {
		if err := ValidateRange(*opts.YMin, *opts.YMax); err != nil {
			return Series{}, err
		}
	}

	n := opts.Intervals
	if n <= 0 {
		n = DefaultIntervals
	}
	if n > MaxIntervals {
		return Series{}, fmt.Errorf("%w: at most %d intervals", calcerr.ErrInvalidInput, MaxIntervals)
	}

	prog, err := e.Compile(expression, "x")
	if err != nil {
		return Series{}, err
	}
	if _, err := prog.Eval(map[string]float64{"x": 0}); err != nil {
		return Series{}, err
	}

	step := (opts.XMax - opts.XMin) / float64(n)
	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		x := opts.XMin + float64(i)*step
		p := Point{X: x}
		if y, err := prog.Eval(map[string]float64{"x": x}); err == nil && inRange(y, opts) {
			p.Y = &y
		}
		points = append(points, p)
	}

	return Series{Expression: prog.Source(), Points: points}, nil
}

func inRange(y float64, opts PlotOptions) bool {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return false
	}
	if opts.YMin != nil && y < *opts.YMin {
		return false
	}
	if opts.YMax != nil && y > *opts.YMax {
		return false
	}
	return true
}
