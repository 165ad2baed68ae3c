// Package evaluator adapts the expr-lang expression engine for the
// scientific and graphing modes. Input is sanitized and validated here;
// parsing and evaluation are delegated to expr.
package evaluator

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"

	"go-calculator/internal/calcerr"
)

// Evaluator evaluates sanitized math expressions. It is safe for concurrent
// use; the angle mode is fixed at construction.
type Evaluator struct {
	angle AngleMode
}

func New(angle AngleMode) *Evaluator {
	if angle == "" {
		angle = Radians
	}
	return &Evaluator{angle: angle}
}

// Program is a compiled expression that can be evaluated repeatedly with
// different variable bindings.
type Program struct {
	source string
	vars   []string
	prog   *vm.Program
}

func (p *Program) Source() string { return p.source }

// Evaluate sanitizes, validates and evaluates input.
func (e *Evaluator) Evaluate(input string) (float64, error) {
	p, err := e.Compile(input)
	if err != nil {
		return 0, err
	}
	return p.Eval(nil)
}

// Compile prepares input for evaluation. vars names the free variables the
// expression may reference; all of them default to zero.
func (e *Evaluator) Compile(input string, vars ...string) (*Program, error) {
	source := Sanitize(input)
	if err := Validate(source); err != nil {
		return nil, err
	}

	opts := append([]expr.Option{
		expr.Env(newEnv(vars, nil)),
		expr.Patch(floatLiterals{}),
	}, e.functions()...)
	prog, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", calcerr.ErrEvaluation, err)
	}
	return &Program{source: source, vars: vars, prog: prog}, nil
}

// Eval runs the program with the given variable values. Unbound variables
// are zero.
func (p *Program) Eval(values map[string]float64) (float64, error) {
	out, err := expr.Run(p.prog, newEnv(p.vars, values))
	if err != nil {
		var de domainError
		if errors.As(err, &de) {
			return 0, de.err
		}
		return 0, fmt.Errorf("%w: %v", calcerr.ErrEvaluation, err)
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("%w: expression %q did not produce a number", calcerr.ErrEvaluation, p.source)
	}
	return v, nil
}

// floatLiterals rewrites integer literals as floats so that arithmetic is
// done in float64 and never wraps at the int64 boundary.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

func newEnv(vars []string, values map[string]float64) map[string]any {
	env := map[string]any{
		"pi": math.Pi,
		"e":  math.E,
	}
	for _, v := range vars {
		env[v] = values[v]
	}
	return env
}

// domainError carries a calcerr.ErrDomain failure out of an expr function
// call so Eval can report it as a domain error rather than a parse error.
type domainError struct{ err error }

func (d domainError) Error() string { return d.err.Error() }

func (e *Evaluator) functions() []expr.Option {
	unary := func(name string, fn func(float64) float64) expr.Option {
		return expr.Function(name, func(params ...any) (any, error) {
			x, err := oneArg(name, params)
			if err != nil {
				return nil, err
			}
			return fn(x), nil
		})
	}
	angle := e.angle

	return []expr.Option{
		unary("sin", func(x float64) float64 { return Sin(x, angle) }),
		unary("cos", func(x float64) float64 { return Cos(x, angle) }),
		unary("tan", func(x float64) float64 { return Tan(x, angle) }),
		unary("asin", func(x float64) float64 { return Asin(x, angle) }),
		unary("acos", func(x float64) float64 { return Acos(x, angle) }),
		unary("atan", func(x float64) float64 { return Atan(x, angle) }),
		unary("log", math.Log10),
		unary("log10", math.Log10),
		unary("log2", math.Log2),
		unary("ln", math.Log),
		unary("exp", math.Exp),
		unary("sqrt", math.Sqrt),
		unary("cbrt", math.Cbrt),
		expr.Function("pow", func(params ...any) (any, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(params))
			}
			base, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			exp, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			return math.Pow(base, exp), nil
		}),
		expr.Function("factorial", func(params ...any) (any, error) {
			x, err := oneArg("factorial", params)
			if err != nil {
				return nil, err
			}
			v, err := Factorial(x)
			if err != nil {
				return nil, domainError{err: err}
			}
			return v, nil
		}),
	}
}

func oneArg(name string, params []any) (float64, error) {
	if len(params) != 1 {
		return 0, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
	}
	return toFloat(params[0])
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}
