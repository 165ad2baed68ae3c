// Package basic implements the single-accumulator arithmetic engine behind
// the basic calculator mode.
//
// Evaluation is strictly left to right: every operator keystroke folds the
// pending (previous, operator, current) triple before queuing the next
// operator, so "5 + 3 * 2 =" yields 16, not 11.
//
// An Engine is not safe for concurrent use. After any method returns an
// error the pending state is unspecified and the owner must call Clear
// before continuing.
package basic

import (
	"fmt"
	"math"
	"strings"

	"go-calculator/internal/calcerr"
)

// Operator is a binary operator token.
type Operator string

const (
	Add      Operator = "+"
	Subtract Operator = "-"
	Multiply Operator = "*"
	Divide   Operator = "/"
	Modulo   Operator = "%"

	// Equals folds the pending operation without queuing another one.
	Equals Operator = "="

	none Operator = ""
)

// ParseOperator accepts the ASCII tokens plus the × and ÷ display glyphs.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+", "-", "*", "/", "%", "=":
		return Operator(s), nil
	case "×":
		return Multiply, nil
	case "÷":
		return Divide, nil
	}
	return none, fmt.Errorf("%w: unknown operator %q", calcerr.ErrInvalidInput, s)
}

// Engine holds the calculator's editing state.
type Engine struct {
	current  string
	previous string
	operator Operator
	awaiting bool
}

// State is a read-only snapshot of an Engine.
type State struct {
	Current          string   `json:"current"`
	Previous         string   `json:"previous"`
	Operator         Operator `json:"operator"`
	AwaitingNewEntry bool     `json:"awaiting_new_entry"`
}

func NewEngine() *Engine {
	e := &Engine{}
	e.Clear()
	return e
}

// InputDigit appends d to the current entry, or starts a new entry when the
// engine is awaiting one. A lone "0" is replaced rather than prefixed.
func (e *Engine) InputDigit(d string) string {
	switch {
	case e.awaiting:
		e.current = d
		e.awaiting = false
	case e.current == "0":
		e.current = d
	default:
		e.current += d
	}
	return e.current
}

// InputDecimal adds a decimal point once per entry.
func (e *Engine) InputDecimal() string {
	if e.awaiting {
		e.current = "0."
		e.awaiting = false
	} else if !strings.Contains(e.current, ".") {
		e.current += "."
	}
	return e.current
}

// Clear resets the engine to its initial state.
func (e *Engine) Clear() string {
	e.current = "0"
	e.previous = ""
	e.operator = none
	e.awaiting = false
	return e.current
}

// ClearEntry resets only the current entry.
func (e *Engine) ClearEntry() string {
	e.current = "0"
	return e.current
}

// PerformOperation folds the pending operation, if any, and queues op.
// Equals performs the fold but leaves no operator pending. When a previous
// value exists with no pending operator (after Equals), the fold is the
// identity on the current entry.
func (e *Engine) PerformOperation(op Operator) (string, error) {
	if e.previous == "" {
		e.previous = e.current
	} else {
		result, err := Calculate(parseNumber(e.previous), parseNumber(e.current), e.operator)
		if err != nil {
			return e.current, err
		}
		e.current = FormatNumber(result)
		e.previous = e.current
	}

	if op == Equals {
		e.operator = none
	} else {
		e.operator = op
	}
	e.awaiting = true
	return e.current, nil
}

// Calculate applies op to a and b. Unknown operators return b unchanged.
func Calculate(a, b float64, op Operator) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply, "×":
		return a * b, nil
	case Divide, "÷":
		if b == 0 {
			return 0, fmt.Errorf("%w: cannot divide %s by zero", calcerr.ErrDivisionByZero, FormatNumber(a))
		}
		return a / b, nil
	case Modulo:
		return math.Mod(a, b), nil
	default:
		return b, nil
	}
}

// Percentage divides the current entry by 100.
//
// Unary transforms rewrite the current entry only. They leave the pending
// operator and the awaiting-new-entry flag untouched, so a digit typed after
// "5 + √" still starts a fresh operand.
func (e *Engine) Percentage() string {
	e.current = FormatNumber(parseNumber(e.current) / 100)
	return e.current
}

func (e *Engine) SquareRoot() (string, error) {
	v := parseNumber(e.current)
	if v < 0 {
		return e.current, fmt.Errorf("%w: cannot take square root of negative number %s", calcerr.ErrDomain, e.current)
	}
	e.current = FormatNumber(math.Sqrt(v))
	return e.current, nil
}

func (e *Engine) Square() string {
	v := parseNumber(e.current)
	e.current = FormatNumber(v * v)
	return e.current
}

func (e *Engine) Negate() string {
	e.current = FormatNumber(-parseNumber(e.current))
	return e.current
}

// CurrentValue returns the entry being edited or displayed.
func (e *Engine) CurrentValue() string {
	return e.current
}

// Expression renders "previous operator current" while an operator is
// pending, otherwise just the current entry.
func (e *Engine) Expression() string {
	if e.operator != none && e.previous != "" {
		return fmt.Sprintf("%s %s %s", e.previous, e.operator, e.current)
	}
	return e.current
}

func (e *Engine) State() State {
	return State{
		Current:          e.current,
		Previous:         e.previous,
		Operator:         e.operator,
		AwaitingNewEntry: e.awaiting,
	}
}
