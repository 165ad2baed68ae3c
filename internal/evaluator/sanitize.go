package evaluator

import (
	"fmt"
	"regexp"
	"strings"

	"go-calculator/internal/calcerr"
)

// MaxExpressionLength bounds the text accepted by Validate.
const MaxExpressionLength = 100

var (
	disallowed = regexp.MustCompile(`[^0-9+\-*/().^\s,a-zA-Z]`)
	allowed    = regexp.MustCompile(`^[0-9+\-*/().^\s,a-zA-Z]+$`)
)

// Sanitize strips every character outside digits, letters, whitespace,
// commas and the arithmetic operators + - * / ^ ( ) .
func Sanitize(input string) string {
	return strings.TrimSpace(disallowed.ReplaceAllString(input, ""))
}

// Validate rejects empty, over-long, unbalanced or unsafe expressions.
func Validate(expression string) error {
	if expression == "" {
		return fmt.Errorf("%w: empty expression", calcerr.ErrEvaluation)
	}
	if len(expression) > MaxExpressionLength {
		return fmt.Errorf("%w: expression longer than %d characters", calcerr.ErrEvaluation, MaxExpressionLength)
	}

	depth := 0
	for i, r := range expression {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return fmt.Errorf("%w: unmatched ')' at offset %d", calcerr.ErrEvaluation, i)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed '('", calcerr.ErrEvaluation, depth)
	}

	if !allowed.MatchString(expression) {
		return fmt.Errorf("%w: expression contains disallowed characters", calcerr.ErrEvaluation)
	}
	return nil
}
