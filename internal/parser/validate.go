package parser

import (
	"fmt"
	"unicode/utf8"

	op "github.com/XJIeI5/evaluation/internal/operation"
)

func malformed(reason error, pos int) error {
	return fmt.Errorf("%w: %w at %d", ErrMalformedExpression, reason, pos)
}

// Validate checks that expr is a well formed infix expression: balanced
// parens, operators between operands and nothing outside the accepted
// character set.
func Validate(expr string) error {
	var (
		opens         []int
		expectOperand = true
	)

	for i := 0; i < len(expr); {
		c := expr[i]
		paren, isParen := op.Order(c)
		switch {
		case isSpace(c):
			i++
		case isDigit(c):
			if !expectOperand {
				return malformed(ErrMissingOperator, i)
			}
			_, i = GetStringNumber(expr, i)
			expectOperand = false
		case op.IsOperator(c):
			if expectOperand {
				return malformed(ErrMissingOperand, i)
			}
			expectOperand = true
			i++
		case isParen && paren.IsStart():
			if !expectOperand {
				return malformed(ErrMissingOperator, i)
			}
			opens = append(opens, i)
			i++
		case isParen:
			if len(opens) == 0 {
				return malformed(ErrNoOpenParen, i)
			}
			if expectOperand {
				return malformed(ErrMissingOperand, i)
			}
			opens = opens[:len(opens)-1]
			i++
		default:
			r, _ := utf8.DecodeRuneInString(expr[i:])
			return malformed(fmt.Errorf("%w %q", ErrUnknownSymbol, r), i)
		}
	}

	if len(opens) > 0 {
		return malformed(ErrNotClosedParen, opens[len(opens)-1])
	}
	if expectOperand {
		return malformed(ErrMissingOperand, len(expr))
	}
	return nil
}
