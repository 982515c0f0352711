// Package calculation evaluates postfix expressions produced by the parser.
package calculation

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	op "github.com/XJIeI5/evaluation/internal/operation"
	"github.com/XJIeI5/evaluation/internal/parser"
	"github.com/informitas/stack"
)

var (
	ErrStackUnderflow    error = fmt.Errorf("operator has less than two operands")
	ErrNoResult                = fmt.Errorf("expression has no result")
	ErrNotAllNumbersUsed       = fmt.Errorf("not all numbers are involved in mathematical operations")
)

// Calculator evaluates postfix expressions. The zero value is lenient: an
// operator that lacks operands is logged and skipped and extra operands left
// at the end are ignored. A strict Calculator reports both as errors.
type Calculator struct {
	Strict bool
	Logger *slog.Logger
}

func (c Calculator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Calculate returns the value of a space separated postfix expression.
func (c Calculator) Calculate(postfix string) (float64, error) {
	locals := stack.NewStack[float64]()

	for i := 0; i < len(postfix); {
		r, at := parser.NextUsefulChar(postfix, i)
		if at < 0 {
			break
		}

		if op.IsOperator(r) {
			var operand op.BinaryOperand
			operand, i = parser.GetOperand(postfix, at)
			if locals.Size() < 2 {
				if c.Strict {
					return 0, fmt.Errorf("%w: '%s' at %d", ErrStackUnderflow, operand.Symbol(), at)
				}
				// the right operand is consumed before the missing left one is noticed
				if !locals.IsEmpty() {
					locals.Pop()
				}
				c.logger().Warn("operator skipped", "operator", operand.Symbol(), "pos", at, "err", ErrStackUnderflow)
				continue
			}
			second, _ := locals.Pop()
			first, _ := locals.Pop()
			locals.Push(operand.Exec(first, second))
			continue
		}

		var num string
		num, i = parser.GetStringNumber(postfix, at)
		if num == "" {
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("parse %q: %w", num, err)
		}
		locals.Push(v)
	}

	if locals.IsEmpty() {
		return 0, ErrNoResult
	}
	if c.Strict && locals.Size() != 1 {
		return 0, fmt.Errorf("%w: %d values left", ErrNotAllNumbersUsed, locals.Size())
	}
	res, _ := locals.Pop()
	return res, nil
}

// Calculate evaluates postfix with a lenient Calculator.
func Calculate(postfix string) (float64, error) {
	return Calculator{}.Calculate(postfix)
}

// Format renders a result the way it is stored and transmitted. It keeps
// +Inf, -Inf and NaN readable by strconv.ParseFloat.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
