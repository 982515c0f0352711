// Package evaluation evaluates arithmetic expressions over non-negative
// integer literals with the binary operators ^ / * % + - and parentheses.
//
// Expressions are first converted to postfix notation with a shunting-yard
// pass, then reduced with an operand stack. Operators of equal priority are
// left-associative, ^ included, so 2 ^ 3 ^ 2 is 64.
//
// The package level functions never reject an expression on syntax: anything
// they cannot place is dropped. Use an Evaluator with Strict set to get
// malformed input reported as errors.
package evaluation

import (
	"log/slog"

	"github.com/XJIeI5/evaluation/internal/calculation"
	"github.com/XJIeI5/evaluation/internal/parser"
)

// Errors returned by a strict Evaluator. They are matched with errors.Is.
var (
	ErrMalformedExpression = parser.ErrMalformedExpression
	ErrNotClosedParen      = parser.ErrNotClosedParen
	ErrNoOpenParen         = parser.ErrNoOpenParen
	ErrMissingOperand      = parser.ErrMissingOperand
	ErrMissingOperator     = parser.ErrMissingOperator
	ErrUnknownSymbol       = parser.ErrUnknownSymbol
	ErrStackUnderflow      = calculation.ErrStackUnderflow
	ErrNotAllNumbersUsed   = calculation.ErrNotAllNumbersUsed
	ErrNoResult            = calculation.ErrNoResult
)

// Evaluator is safe for concurrent use. Its zero value behaves like the
// package level functions.
type Evaluator struct {
	// Strict makes every operation validate its input.
	Strict bool
	// Logger receives skipped operators in lenient mode. Defaults to slog.Default().
	Logger *slog.Logger
}

func (e Evaluator) calculator() calculation.Calculator {
	return calculation.Calculator{Strict: e.Strict, Logger: e.Logger}
}

// InfixToPostfix converts infix to space separated postfix notation.
func (e Evaluator) InfixToPostfix(infix string) (string, error) {
	if e.Strict {
		return parser.ParseToPostfix(infix)
	}
	return parser.ToPostfix(infix), nil
}

// EvaluatePostfix reduces a space separated postfix expression.
func (e Evaluator) EvaluatePostfix(postfix string) (float64, error) {
	return e.calculator().Calculate(postfix)
}

func (e Evaluator) EvaluateInfix(infix string) (float64, error) {
	postfix, err := e.InfixToPostfix(infix)
	if err != nil {
		return 0, err
	}
	return e.EvaluatePostfix(postfix)
}

// InfixToPostfix converts infix to postfix, e.g. "(1 + 2) * 3" to "1 2 + 3 *".
func InfixToPostfix(infix string) string {
	return parser.ToPostfix(infix)
}

// EvaluatePostfix reduces postfix. It fails only when nothing is left to
// return.
func EvaluatePostfix(postfix string) (float64, error) {
	return calculation.Calculate(postfix)
}

// EvaluateInfix is EvaluatePostfix(InfixToPostfix(infix)).
func EvaluateInfix(infix string) (float64, error) {
	return EvaluatePostfix(InfixToPostfix(infix))
}
