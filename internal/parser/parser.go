package parser

import (
	"fmt"
	"strings"

	op "github.com/XJIeI5/evaluation/internal/operation"
	"github.com/informitas/stack"
)

var (
	ErrMalformedExpression error = fmt.Errorf("malformed expression")
	ErrNotClosedParen            = fmt.Errorf("paren doesn't closed")
	ErrNoOpenParen               = fmt.Errorf("closed paren located before open paren")
	ErrMissingOperand            = fmt.Errorf("operator is missing an operand")
	ErrMissingOperator           = fmt.Errorf("operands are not separated by an operator")
	ErrUnknownSymbol             = fmt.Errorf("unknown symbol")
)

// ToPostfix converts an infix expression into space separated postfix
// notation. It never fails: characters it cannot place are dropped, stray
// closing parens are skipped and an unclosed paren runs to the end of infix.
func ToPostfix(infix string) string {
	var res []string
	s := stack.NewStack[op.BinaryOperand]()

	for i := 0; i < len(infix); {
		c, at := NextUsefulChar(infix, i)
		if at < 0 {
			break
		}

		paren, isParen := op.Order(c)
		switch {
		case op.IsOperator(c):
			var operand op.BinaryOperand
			operand, i = GetOperand(infix, at)
			res = append(res, popHigherOrEqual(s, operand)...)
			s.Push(operand)
		case isParen && paren.IsStart():
			var inner string
			inner, i = GetParenthetical(infix, at)
			if sub := ToPostfix(inner); sub != "" {
				res = append(res, sub)
			}
		case isParen:
			i = at + 1
		default:
			var num string
			num, i = GetStringNumber(infix, at)
			if num != "" {
				res = append(res, num)
			}
		}
	}

	for !s.IsEmpty() {
		oper, _ := s.Pop()
		res = append(res, oper.Symbol())
	}
	return strings.Join(res, " ")
}

// popHigherOrEqual pops every stacked operator whose priority is at least the
// priority of operand, which makes equal tiers left-associative.
func popHigherOrEqual(operStack *stack.Stack[op.BinaryOperand], operand op.BinaryOperand) []string {
	var popped []string
	for !operStack.IsEmpty() {
		peek, _ := operStack.Top()
		if op.OperationPriority[peek] < op.OperationPriority[operand] {
			break
		}
		oper, _ := operStack.Pop()
		popped = append(popped, oper.Symbol())
	}
	return popped
}

// ParseToPostfix is ToPostfix for callers that want malformed input reported
// instead of converted.
func ParseToPostfix(infixExpr string) (string, error) {
	if err := Validate(infixExpr); err != nil {
		return "", err
	}
	return ToPostfix(infixExpr), nil
}
