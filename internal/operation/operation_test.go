package op_test

import (
	"math"
	"testing"

	op "github.com/XJIeI5/evaluation/internal/operation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec(t *testing.T) {
	tests := []struct {
		symbol byte
		a, b   float64
		want   float64
	}{
		{'^', 2, 10, 1024},
		{'*', 6, 7, 42},
		{'/', 7, 2, 3.5},
		{'%', 10, 3, 1},
		{'%', 7.5, 2, 1.5},
		{'+', 1, 2, 3},
		{'-', 1, 2, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.symbol), func(t *testing.T) {
			oper, ok := op.Lookup(tt.symbol)
			require.True(t, ok)
			assert.Equal(t, tt.want, oper.Exec(tt.a, tt.b))
			assert.NotEmpty(t, oper.Name())
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	assert.True(t, math.IsInf(op.Div.Exec(1, 0), 1))
	assert.True(t, math.IsInf(op.Div.Exec(-1, 0), -1))
	assert.True(t, math.IsNaN(op.Div.Exec(0, 0)))
	assert.True(t, math.IsNaN(op.Mod.Exec(1, 0)))
}

func TestPriority(t *testing.T) {
	assert.Greater(t, op.OperationPriority[op.Pow], op.OperationPriority[op.Mult])
	assert.Equal(t, op.OperationPriority[op.Mult], op.OperationPriority[op.Div])
	assert.Equal(t, op.OperationPriority[op.Mult], op.OperationPriority[op.Mod])
	assert.Greater(t, op.OperationPriority[op.Mod], op.OperationPriority[op.Add])
	assert.Equal(t, op.OperationPriority[op.Add], op.OperationPriority[op.Sub])
	assert.Greater(t, op.OperationPriority[op.Sub], op.OperationPriority[op.OpenParen])
}

func TestLookup(t *testing.T) {
	for _, c := range []byte("^/*%+-") {
		assert.True(t, op.IsOperator(c), "%c", c)
	}
	for _, c := range []byte("()0 .a=") {
		_, ok := op.Lookup(c)
		assert.False(t, ok, "%c", c)
	}
	assert.True(t, op.HaveOperand("%"))
	assert.False(t, op.HaveOperand("**"))
	assert.False(t, op.HaveOperand(""))
}

func TestOrder(t *testing.T) {
	open, ok := op.Order('(')
	require.True(t, ok)
	assert.True(t, open.IsStart())

	closed, ok := op.Order(')')
	require.True(t, ok)
	assert.False(t, closed.IsStart())
	assert.Equal(t, ")", closed.Symbol())

	_, ok = op.Order('+')
	assert.False(t, ok)
}
