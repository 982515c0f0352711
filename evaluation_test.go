package evaluation_test

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/XJIeI5/evaluation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfixToPostfix(t *testing.T) {
	assert.Equal(t, "1 2 +", evaluation.InfixToPostfix("1 + 2"))
	assert.Equal(t, "1 2 3 * +", evaluation.InfixToPostfix("1 + 2 * 3"))
	assert.Equal(t, "1 2 + 3 *", evaluation.InfixToPostfix("(1 + 2) * 3"))
}

var wellFormed = []struct {
	infix string
	want  float64
}{
	{"1 + 2", 3},
	{"1 + 2 * 3", 7},
	{"(1 + 2) * 3", 9},
	{"2 ^ 3 ^ 2", 64},
	{"10 % 3", 1},
	{"(2 + 3) * (4 - 1)", 15},
	{"100 - 10 - 1", 89},
	{"64 / 4 / 2", 8},
	{"2 * 3 ^ 2", 18},
	{"1 + 2 ^ 3 * 4", 33},
	{"17 % 5 * 2", 4},
	{"((((5))))", 5},
	{"3 - (4 - (5 - 6))", -2},
	{"7 / 2", 3.5},
	{"2 ^ (3 ^ 2)", 512},
	{"0", 0},
}

func TestEvaluateInfix(t *testing.T) {
	for _, tt := range wellFormed {
		t.Run(tt.infix, func(t *testing.T) {
			got, err := evaluation.EvaluateInfix(tt.infix)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)

			strict, err := evaluation.Evaluator{Strict: true}.EvaluateInfix(tt.infix)
			require.NoError(t, err)
			assert.Equal(t, got, strict)
		})
	}
}

func TestComposition(t *testing.T) {
	for _, tt := range wellFormed {
		direct, err := evaluation.EvaluateInfix(tt.infix)
		require.NoError(t, err)
		composed, err := evaluation.EvaluatePostfix(evaluation.InfixToPostfix(tt.infix))
		require.NoError(t, err)
		assert.Equal(t, direct, composed, tt.infix)
	}
}

func TestWhitespaceInsensitive(t *testing.T) {
	for _, tt := range wellFormed {
		compact := strings.Join(strings.Fields(tt.infix), "")
		want, err := evaluation.EvaluateInfix(compact)
		require.NoError(t, err)

		for _, variant := range []string{tt.infix, spread(compact)} {
			got, err := evaluation.EvaluateInfix(variant)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%q", variant)
		}
	}
}

// spread surrounds every operator and paren with mixed whitespace.
func spread(expr string) string {
	var b strings.Builder
	for _, r := range expr {
		if strings.ContainsRune("^/*%+-()", r) {
			b.WriteString(" \t" + string(r) + "\n  ")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestDivisionByZero(t *testing.T) {
	got, err := evaluation.EvaluateInfix("1 / 0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = evaluation.EvaluateInfix("(3 - 3) / 0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestStrictErrors(t *testing.T) {
	e := evaluation.Evaluator{Strict: true}
	tests := []struct {
		infix string
		err   error
	}{
		{"(1 + 2", evaluation.ErrNotClosedParen},
		{"1 + 2)", evaluation.ErrNoOpenParen},
		{"1 +", evaluation.ErrMissingOperand},
		{"", evaluation.ErrMissingOperand},
		{"1 2", evaluation.ErrMissingOperator},
		{"-1", evaluation.ErrMissingOperand},
		{"1.5 * 2", evaluation.ErrUnknownSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.infix, func(t *testing.T) {
			_, err := e.EvaluateInfix(tt.infix)
			require.ErrorIs(t, err, evaluation.ErrMalformedExpression)
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := e.EvaluatePostfix("1 +")
	require.ErrorIs(t, err, evaluation.ErrStackUnderflow)
	_, err = e.EvaluatePostfix("1 2")
	require.ErrorIs(t, err, evaluation.ErrNotAllNumbersUsed)
}

func TestLenientNeverRejectsSyntax(t *testing.T) {
	got, err := evaluation.EvaluateInfix("(1 + 2")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = evaluation.EvaluateInfix("1 + 2)")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = evaluation.EvaluateInfix("")
	require.ErrorIs(t, err, evaluation.ErrNoResult)
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	e := evaluation.Evaluator{Strict: true}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, tt := range wellFormed {
				got, err := e.EvaluateInfix(tt.infix)
				assert.NoError(t, err)
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		}()
	}
	wg.Wait()
}
