package calculation_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/XJIeI5/evaluation/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		postfix string
		want    float64
	}{
		{"1 2 +", 3},
		{"1 2 3 * +", 7},
		{"1 2 + 3 *", 9},
		{"2 3 ^ 2 ^", 64},
		{"10 3 %", 1},
		{"2 3 + 4 1 - *", 15},
		{"7 2 /", 3.5},
		{"5 9 -", -4},
		{"  42  ", 42},
		{"1 2 3 * / 4 / 5 +", 5 + 1.0/6/4},
	}

	for _, tt := range tests {
		t.Run(tt.postfix, func(t *testing.T) {
			got, err := calculation.Calculate(tt.postfix)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	got, err := calculation.Calculate("1 0 /")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = calculation.Calculate("0 0 /")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestHugeLiteral(t *testing.T) {
	got, err := calculation.Calculate("1" + strings.Repeat("0", 400))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestUnderflowLenient(t *testing.T) {
	var buf bytes.Buffer
	c := calculation.Calculator{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	// the first "+" swallows 1 and evaluation goes on
	got, err := c.Calculate("1 + 2 3 +")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
	assert.Contains(t, buf.String(), "operator skipped")

	_, err = c.Calculate("1 2 + +")
	require.ErrorIs(t, err, calculation.ErrNoResult)

	got, err = c.Calculate("5 7 * 1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = c.Calculate("4 +")
	require.ErrorIs(t, err, calculation.ErrNoResult)
}

func TestUnderflowStrict(t *testing.T) {
	c := calculation.Calculator{Strict: true}

	_, err := c.Calculate("1 +")
	require.ErrorIs(t, err, calculation.ErrStackUnderflow)

	_, err = c.Calculate("1 2")
	require.ErrorIs(t, err, calculation.ErrNotAllNumbersUsed)

	got, err := c.Calculate("6 3 /")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestEmpty(t *testing.T) {
	for _, postfix := range []string{"", "   ", "abc"} {
		_, err := calculation.Calculate(postfix)
		assert.ErrorIs(t, err, calculation.ErrNoResult, postfix)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "3.5", calculation.Format(3.5))
	assert.Equal(t, "64", calculation.Format(64))
	assert.Equal(t, "+Inf", calculation.Format(math.Inf(1)))
	assert.Equal(t, "NaN", calculation.Format(math.NaN()))
}
