package op

import "math"

type Operand interface {
	Symbol() string
	Name() string
}

type BinaryOperand interface {
	Operand
	Exec(a, b float64) float64
}

type OrderOperand interface {
	Operand
	IsStart() bool
}

// POW
type pow struct{}

func (p pow) Symbol() string { return "^" }
func (p pow) Name() string   { return "pow" }

func (p pow) Exec(a, b float64) float64 { return math.Pow(a, b) }

// MULT
type mult struct{}

func (m mult) Symbol() string { return "*" }
func (m mult) Name() string   { return "mult" }

func (m mult) Exec(a, b float64) float64 { return a * b }

// DIV
type div struct{}

func (d div) Symbol() string { return "/" }
func (d div) Name() string   { return "div" }

// Exec follows IEEE 754: x/0 is ±Inf and 0/0 is NaN.
func (d div) Exec(a, b float64) float64 { return a / b }

// MOD
type mod struct{}

func (m mod) Symbol() string { return "%" }
func (m mod) Name() string   { return "mod" }

// Exec returns the floating point remainder, its sign follows a.
func (m mod) Exec(a, b float64) float64 { return math.Mod(a, b) }

// ADD
type add struct{}

func (ad add) Symbol() string { return "+" }
func (ad add) Name() string   { return "add" }

func (ad add) Exec(a, b float64) float64 { return a + b }

// SUB
type sub struct{}

func (s sub) Symbol() string { return "-" }
func (s sub) Name() string   { return "sub" }

func (s sub) Exec(a, b float64) float64 { return a - b }

// OPEN PAREN
type openParen struct{}

func (p openParen) Symbol() string { return "(" }
func (p openParen) Name() string   { return "open paren" }
func (p openParen) IsStart() bool  { return true }

// CLOSE PAREN
type closeParen struct{}

func (p closeParen) Symbol() string { return ")" }
func (p closeParen) Name() string   { return "close paren" }
func (p closeParen) IsStart() bool  { return false }
