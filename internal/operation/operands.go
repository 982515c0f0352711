package op

var (
	_           Operand
	OpenParen   = openParen{}
	ClosedParen = closeParen{}
	Pow         = pow{}
	Mult        = mult{}
	Div         = div{}
	Mod         = mod{}
	Add         = add{}
	Sub         = sub{}
)

// Operands lists every binary operator in descending priority.
var Operands = []BinaryOperand{Pow, Div, Mult, Mod, Add, Sub}

var OperationPriority = map[Operand]int{
	OpenParen:   0,
	ClosedParen: 0,
	Add:         1,
	Sub:         1,
	Mult:        2,
	Div:         2,
	Mod:         2,
	Pow:         3,
}

// bySymbol is indexed by the operator character.
var bySymbol = func() (table [256]BinaryOperand) {
	for _, o := range Operands {
		table[o.Symbol()[0]] = o
	}
	return table
}()

// Lookup returns the binary operator written as c.
func Lookup(c byte) (BinaryOperand, bool) {
	o := bySymbol[c]
	return o, o != nil
}

// Order returns the paren written as c.
func Order(c byte) (OrderOperand, bool) {
	switch c {
	case '(':
		return OpenParen, true
	case ')':
		return ClosedParen, true
	}
	return nil, false
}

func IsOperator(c byte) bool {
	return bySymbol[c] != nil
}

func HaveOperand(symbol string) bool {
	if len(symbol) != 1 {
		return false
	}
	return IsOperator(symbol[0])
}
