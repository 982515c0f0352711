package parser

import (
	"unicode"
	"unicode/utf8"

	op "github.com/XJIeI5/evaluation/internal/operation"
)

// None is returned by NextUsefulChar when the input is exhausted.
const None byte = 0

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// isSpace also accepts the separators U+001C..U+001F.
func isSpace(c byte) bool {
	if c >= utf8.RuneSelf {
		return false
	}
	return unicode.IsSpace(rune(c)) || 0x1c <= c && c <= 0x1f
}

// NextUsefulChar returns the first non-whitespace character at or after pos
// together with its index, or (None, -1).
func NextUsefulChar(expr string, pos int) (byte, int) {
	for i := pos; i < len(expr); i++ {
		if !isSpace(expr[i]) {
			return expr[i], i
		}
	}
	return None, -1
}

// GetStringNumber reads the digit run that starts at the first digit at or
// after pos. Anything before that digit is skipped. The second result is the
// index right after the run.
func GetStringNumber(expr string, pos int) (string, int) {
	start := pos
	for start < len(expr) && !isDigit(expr[start]) {
		start++
	}
	end := start
	for end < len(expr) && isDigit(expr[end]) {
		end++
	}
	return expr[start:end], end
}

// GetOperand returns the first binary operator at or after pos and the index
// right after it.
func GetOperand(expr string, pos int) (op.BinaryOperand, int) {
	for i := pos; i < len(expr); i++ {
		if oper, ok := op.Lookup(expr[i]); ok {
			return oper, i + 1
		}
	}
	return nil, len(expr)
}

// GetParenthetical returns what is enclosed by the first '(' at or after pos
// and its matching ')', inner parens included, and the index after the ')'.
// An unclosed paren yields the rest of expr.
func GetParenthetical(expr string, pos int) (string, int) {
	var (
		depth int
		start = -1
	)
	for i := pos; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return expr[start:i], i + 1
			}
		}
	}
	if start < 0 {
		return "", len(expr)
	}
	return expr[start:], len(expr)
}
