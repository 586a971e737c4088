package lexer

import (
	"lox/internal/token"
)

// scanNumber: [0-9]+ (. [0-9]+)?
// "12." даёт токен "12", точка остаётся следующему вызову.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekNext()) {
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.emit(token.NumberLit, start)
}
