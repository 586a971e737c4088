package lexer

import (
	"lox/internal/diag"
	"lox/internal/token"
)

// scanString сканирует "..." без escape-последовательностей; перевод строки внутри допустим.
// Токен несёт строку, на которой литерал начался, включая ошибку "Unterminated String".
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	startLine := lx.line
	lx.cursor.Bump() // opening '"'

	for !lx.cursor.EOF() && lx.cursor.Peek() != '"' {
		if lx.cursor.Peek() == '\n' {
			lx.line++
		}
		lx.cursor.Bump()
	}

	if lx.cursor.EOF() {
		tok := lx.errorToken(start, startLine, diag.LexUnterminatedString.Title())
		lx.errLex(diag.LexUnterminatedString, tok.Span, tok.Message)
		return tok
	}

	lx.cursor.Bump() // closing '"'
	tok := lx.emit(token.StringLit, start)
	tok.Line = startLine
	return tok
}
