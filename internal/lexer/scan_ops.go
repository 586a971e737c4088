package lexer

import (
	"lox/internal/diag"
	"lox/internal/token"
)

// scanOperatorOrPunct: односимвольная пунктуация и операторы ! = < >
// с опциональным '=' во втором символе.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// ! = < > : составной вид, если дальше '='
	pair := func(bare, compound token.Kind) token.Token {
		if lx.cursor.Eat('=') {
			return lx.emit(compound, start)
		}
		return lx.emit(bare, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '.':
		return lx.emit(token.Dot, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '+':
		return lx.emit(token.Plus, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '*':
		return lx.emit(token.Star, start)
	case '!':
		return pair(token.Bang, token.BangEq)
	case '=':
		return pair(token.Assign, token.EqEq)
	case '<':
		return pair(token.Lt, token.LtEq)
	case '>':
		return pair(token.Gt, token.GtEq)
	default:
		// неизвестный символ: съедаем руну целиком, чтобы не резать UTF-8
		if ch >= utf8RuneSelf {
			lx.cursor.Reset(start)
			lx.bumpRune()
		}
		tok := lx.errorToken(start, lx.line, diag.LexUnknownChar.Title())
		lx.errLex(diag.LexUnknownChar, tok.Span, tok.Message)
		return tok
	}
}
