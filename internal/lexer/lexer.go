package lexer

import (
	"lox/internal/source"
	"lox/internal/token"
)

// Lexer turns a sentinel-terminated source buffer into a lazy token stream.
// The stream is finite: once EOF is produced every further Next returns EOF
// again. Re-seeding means constructing a new Lexer.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	line   uint32
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		line:   1,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.cursor.SpanFrom(start),
			Line: lx.line,
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Line returns the scanner's current line counter.
func (lx *Lexer) Line() uint32 {
	return lx.line
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Line: lx.line,
		Text: lx.file.Text(sp),
	}
}

func (lx *Lexer) errorToken(start Mark, line uint32, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:    token.Invalid,
		Span:    sp,
		Line:    line,
		Text:    lx.file.Text(sp),
		Message: msg,
	}
}
