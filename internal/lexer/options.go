package lexer

import (
	"lox/internal/diag"
	"lox/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки только в error-токенах
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
