package token

import (
	"lox/internal/source"
)

// Token represents a single source token with its location.
// Error tokens (Kind == Invalid) carry Message instead of a meaningful lexeme.
type Token struct {
	Kind    Kind
	Span    source.Span
	Line    uint32
	Text    string
	Message string
}

// Len returns the length of the lexeme in bytes.
func (t Token) Len() int { return int(t.Span.Len()) }

// IsLiteral reports whether the token is a number, string, boolean or nil literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LParen && t.Kind <= LtEq
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwWhile
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsError reports whether the scanner produced an error token.
func (t Token) IsError() bool { return t.Kind == Invalid }
