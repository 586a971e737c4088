package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token; Token.Message explains why.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Single-character punctuation.
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Dot       // .
	Minus     // -
	Plus      // +
	Semicolon // ;
	Slash     // /
	Star      // *

	// One- or two-character operators.
	Bang   // !
	BangEq // !=
	Assign // =
	EqEq   // ==
	Gt     // >
	GtEq   // >=
	Lt     // <
	LtEq   // <=

	// Literals.
	Ident
	StringLit
	NumberLit

	// Keywords.
	KwAnd    // and
	KwClass  // class
	KwElse   // else
	KwFalse  // false
	KwFor    // for
	KwFun    // fun
	KwIf     // if
	KwNil    // nil
	KwOr     // or
	KwPrint  // print
	KwReturn // return
	KwSuper  // super
	KwThis   // this
	KwTrue   // true
	KwVar    // var
	KwWhile  // while

	kindCount
)

var kindNames = [...]string{
	Invalid:   "ERROR",
	EOF:       "EOF",
	LParen:    "LEFT_PAREN",
	RParen:    "RIGHT_PAREN",
	LBrace:    "LEFT_BRACE",
	RBrace:    "RIGHT_BRACE",
	Comma:     "COMMA",
	Dot:       "DOT",
	Minus:     "MINUS",
	Plus:      "PLUS",
	Semicolon: "SEMICOLON",
	Slash:     "SLASH",
	Star:      "STAR",
	Bang:      "BANG",
	BangEq:    "BANG_EQUAL",
	Assign:    "EQUAL",
	EqEq:      "EQUAL_EQUAL",
	Gt:        "GREATER",
	GtEq:      "GREATER_EQUAL",
	Lt:        "LESS",
	LtEq:      "LESS_EQUAL",
	Ident:     "IDENTIFIER",
	StringLit: "STRING",
	NumberLit: "NUMBER",
	KwAnd:     "AND",
	KwClass:   "CLASS",
	KwElse:    "ELSE",
	KwFalse:   "FALSE",
	KwFor:     "FOR",
	KwFun:     "FUN",
	KwIf:      "IF",
	KwNil:     "NIL",
	KwOr:      "OR",
	KwPrint:   "PRINT",
	KwReturn:  "RETURN",
	KwSuper:   "SUPER",
	KwThis:    "THIS",
	KwTrue:    "TRUE",
	KwVar:     "VAR",
	KwWhile:   "WHILE",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
