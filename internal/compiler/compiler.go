// Package compiler translates a token stream into a bytecode chunk.
//
// The accepted grammar is deliberately tiny:
//
//	program := literal? ";"? EOF
//	literal := NUMBER | STRING | "true" | "false" | "nil"
//
// An empty program loads nil. Every chunk ends with OpReturn, so the VM never
// runs off the end of a chunk produced here. The first lexical error token
// aborts compilation.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"lox/internal/bytecode"
	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/source"
	"lox/internal/token"
	"lox/internal/value"
)

// Options configures a compilation.
type Options struct {
	// TokenDump receives one line per scanned token when non-nil.
	TokenDump io.Writer
	// MaxDiagnostics caps the returned bag; 0 means 16.
	MaxDiagnostics int
}

// Compile compiles file into a chunk. When the returned bag has errors the
// chunk is nil.
func Compile(file *source.File, opts Options) (*bytecode.Chunk, *diag.Bag) {
	limit := opts.MaxDiagnostics
	if limit <= 0 {
		limit = 16
	}
	c := &compiler{
		file:  file,
		lx:    lexer.New(file, lexer.Options{}),
		chunk: bytecode.New(),
		bag:   diag.NewBag(limit),
		dump:  opts.TokenDump,
	}
	if err := c.program(); err != nil {
		if !errors.Is(err, errAbort) {
			c.bag.Add(diag.NewError(diag.UnknownCode, source.Span{File: file.ID}, err.Error()))
		}
		return nil, c.bag
	}
	return c.chunk, c.bag
}

// errAbort stops compilation after a diagnostic has been recorded.
var errAbort = errors.New("compilation aborted")

type compiler struct {
	file     *source.File
	lx       *lexer.Lexer
	chunk    *bytecode.Chunk
	bag      *diag.Bag
	dump     io.Writer
	dumpLine uint32

	current token.Token
}

func (c *compiler) program() error {
	if err := c.advance(); err != nil {
		return err
	}

	if c.current.Kind == token.EOF {
		c.chunk.WriteConstant(value.Nil(), int(c.current.Line))
	} else {
		if err := c.literal(); err != nil {
			return err
		}
	}

	if c.current.Kind == token.Semicolon {
		if err := c.advance(); err != nil {
			return err
		}
	}
	if c.current.Kind != token.EOF {
		return c.errorAt(c.current, diag.SynExpectEnd)
	}

	c.chunk.WriteReturn(int(c.current.Line))
	return nil
}

func (c *compiler) literal() error {
	tok := c.current
	var v value.Value
	switch tok.Kind {
	case token.NumberLit:
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return c.errorAt(tok, diag.SynBadNumber)
		}
		v = value.Number(n)
	case token.StringLit:
		v = value.String(tok.Text[1 : len(tok.Text)-1])
	case token.KwTrue:
		v = value.Bool(true)
	case token.KwFalse:
		v = value.Bool(false)
	case token.KwNil:
		v = value.Nil()
	default:
		return c.errorAt(tok, diag.SynExpectExpression)
	}
	c.chunk.WriteConstant(v, int(tok.Line))
	return c.advance()
}

// advance fetches the next token and aborts on a lexical error token.
func (c *compiler) advance() error {
	c.current = c.lx.Next()
	c.dumpToken(c.current)
	if c.current.Kind == token.Invalid {
		d := diag.NewError(lexErrorCode(c.current), c.current.Span, c.current.Message).
			WithLine(c.current.Line)
		c.bag.Add(d)
		return errAbort
	}
	return nil
}

func (c *compiler) errorAt(tok token.Token, code diag.Code) error {
	found := "end"
	if tok.Kind != token.EOF {
		found = fmt.Sprintf("'%s'", tok.Text)
	}
	d := diag.NewError(code, tok.Span, code.Title()).
		WithLine(tok.Line).
		WithNote(tok.Span, "found "+found)
	c.bag.Add(d)
	return errAbort
}

func (c *compiler) dumpToken(tok token.Token) {
	if c.dump == nil {
		return
	}
	if tok.Line != c.dumpLine {
		fmt.Fprintf(c.dump, "%4d ", tok.Line)
		c.dumpLine = tok.Line
	} else {
		fmt.Fprint(c.dump, "   | ")
	}
	text := tok.Text
	if tok.Kind == token.Invalid {
		text = tok.Message
	}
	fmt.Fprintf(c.dump, "%s '%s'\n", tok.Kind, text)
}

func lexErrorCode(tok token.Token) diag.Code {
	if tok.Message == diag.LexUnterminatedString.Title() {
		return diag.LexUnterminatedString
	}
	return diag.LexUnknownChar
}
