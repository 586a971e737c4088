package diag

import (
	"fmt"

	"lox/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding of the lexer or compiler.
// Line is the scanner's own line counter, which stays meaningful for
// files that were never registered in a FileSet.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Line     uint32
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithLine(line uint32) Diagnostic {
	d.Line = line
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Error renders the diagnostic in the classic "[line N] Error: msg" form.
func (d Diagnostic) Error() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Code.ID(), d.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", d.Line, d.Code.ID(), d.Message)
}
