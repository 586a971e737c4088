package vm

import (
	"errors"
	"fmt"
	"strings"

	"lox/internal/diag"
	"lox/internal/source"
)

// PanicCode identifies the kind of runtime failure.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicStackOverflow  PanicCode = 1001 // VM1001: stack overflow
	PanicStackUnderflow PanicCode = 1002 // VM1002: stack underflow
	PanicIPOutOfRange   PanicCode = 1003 // VM1003: instruction pointer out of range
	PanicCorruptChunk   PanicCode = 1004 // VM1004: corrupt chunk
	PanicUnknownOpcode  PanicCode = 1005 // VM1005: unknown opcode
	PanicNoChunk        PanicCode = 1006 // VM1006: no chunk bound
)

// String returns the code as "VM1001" format.
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", int(c))
}

// RuntimeError is a fault raised by the dispatch loop.
type RuntimeError struct {
	Code    PanicCode
	Message string
	Offset  int // смещение инструкции в чанке, -1 если неизвестно
	Line    int
	Err     error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// Format renders the error for users:
//
//	runtime error VM1002: stack underflow
//	[line 1] in script
func (e *RuntimeError) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runtime error %s: %s\n", e.Code, e.Message)
	if e.Line > 0 {
		fmt.Fprintf(&sb, "[line %d] in script\n", e.Line)
	}
	return sb.String()
}

// CompileError reports that source could not be turned into a chunk.
type CompileError struct {
	File *source.File
	Bag  *diag.Bag
}

func (e *CompileError) Error() string {
	first, ok := e.Bag.First()
	if !ok {
		return "compile error"
	}
	if e.Bag.Len() > 1 {
		return fmt.Sprintf("%s (and %d more)", first.Error(), e.Bag.Len()-1)
	}
	return first.Error()
}

// InterpretResult is the coarse outcome of Interpret.
type InterpretResult uint8

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

func (r InterpretResult) String() string {
	switch r {
	case InterpretOK:
		return "ok"
	case InterpretCompileError:
		return "compile error"
	case InterpretRuntimeError:
		return "runtime error"
	}
	return "unknown"
}

// ResultOf classifies an error returned by Interpret or Run.
// Errors of other types count as runtime errors.
func ResultOf(err error) InterpretResult {
	if err == nil {
		return InterpretOK
	}
	var ce *CompileError
	if errors.As(err, &ce) {
		return InterpretCompileError
	}
	return InterpretRuntimeError
}

// errorBuilder helps construct RuntimeError values at the current ip.
type errorBuilder struct {
	vm *VM
}

func (eb *errorBuilder) makeError(code PanicCode, msg string, cause error) *RuntimeError {
	e := &RuntimeError{
		Code:    code,
		Message: msg,
		Offset:  -1,
		Err:     cause,
	}
	if eb.vm.chunk != nil {
		e.Offset = eb.vm.ip
		e.Line = eb.vm.chunk.LineAt(eb.vm.ip)
	}
	return e
}

func (eb *errorBuilder) stackOverflow(capacity int) *RuntimeError {
	return eb.makeError(PanicStackOverflow, fmt.Sprintf("stack overflow (capacity %d)", capacity), ErrStackOverflow)
}

func (eb *errorBuilder) stackUnderflow() *RuntimeError {
	return eb.makeError(PanicStackUnderflow, "stack underflow", ErrStackUnderflow)
}

func (eb *errorBuilder) ipOutOfRange(n int) *RuntimeError {
	e := eb.makeError(PanicIPOutOfRange, fmt.Sprintf("instruction pointer out of range: ip=%d, chunk has %d slots", eb.vm.ip, n), nil)
	e.Line = eb.vm.chunk.LineAt(n - 1)
	return e
}

func (eb *errorBuilder) corruptChunk(cause error) *RuntimeError {
	return eb.makeError(PanicCorruptChunk, "corrupt chunk: "+cause.Error(), cause)
}

func (eb *errorBuilder) unknownOpcode(op uint8) *RuntimeError {
	return eb.makeError(PanicUnknownOpcode, fmt.Sprintf("unknown opcode %d", op), nil)
}

func (eb *errorBuilder) noChunk() *RuntimeError {
	return eb.makeError(PanicNoChunk, "no chunk bound", nil)
}
