package vm

import (
	"fmt"
	"io"

	"lox/internal/bytecode"
	"lox/internal/value"
)

// Tracer writes the debug view of execution: stack contents and the
// instruction about to run.
type Tracer struct {
	w io.Writer
}

// NewTracer creates a new tracer that writes to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Writer returns the underlying writer, or nil for a nil tracer.
func (t *Tracer) Writer() io.Writer {
	if t == nil {
		return nil
	}
	return t.w
}

// TraceStep prints "[ v ]" for every stack entry, oldest first, a newline
// when the stack is non-empty, then the disassembly of the slot at ip.
func (t *Tracer) TraceStep(stack []value.Value, chunk *bytecode.Chunk, ip int) {
	if t == nil || t.w == nil {
		return
	}
	for _, v := range stack {
		fmt.Fprintf(t.w, "[ %s ]", v)
	}
	if len(stack) > 0 {
		fmt.Fprintln(t.w)
	}
	// сломанный слот трассировка пропускает, ошибку вернёт Step
	_, _ = bytecode.DisassembleInstruction(t.w, chunk, ip)
}

// TraceChunk prints the whole chunk followed by the execution banner.
func (t *Tracer) TraceChunk(chunk *bytecode.Chunk, label string) {
	if t == nil || t.w == nil {
		return
	}
	_ = bytecode.DisassembleChunk(t.w, chunk, label)
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, "====execution====")
}
