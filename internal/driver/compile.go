package driver

import (
	"context"
	"io"
	"strconv"

	"lox/internal/bytecode"
	"lox/internal/compiler"
	"lox/internal/diag"
	"lox/internal/observ"
	"lox/internal/source"
	"lox/internal/trace"
)

// CompileOptions configures a single compilation.
type CompileOptions struct {
	MaxDiagnostics int
	TokenDump      io.Writer // debug token listing, nil to disable
	Timer          *observ.Timer
}

// Compile turns file into a chunk inside a "compile" trace span.
// The chunk is nil when the bag has errors.
func Compile(ctx context.Context, file *source.File, opts CompileOptions) (*bytecode.Chunk, *diag.Bag) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "compile", trace.ParentID(ctx))
	idx := opts.Timer.Begin("compile")

	chunk, bag := compiler.Compile(file, compiler.Options{
		TokenDump:      opts.TokenDump,
		MaxDiagnostics: opts.MaxDiagnostics,
	})

	detail := "ok"
	if bag.HasErrors() {
		detail = "errors=" + strconv.Itoa(bag.Len())
	} else {
		span.WithExtra("slots", strconv.Itoa(chunk.Len())).
			WithExtra("constants", strconv.Itoa(len(chunk.Constants)))
	}
	opts.Timer.End(idx, detail)
	span.End(detail)
	return chunk, bag
}
