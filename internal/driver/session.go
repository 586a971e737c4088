package driver

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"lox/internal/bytecode"
	"lox/internal/diag"
	"lox/internal/observ"
	"lox/internal/source"
	"lox/internal/trace"
	"lox/internal/value"
	"lox/internal/vm"
)

// Options configures a Session.
type Options struct {
	Debug          bool
	StackCapacity  int
	MaxDiagnostics int
	Out            io.Writer   // "value <v>" lines; nil means stdout
	Trace          io.Writer   // debug listing; nil means Out
	Cache          *ChunkCache // optional on-disk chunk cache
	Timer          *observ.Timer
}

// Result describes one executed script, REPL line or chunk image.
type Result struct {
	File     *source.File // nil for chunk images
	Chunk    *bytecode.Chunk
	Value    value.Value
	CacheHit bool
	// Warnings holds non-fatal diagnostics such as a corrupted cache entry.
	Warnings *diag.Bag
}

// Session owns one VM and the FileSet of everything it has run.
// A REPL is one Session; so is a single `lox run`.
type Session struct {
	opts    Options
	fileSet *source.FileSet
	machine *vm.VM
}

// NewSession creates a Session with a fresh VM.
func NewSession(opts Options) *Session {
	return &Session{
		opts:    opts,
		fileSet: source.NewFileSet(),
		machine: vm.New(vm.Options{
			Debug:          opts.Debug,
			StackCapacity:  opts.StackCapacity,
			Out:            opts.Out,
			Trace:          opts.Trace,
			MaxDiagnostics: opts.MaxDiagnostics,
		}),
	}
}

// FileSet returns every buffer the session has loaded.
func (s *Session) FileSet() *source.FileSet { return s.fileSet }

// VM exposes the session's machine.
func (s *Session) VM() *vm.VM { return s.machine }

// RunFile loads path and runs it. Chunk images (.loxc) skip compilation.
func (s *Session) RunFile(ctx context.Context, path string) (*Result, error) {
	if bytecode.IsImagePath(path) {
		return s.RunImage(ctx, path)
	}

	idx := s.opts.Timer.Begin("load")
	id, err := s.fileSet.Load(path)
	s.opts.Timer.End(idx, "")
	if err != nil {
		return nil, &LoadError{Code: diag.IOLoadFileError, Path: path, Err: err}
	}
	return s.run(ctx, s.fileSet.Get(id), s.opts.Cache)
}

// RunSource registers src as a virtual buffer under name and runs it.
// Every call gets a new FileID, so diagnostics of earlier lines stay valid.
func (s *Session) RunSource(ctx context.Context, name string, src []byte) (*Result, error) {
	id := s.fileSet.AddVirtual(name, src)
	return s.run(ctx, s.fileSet.Get(id), nil)
}

// RunImage loads a compiled chunk image and runs it.
func (s *Session) RunImage(ctx context.Context, path string) (*Result, error) {
	idx := s.opts.Timer.Begin("load")
	img, err := bytecode.ReadImageFile(path)
	s.opts.Timer.End(idx, "image")
	if err != nil {
		return nil, imageLoadError(path, err)
	}
	res := &Result{Chunk: img.Chunk, Warnings: diag.NewBag(s.maxDiagnostics())}
	res.Value, err = s.execute(ctx, img.Chunk, "main")
	return res, err
}

func (s *Session) run(ctx context.Context, file *source.File, cache *ChunkCache) (*Result, error) {
	res := &Result{File: file, Warnings: diag.NewBag(s.maxDiagnostics())}

	chunk, hit := s.cacheGet(ctx, cache, file, res.Warnings)
	if !hit {
		var bag *diag.Bag
		chunk, bag = Compile(ctx, file, CompileOptions{
			MaxDiagnostics: s.opts.MaxDiagnostics,
			TokenDump:      s.machine.TraceWriter(),
			Timer:          s.opts.Timer,
		})
		if bag.HasErrors() {
			return res, &vm.CompileError{File: file, Bag: bag}
		}
		s.cachePut(ctx, cache, file, chunk, res.Warnings)
	}
	res.Chunk = chunk
	res.CacheHit = hit

	var err error
	res.Value, err = s.execute(ctx, chunk, "main")
	return res, err
}

// execute runs chunk; at debug trace level every dispatch becomes a point event.
func (s *Session) execute(ctx context.Context, chunk *bytecode.Chunk, label string) (value.Value, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "run", trace.ParentID(ctx))
	idx := s.opts.Timer.Begin("run")

	var (
		v   value.Value
		err error
	)
	if tracer.Level().ShouldEmit(trace.ScopeStep) {
		s.machine.Load(chunk, label)
		for !s.machine.Halted() {
			ip := s.machine.IP()
			detail := "?"
			if op, opErr := chunk.OpAt(ip); opErr == nil {
				detail = op.Mnemonic()
			}
			trace.Point(tracer, trace.ScopeStep, "step@"+strconv.Itoa(ip), detail, span.ID())
			if err = s.machine.Step(); err != nil {
				break
			}
		}
		if err == nil {
			v = s.machine.Result()
		}
	} else {
		v, err = s.machine.Execute(chunk, label)
	}

	note := ""
	if err != nil {
		note = vm.ResultOf(err).String()
	}
	s.opts.Timer.End(idx, note)
	span.End(note)
	return v, err
}

func (s *Session) cacheGet(ctx context.Context, cache *ChunkCache, file *source.File, warnings *diag.Bag) (*bytecode.Chunk, bool) {
	if cache == nil {
		return nil, false
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "cache/get", trace.ParentID(ctx))
	chunk, hit, err := cache.Get(file.Hash)
	if err != nil {
		warnings.Add(diag.New(diag.SevWarning, diag.IOCacheCorrupted, source.Span{File: file.ID},
			fmt.Sprintf("ignoring cached chunk: %v", err)))
		span.End("corrupted")
		return nil, false
	}
	if hit {
		span.End("hit")
	} else {
		span.End("miss")
	}
	return chunk, hit
}

func (s *Session) cachePut(ctx context.Context, cache *ChunkCache, file *source.File, chunk *bytecode.Chunk, warnings *diag.Bag) {
	if cache == nil {
		return
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "cache/put", trace.ParentID(ctx))
	if err := cache.Put(file.Hash, file.Path, chunk); err != nil {
		warnings.Add(diag.New(diag.SevWarning, diag.IOCacheCorrupted, source.Span{File: file.ID},
			fmt.Sprintf("cannot store chunk: %v", err)))
		span.End("failed")
		return
	}
	span.End("")
}

func (s *Session) maxDiagnostics() int {
	if s.opts.MaxDiagnostics > 0 {
		return s.opts.MaxDiagnostics
	}
	return 16
}
