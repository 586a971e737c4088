package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/internal/bytecode"
	"lox/internal/diag"
	"lox/internal/observ"
	"lox/internal/trace"
	"lox/internal/vm"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunSource(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(Options{Out: &out})

	res, err := s.RunSource(context.Background(), "repl", []byte("1.2"))
	if err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if n, ok := res.Value.AsNumber(); !ok || n != 1.2 {
		t.Errorf("value = %v", res.Value)
	}
	if out.String() != "value 1.2\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestSessionContinuesAfterCompileError(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(Options{Out: &out})
	ctx := context.Background()

	_, err := s.RunSource(ctx, "repl", []byte("@"))
	var ce *vm.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *vm.CompileError, got %v", err)
	}
	if vm.ResultOf(err) != vm.InterpretCompileError {
		t.Errorf("ResultOf = %v", vm.ResultOf(err))
	}

	if _, err := s.RunSource(ctx, "repl", []byte("true")); err != nil {
		t.Fatalf("second line: %v", err)
	}
	if out.String() != "value true\n" {
		t.Errorf("output = %q", out.String())
	}
	if s.FileSet().Len() != 2 {
		t.Errorf("expected 2 buffers, got %d", s.FileSet().Len())
	}
}

func TestRunFileMissing(t *testing.T) {
	s := NewSession(Options{Out: &bytes.Buffer{}})
	_, err := s.RunFile(context.Background(), filepath.Join(t.TempDir(), "nope.lox"))
	var le *LoadError
	if !errors.As(err, &le) || le.Code != diag.IOLoadFileError {
		t.Fatalf("expected IO load error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("LoadError must unwrap to the os error")
	}
}

func TestRunFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.lox", "42;\n")
	cache, err := NewChunkCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	for i, wantHit := range []bool{false, true} {
		var out bytes.Buffer
		s := NewSession(Options{Out: &out, Cache: cache})
		res, err := s.RunFile(context.Background(), path)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if res.CacheHit != wantHit {
			t.Errorf("run %d: CacheHit = %v, want %v", i, res.CacheHit, wantHit)
		}
		if out.String() != "value 42\n" {
			t.Errorf("run %d: output = %q", i, out.String())
		}
	}
}

func TestRunFileCorruptedCache(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.lox", "\"hi\"")
	cache, err := NewChunkCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	s := NewSession(Options{Out: &bytes.Buffer{}, Cache: cache})
	res, err := s.RunFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cache.pathFor(res.File.Hash), []byte{0xc1, 0xff}, 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	s = NewSession(Options{Out: &out, Cache: cache})
	res, err = s.RunFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("corrupted entry must not count as a hit")
	}
	first, ok := res.Warnings.First()
	if !ok || first.Code != diag.IOCacheCorrupted || first.Severity != diag.SevWarning {
		t.Fatalf("expected cache warning, got %+v", res.Warnings.Items())
	}
	if out.String() != "value hi\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunDebugListing(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(Options{Out: &out, Debug: true})
	if _, err := s.RunSource(context.Background(), "repl", []byte("7")); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"====main====\n", "====execution====\n", "[ 7 ]\n0002 OP_RETURN\n", "value 7\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("debug output misses %q:\n%s", want, got)
		}
	}
}

func TestRunTracesSteps(t *testing.T) {
	var traceBuf bytes.Buffer
	tracer := trace.NewStreamTracer(&traceBuf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tracer)

	timer := observ.NewTimer()
	var out bytes.Buffer
	s := NewSession(Options{Out: &out, Timer: timer})
	if _, err := s.RunSource(ctx, "repl", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if out.String() != "value 1\n" {
		t.Errorf("output = %q", out.String())
	}

	got := traceBuf.String()
	for _, want := range []string{"→ compile", "• step@0 (OP_CONSTANT)", "• step@2 (OP_RETURN)", "← run"} {
		if !strings.Contains(got, want) {
			t.Errorf("trace misses %q:\n%s", want, got)
		}
	}

	rep := timer.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "compile" || rep.Phases[1].Name != "run" {
		t.Errorf("unexpected phases %+v", rep.Phases)
	}
}

func TestRunImageRuntimeError(t *testing.T) {
	chunk := bytecode.New()
	chunk.WriteReturn(3)
	img, err := bytecode.NewImage(chunk, "empty.lox", [32]byte{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "empty.loxc")
	if err := bytecode.WriteImageFile(path, img); err != nil {
		t.Fatal(err)
	}

	var traceBuf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&traceBuf, trace.LevelPhase, trace.FormatText))

	s := NewSession(Options{Out: &bytes.Buffer{}})
	_, err = s.RunFile(ctx, path)
	var re *vm.RuntimeError
	if !errors.As(err, &re) || re.Code != vm.PanicStackUnderflow || re.Line != 3 {
		t.Fatalf("expected stack underflow on line 3, got %v", err)
	}
	if !strings.Contains(traceBuf.String(), "← run (runtime error)") {
		t.Errorf("run span misses outcome:\n%s", traceBuf.String())
	}
}

func TestRunBadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.loxc")
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewSession(Options{Out: &bytes.Buffer{}})
	_, err := s.RunFile(context.Background(), path)
	var le *LoadError
	if !errors.As(err, &le) || le.Code != diag.IOBadChunkImage {
		t.Fatalf("expected bad image error, got %v", err)
	}
}
