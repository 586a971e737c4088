package driver

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"lox/internal/bytecode"
	"lox/internal/vm"
)

func TestBuildWritesImage(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "prog.lox", "2.5")

	res, err := Build(context.Background(), path, "", CompileOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Output != filepath.Join(dir, "prog.loxc") {
		t.Fatalf("output = %q", res.Output)
	}
	img, err := bytecode.ReadImageFile(res.Output)
	if err != nil {
		t.Fatalf("ReadImageFile: %v", err)
	}
	if img.SourceHash != res.File.Hash {
		t.Error("image must record the source hash")
	}

	var out bytes.Buffer
	if _, err := NewSession(Options{Out: &out}).RunFile(context.Background(), res.Output); err != nil {
		t.Fatalf("run image: %v", err)
	}
	if out.String() != "value 2.5\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestBuildCompileError(t *testing.T) {
	path := writeScript(t, t.TempDir(), "bad.lox", "1 2")
	_, err := Build(context.Background(), path, "", CompileOptions{})
	var ce *vm.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected compile error, got %v", err)
	}
}

func TestDisassemble(t *testing.T) {
	path := writeScript(t, t.TempDir(), "d.lox", "1.2;")

	var buf bytes.Buffer
	if _, err := Disassemble(context.Background(), &buf, path, CompileOptions{}); err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	want := "====" + path + "====\n" +
		"0000 OP_CONSTANT              1.2\n" +
		"0002 OP_RETURN\n"
	if buf.String() != want {
		t.Fatalf("listing mismatch\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestImagePathFor(t *testing.T) {
	tests := map[string]string{
		"main.lox":    "main.loxc",
		"dir/a.b.lox": "dir/a.b.loxc",
		"noext":       "noext.loxc",
	}
	for in, want := range tests {
		if got := ImagePathFor(in); got != want {
			t.Errorf("ImagePathFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokenize(t *testing.T) {
	path := writeScript(t, t.TempDir(), "t.lox", "var x @")
	res, err := Tokenize(path, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(res.Tokens))
	}
	first, ok := res.Bag.First()
	if !ok || !strings.HasPrefix(first.Code.ID(), "LEX") {
		t.Fatalf("expected lexical diagnostic, got %+v", res.Bag.Items())
	}
}
