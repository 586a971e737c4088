package driver

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"lox/internal/bytecode"
	"lox/internal/diag"
	"lox/internal/source"
	"lox/internal/vm"
)

// BuildResult is a compiled script, optionally written out as an image.
type BuildResult struct {
	FileSet *source.FileSet
	File    *source.File
	Chunk   *bytecode.Chunk
	Output  string // image path, empty when nothing was written
}

// CompileFile loads and compiles path without running it.
// Compile failures are returned as *vm.CompileError.
func CompileFile(ctx context.Context, path string, opts CompileOptions) (*BuildResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, &LoadError{Code: diag.IOLoadFileError, Path: path, Err: err}
	}
	file := fs.Get(id)
	res := &BuildResult{FileSet: fs, File: file}

	chunk, bag := Compile(ctx, file, opts)
	if bag.HasErrors() {
		return res, &vm.CompileError{File: file, Bag: bag}
	}
	res.Chunk = chunk
	return res, nil
}

// Build compiles path and writes a chunk image to out
// (default: path with the .loxc extension).
func Build(ctx context.Context, path, out string, opts CompileOptions) (*BuildResult, error) {
	res, err := CompileFile(ctx, path, opts)
	if err != nil {
		return res, err
	}
	if out == "" {
		out = ImagePathFor(path)
	}
	img, err := bytecode.NewImage(res.Chunk, res.File.Path, res.File.Hash)
	if err != nil {
		return res, err
	}
	if err := bytecode.WriteImageFile(out, img); err != nil {
		return res, err
	}
	res.Output = out
	return res, nil
}

// Disassemble compiles path and writes its listing under the "====path====" header.
func Disassemble(ctx context.Context, w io.Writer, path string, opts CompileOptions) (*BuildResult, error) {
	var (
		res *BuildResult
		err error
	)
	if bytecode.IsImagePath(path) {
		img, imgErr := bytecode.ReadImageFile(path)
		if imgErr != nil {
			return nil, imageLoadError(path, imgErr)
		}
		res = &BuildResult{Chunk: img.Chunk}
	} else if res, err = CompileFile(ctx, path, opts); err != nil {
		return res, err
	}
	return res, bytecode.DisassembleChunk(w, res.Chunk, path)
}

// ImagePathFor replaces the extension of a script path with .loxc.
func ImagePathFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + bytecode.ImageExt
}
