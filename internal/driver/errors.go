package driver

import (
	"errors"
	"fmt"

	"lox/internal/bytecode"
	"lox/internal/diag"
	"lox/internal/source"
)

// LoadError reports a script or chunk image that could not be read.
type LoadError struct {
	Code diag.Code // IOLoadFileError or IOBadChunkImage
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code.ID(), e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Diagnostic converts the error for uniform rendering next to compile errors.
func (e *LoadError) Diagnostic() diag.Diagnostic {
	d := diag.Diagnostic{Severity: diag.SevError, Code: e.Code, Primary: source.Span{File: source.NoFile}}
	d.Message = fmt.Sprintf("%s: %v", e.Path, e.Err)
	return d
}

func imageLoadError(path string, err error) *LoadError {
	code := diag.IOLoadFileError
	if errors.Is(err, bytecode.ErrBadImage) {
		code = diag.IOBadChunkImage
	}
	return &LoadError{Code: code, Path: path, Err: err}
}
