package driver

import (
	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/source"
	"lox/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans path to EOF, collecting lexical diagnostics in Bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, &LoadError{Code: diag.IOLoadFileError, Path: path, Err: err}
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  scanTokens(file, bag),
		Bag:     bag,
	}, nil
}

func scanTokens(file *source.File, bag *diag.Bag) []token.Token {
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
