package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"and":    KwAnd,
		"class":  KwClass,
		"else":   KwElse,
		"false":  KwFalse,
		"for":    KwFor,
		"fun":    KwFun,
		"if":     KwIf,
		"nil":    KwNil,
		"or":     KwOr,
		"print":  KwPrint,
		"return": KwReturn,
		"super":  KwSuper,
		"this":   KwThis,
		"true":   KwTrue,
		"var":    KwVar,
		"while":  KwWhile,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// префиксы, продолжения и регистр
	notKw := []string{
		"", "a", "f", "t", "an", "andy", "forest", "fo", "fa", "fals", "funk",
		"th", "thi", "tr", "tru", "truex", "These", "For", "NIL", "whiles",
		"classy", "x", "_", "print_",
	}
	for _, s := range notKw {
		if got, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want not keyword", s, got)
		}
	}
}
