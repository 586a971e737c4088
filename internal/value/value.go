// Package value defines the runtime datum of the lox VM.
package value

import (
	"math"
	"strconv"
)

// Kind identifies the runtime type of a Value.
type Kind uint8

const (
	// KindNil is the zero Kind, so the zero Value is nil.
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

// String returns a human-readable name for the value kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a closed tagged union. Only the field selected by Kind is meaningful.
type Value struct {
	Kind Kind
	Num  float64
	Bool bool
	Str  string
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Number wraps a float64.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// String wraps a string.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

func (v Value) IsNil() bool    { return v.Kind == KindNil }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// AsNumber returns the numeric payload; ok is false for other kinds.
func (v Value) AsNumber() (n float64, ok bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// Equal compares kind and payload. NaN is never equal to itself.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindNumber:
		return v.Num == o.Num
	case KindString:
		return v.Str == o.Str
	}
	return false
}

// String renders the value the way `print` and the disassembler show it.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return formatNumber(v.Num)
	case KindString:
		return v.Str
	}
	return "<invalid>"
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
