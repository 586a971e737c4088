package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 1, Start: 8, End: 10},
			expected: Span{File: 1, Start: 2, End: 10},
		},
		{
			name:     "nested span",
			a:        Span{File: 1, Start: 0, End: 10},
			b:        Span{File: 1, Start: 3, End: 4},
			expected: Span{File: 1, Start: 0, End: 10},
		},
		{
			name:     "different files are not merged",
			a:        Span{File: 1, Start: 0, End: 1},
			b:        Span{File: 2, Start: 5, End: 9},
			expected: Span{File: 1, Start: 0, End: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_LenAndEmpty(t *testing.T) {
	sp := Span{Start: 3, End: 8}
	if sp.Len() != 5 {
		t.Errorf("Len() = %d, want 5", sp.Len())
	}
	if sp.Empty() {
		t.Error("span should not be empty")
	}
	if !(Span{Start: 4, End: 4}).Empty() {
		t.Error("zero-length span should be empty")
	}
	if got := sp.String(); got != "0:3-8" {
		t.Errorf("String() = %q", got)
	}
}
