package bytecode

import (
	"errors"
	"testing"

	"lox/internal/value"
)

func TestWriteConstantReturnsSequentialIndices(t *testing.T) {
	c := New()
	for want := 0; want < 3; want++ {
		if got := c.WriteConstant(value.Number(float64(want)), 1); got != want {
			t.Fatalf("WriteConstant index = %d, want %d", got, want)
		}
	}
	c.WriteReturn(2)

	if c.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", c.Len())
	}
	if len(c.Lines) != c.Len() {
		t.Fatalf("one line per slot expected, got %d lines", len(c.Lines))
	}
	if c.LineAt(6) != 2 || c.LineAt(99) != 0 {
		t.Fatalf("unexpected lines %v", c.Lines)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConstantAt(t *testing.T) {
	c := New()
	c.WriteConstant(value.Number(1.2), 1)
	c.WriteConstant(value.String("s"), 1)
	c.WriteReturn(1)

	v, err := c.ConstantAt(2)
	if err != nil {
		t.Fatalf("ConstantAt: %v", err)
	}
	if v.String() != "s" {
		t.Fatalf("ConstantAt(2) = %v", v)
	}

	tests := []struct {
		name   string
		offset int
		want   error
	}{
		{"operand slot", 1, ErrOperandPairing},
		{"return has no constant", 4, ErrOperandPairing},
		{"past the end", 5, ErrOffsetRange},
		{"negative", -1, ErrOffsetRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.ConstantAt(tt.offset); !errors.Is(err, tt.want) {
				t.Fatalf("ConstantAt(%d) error = %v, want %v", tt.offset, err, tt.want)
			}
		})
	}
}

func TestConstantAtCorruptChunks(t *testing.T) {
	missing := &Chunk{
		Code:      []Slot{OpSlot(OpConstant)},
		Lines:     []int{1},
		Constants: []value.Value{value.Number(1)},
	}
	if _, err := missing.ConstantAt(0); !errors.Is(err, ErrOperandPairing) {
		t.Fatalf("missing operand: %v", err)
	}

	notOperand := &Chunk{
		Code:      []Slot{OpSlot(OpConstant), OpSlot(OpReturn)},
		Lines:     []int{1, 1},
		Constants: []value.Value{value.Number(1)},
	}
	if _, err := notOperand.ConstantAt(0); !errors.Is(err, ErrOperandPairing) {
		t.Fatalf("instruction in operand position: %v", err)
	}

	badIndex := &Chunk{
		Code:  []Slot{OpSlot(OpConstant), OperandSlot(3)},
		Lines: []int{1, 1},
	}
	if _, err := badIndex.ConstantAt(0); !errors.Is(err, ErrConstantIndex) {
		t.Fatalf("bad index: %v", err)
	}
	if err := badIndex.Validate(); !errors.Is(err, ErrConstantIndex) {
		t.Fatalf("Validate: %v", err)
	}
}

func TestOpAtRejectsOperandSlot(t *testing.T) {
	c := New()
	c.WriteConstant(value.Number(1), 1)
	if _, err := c.OpAt(1); !errors.Is(err, ErrOperandPairing) {
		t.Fatalf("OpAt(operand) error = %v", err)
	}
	if op, err := c.OpAt(0); err != nil || op != OpConstant {
		t.Fatalf("OpAt(0) = %v, %v", op, err)
	}
}
