package bytecode

import (
	"bytes"
	"errors"
	"testing"

	"lox/internal/value"
)

func TestDisassembleChunkGolden(t *testing.T) {
	c := New()
	c.WriteConstant(value.Number(1.2), 1)
	c.WriteReturn(1)

	var buf bytes.Buffer
	if err := DisassembleChunk(&buf, c, "main"); err != nil {
		t.Fatalf("DisassembleChunk: %v", err)
	}
	want := "====main====\n" +
		"0000 OP_CONSTANT              1.2\n" +
		"0002 OP_RETURN\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected disassembly:\nwant:\n%q\ngot:\n%q", want, got)
	}
}

func TestDisassembleInstructionWidths(t *testing.T) {
	c := New()
	c.WriteConstant(value.String("a long constant value"), 1)
	c.WriteReturn(1)

	var buf bytes.Buffer
	n, err := DisassembleInstruction(&buf, c, 0)
	if err != nil || n != 2 {
		t.Fatalf("constant: n=%d err=%v", n, err)
	}
	if got := buf.String(); got != "0000 OP_CONSTANT a long constant value\n" {
		t.Fatalf("got %q", got)
	}

	buf.Reset()
	n, err = DisassembleInstruction(&buf, c, 2)
	if err != nil || n != 1 {
		t.Fatalf("return: n=%d err=%v", n, err)
	}
}

func TestDisassembleOperandSlotFails(t *testing.T) {
	c := New()
	c.WriteConstant(value.Number(7), 1)

	var buf bytes.Buffer
	if _, err := DisassembleInstruction(&buf, c, 1); !errors.Is(err, ErrOperandPairing) {
		t.Fatalf("expected pairing error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing must be printed for an operand slot, got %q", buf.String())
	}
}

func TestDisassembleEmptyChunk(t *testing.T) {
	var buf bytes.Buffer
	if err := DisassembleChunk(&buf, New(), "empty"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "====empty====\n" {
		t.Fatalf("got %q", buf.String())
	}
}
