package bytecode

import (
	"fmt"
	"io"
)

// DisassembleChunk writes a "====label====" header and one line per
// instruction, visiting every slot exactly once.
func DisassembleChunk(w io.Writer, chunk *Chunk, label string) error {
	if chunk == nil {
		return fmt.Errorf("nil chunk")
	}
	if _, err := fmt.Fprintf(w, "====%s====\n", label); err != nil {
		return err
	}
	for offset := 0; offset < chunk.Len(); {
		n, err := DisassembleInstruction(w, chunk, offset)
		if err != nil {
			return err
		}
		offset += n
	}
	return nil
}

// DisassembleInstruction writes the instruction at offset and returns the
// number of slots it occupies: 1 for OpReturn, 2 for OpConstant.
// Nothing is written when offset lands on an operand slot.
func DisassembleInstruction(w io.Writer, chunk *Chunk, offset int) (int, error) {
	op, err := chunk.OpAt(offset)
	if err != nil {
		return 0, err
	}
	switch op {
	case OpReturn:
		return simpleInstruction(w, op, offset)
	case OpConstant:
		return constantInstruction(w, chunk, op, offset)
	default:
		return 0, fmt.Errorf("unknown opcode %d at %04d", uint8(op), offset)
	}
}

func simpleInstruction(w io.Writer, op OpCode, offset int) (int, error) {
	if _, err := fmt.Fprintf(w, "%04d %s\n", offset, op.Mnemonic()); err != nil {
		return 0, err
	}
	return 1, nil
}

func constantInstruction(w io.Writer, chunk *Chunk, op OpCode, offset int) (int, error) {
	v, err := chunk.ConstantAt(offset)
	if err != nil {
		return 0, err
	}
	if _, err := fmt.Fprintf(w, "%04d %-10s %16s\n", offset, op.Mnemonic(), v.String()); err != nil {
		return 0, err
	}
	return 2, nil
}
