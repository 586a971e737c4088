package bytecode

import (
	"errors"
	"fmt"

	"lox/internal/value"
)

var (
	// ErrOperandPairing reports an operand slot reached without its owning
	// instruction, or an instruction missing its operand.
	ErrOperandPairing = errors.New("operand slot pairing violated")
	// ErrConstantIndex reports an operand that does not address the pool.
	ErrConstantIndex = errors.New("constant index out of range")
	// ErrOffsetRange reports an offset outside the instruction sequence.
	ErrOffsetRange = errors.New("offset out of range")
)

// Chunk is one compiled unit: an append-only instruction sequence, one
// source line per slot, and the constant pool the operands index into.
type Chunk struct {
	Code      []Slot
	Lines     []int
	Constants []value.Value
}

// New returns an empty chunk.
func New() *Chunk {
	return &Chunk{}
}

// Len returns the number of slots, operands included.
func (c *Chunk) Len() int {
	return len(c.Code)
}

func (c *Chunk) write(s Slot, line int) {
	c.Code = append(c.Code, s)
	c.Lines = append(c.Lines, line)
}

// WriteReturn appends OpReturn.
func (c *Chunk) WriteReturn(line int) {
	c.write(OpSlot(OpReturn), line)
}

// WriteConstant appends OpConstant, adds v to the pool and appends the operand
// slot holding the new index, which it returns.
func (c *Chunk) WriteConstant(v value.Value, line int) int {
	idx := len(c.Constants)
	c.Constants = append(c.Constants, v)
	c.write(OpSlot(OpConstant), line)
	c.write(OperandSlot(idx), line)
	return idx
}

// OpAt returns the instruction at offset. Operand slots are not dispatchable.
func (c *Chunk) OpAt(offset int) (OpCode, error) {
	if offset < 0 || offset >= len(c.Code) {
		return 0, fmt.Errorf("%w: %d of %d", ErrOffsetRange, offset, len(c.Code))
	}
	s := c.Code[offset]
	if s.Kind != SlotOp {
		return 0, fmt.Errorf("%w: operand slot at %04d", ErrOperandPairing, offset)
	}
	return s.Op, nil
}

// ConstantAt resolves the constant loaded by the OpConstant at offset.
func (c *Chunk) ConstantAt(offset int) (value.Value, error) {
	op, err := c.OpAt(offset)
	if err != nil {
		return value.Value{}, err
	}
	if op != OpConstant {
		return value.Value{}, fmt.Errorf("%w: %s at %04d has no constant", ErrOperandPairing, op, offset)
	}
	if offset+1 >= len(c.Code) || c.Code[offset+1].Kind != SlotOperand {
		return value.Value{}, fmt.Errorf("%w: %s at %04d is missing its operand", ErrOperandPairing, op, offset)
	}
	idx := c.Code[offset+1].Operand
	if idx < 0 || idx >= len(c.Constants) {
		return value.Value{}, fmt.Errorf("%w: %d (pool size %d)", ErrConstantIndex, idx, len(c.Constants))
	}
	return c.Constants[idx], nil
}

// LineAt returns the source line of the slot at offset, or 0 when unknown.
func (c *Chunk) LineAt(offset int) int {
	if offset < 0 || offset >= len(c.Lines) {
		return 0
	}
	return c.Lines[offset]
}

// Validate walks the sequence once and checks operand pairing and pool indices.
func (c *Chunk) Validate() error {
	if len(c.Lines) != len(c.Code) {
		return fmt.Errorf("%w: %d lines for %d slots", ErrOffsetRange, len(c.Lines), len(c.Code))
	}
	for offset := 0; offset < len(c.Code); {
		op, err := c.OpAt(offset)
		if err != nil {
			return err
		}
		switch op {
		case OpConstant:
			if _, err := c.ConstantAt(offset); err != nil {
				return err
			}
		case OpReturn:
		default:
			return fmt.Errorf("unknown opcode %d at %04d", uint8(op), offset)
		}
		offset += 1 + op.OperandCount()
	}
	return nil
}
