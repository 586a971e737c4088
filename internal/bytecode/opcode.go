package bytecode

import "fmt"

// OpCode is a dispatchable instruction.
type OpCode uint8

const (
	// OpReturn pops the result and halts. No operand.
	OpReturn OpCode = iota
	// OpConstant pushes a pooled constant; the next slot holds its index.
	OpConstant
)

// Mnemonic returns the disassembler name of op.
func (op OpCode) Mnemonic() string {
	switch op {
	case OpReturn:
		return "OP_RETURN"
	case OpConstant:
		return "OP_CONSTANT"
	default:
		return fmt.Sprintf("OP_UNKNOWN(%d)", uint8(op))
	}
}

func (op OpCode) String() string { return op.Mnemonic() }

// OperandCount reports how many operand slots follow op.
func (op OpCode) OperandCount() int {
	if op == OpConstant {
		return 1
	}
	return 0
}

// SlotKind discriminates the elements of a chunk's instruction sequence.
type SlotKind uint8

const (
	// SlotOp holds an instruction; only these slots are dispatchable.
	SlotOp SlotKind = iota
	// SlotOperand holds the argument of the instruction right before it.
	SlotOperand
)

// Slot is one element of the instruction sequence: either an instruction or
// the operand of the instruction preceding it.
type Slot struct {
	Kind    SlotKind `msgpack:"k"`
	Op      OpCode   `msgpack:"o,omitempty"`
	Operand int      `msgpack:"a,omitempty"`
}

// OpSlot builds an instruction slot.
func OpSlot(op OpCode) Slot { return Slot{Kind: SlotOp, Op: op} }

// OperandSlot builds an operand slot carrying index.
func OperandSlot(index int) Slot { return Slot{Kind: SlotOperand, Operand: index} }
