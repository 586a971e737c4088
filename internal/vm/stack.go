package vm

import (
	"errors"

	"lox/internal/value"
)

// DefaultStackCapacity is the stack size used when Options leaves it zero.
const DefaultStackCapacity = 150

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is a fixed-capacity LIFO of values. 0 <= Len() <= Cap() always holds.
type Stack struct {
	values []value.Value
	top    int
}

// NewStack allocates a stack; capacity <= 0 selects DefaultStackCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultStackCapacity
	}
	return &Stack{values: make([]value.Value, capacity)}
}

// Push stores v on top of the stack.
func (s *Stack) Push(v value.Value) error {
	if s.top == len(s.values) {
		return ErrStackOverflow
	}
	s.values[s.top] = v
	s.top++
	return nil
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (value.Value, error) {
	if s.top == 0 {
		return value.Value{}, ErrStackUnderflow
	}
	s.top--
	v := s.values[s.top]
	s.values[s.top] = value.Value{}
	return v, nil
}

func (s *Stack) Len() int { return s.top }
func (s *Stack) Cap() int { return len(s.values) }

// Values returns the live entries, oldest first. Do not modify the slice.
func (s *Stack) Values() []value.Value {
	return s.values[:s.top]
}

// Reset empties the stack.
func (s *Stack) Reset() {
	clear(s.values[:s.top])
	s.top = 0
}
