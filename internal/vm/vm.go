// Package vm executes bytecode chunks on a fixed-capacity operand stack.
package vm

import (
	"fmt"
	"io"
	"os"

	"lox/internal/bytecode"
	"lox/internal/compiler"
	"lox/internal/source"
	"lox/internal/value"
)

// Options configures a VM. The zero value is usable.
type Options struct {
	Debug          bool      // trace every dispatch and dump tokens while compiling
	StackCapacity  int       // 0 selects DefaultStackCapacity
	Out            io.Writer // receives "value <v>" on Return; defaults to os.Stdout
	Trace          io.Writer // receives debug output; defaults to Out
	MaxDiagnostics int
}

// State is the dispatch loop state.
type State uint8

const (
	StateReady State = iota
	StateRunning
	StateHaltedNormal
	StateHaltedError
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateHaltedNormal:
		return "halted"
	case StateHaltedError:
		return "halted-error"
	}
	return "unknown"
}

// VM owns at most one chunk at a time. Instances share nothing, so any
// number of them may coexist; a single instance is not safe for concurrent use.
type VM struct {
	opts   Options
	out    io.Writer
	tracer *Tracer
	stack  *Stack
	eb     *errorBuilder

	chunk  *bytecode.Chunk
	ip     int
	state  State
	result value.Value
}

// New creates a VM. Debug mode is fixed for the VM's lifetime.
func New(opts Options) *VM {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	vm := &VM{
		opts:  opts,
		out:   out,
		stack: NewStack(opts.StackCapacity),
		state: StateReady,
	}
	if opts.Debug {
		tw := opts.Trace
		if tw == nil {
			tw = out
		}
		vm.tracer = NewTracer(tw)
	}
	vm.eb = &errorBuilder{vm: vm}
	return vm
}

// Interpret compiles file, binds the chunk and runs it to a halt.
// It returns *CompileError or *RuntimeError on failure.
func (vm *VM) Interpret(file *source.File) (value.Value, error) {
	chunk, bag := compiler.Compile(file, compiler.Options{
		TokenDump:      vm.tracer.Writer(),
		MaxDiagnostics: vm.opts.MaxDiagnostics,
	})
	if bag.HasErrors() {
		vm.chunk = nil
		vm.state = StateHaltedError
		return value.Value{}, &CompileError{File: file, Bag: bag}
	}
	return vm.Execute(chunk, "main")
}

// Load binds chunk, first dumping it under label in debug mode.
func (vm *VM) Load(chunk *bytecode.Chunk, label string) {
	vm.tracer.TraceChunk(chunk, label)
	vm.Bind(chunk)
}

// Execute loads chunk and dispatches until Return or a runtime error.
func (vm *VM) Execute(chunk *bytecode.Chunk, label string) (value.Value, error) {
	vm.Load(chunk, label)
	return vm.loop()
}

// Bind replaces the current chunk, resets ip and empties the stack.
func (vm *VM) Bind(chunk *bytecode.Chunk) {
	vm.chunk = chunk
	vm.ip = 0
	vm.stack.Reset()
	vm.result = value.Value{}
	vm.state = StateReady
}

// Run binds chunk and dispatches until Return or a runtime error.
func (vm *VM) Run(chunk *bytecode.Chunk) (value.Value, error) {
	vm.Bind(chunk)
	return vm.loop()
}

func (vm *VM) loop() (value.Value, error) {
	for !vm.Halted() {
		if err := vm.Step(); err != nil {
			return value.Value{}, err
		}
	}
	return vm.result, nil
}

// Halted reports whether the loop reached a terminal state.
func (vm *VM) Halted() bool {
	return vm.state == StateHaltedNormal || vm.state == StateHaltedError
}

// Step executes exactly one instruction.
func (vm *VM) Step() (err error) {
	if vm.Halted() {
		return nil
	}
	defer func() {
		if err != nil {
			vm.state = StateHaltedError
		}
	}()

	if vm.chunk == nil {
		return vm.eb.noChunk()
	}
	vm.state = StateRunning

	if vm.ip >= vm.chunk.Len() {
		return vm.eb.ipOutOfRange(vm.chunk.Len())
	}
	op, opErr := vm.chunk.OpAt(vm.ip)
	if opErr != nil {
		return vm.eb.corruptChunk(opErr)
	}

	switch op {
	case bytecode.OpConstant:
		v, cErr := vm.chunk.ConstantAt(vm.ip)
		if cErr != nil {
			return vm.eb.corruptChunk(cErr)
		}
		vm.tracer.TraceStep(vm.stack.Values(), vm.chunk, vm.ip)
		if pErr := vm.stack.Push(v); pErr != nil {
			return vm.eb.stackOverflow(vm.stack.Cap())
		}
		vm.ip += 2

	case bytecode.OpReturn:
		vm.tracer.TraceStep(vm.stack.Values(), vm.chunk, vm.ip)
		v, pErr := vm.stack.Pop()
		if pErr != nil {
			return vm.eb.stackUnderflow()
		}
		fmt.Fprintf(vm.out, "value %s\n", v)
		vm.result = v
		vm.state = StateHaltedNormal

	default:
		return vm.eb.unknownOpcode(uint8(op))
	}
	return nil
}

// State returns the current dispatch state.
func (vm *VM) State() State { return vm.state }

// IP returns the instruction pointer.
func (vm *VM) IP() int { return vm.ip }

// Stack exposes the operand stack for inspection.
func (vm *VM) Stack() *Stack { return vm.stack }

// Chunk returns the bound chunk, or nil.
func (vm *VM) Chunk() *bytecode.Chunk { return vm.chunk }

// Result returns the value produced by the last Return.
func (vm *VM) Result() value.Value { return vm.result }

// TraceWriter returns the debug output writer, or nil outside debug mode.
func (vm *VM) TraceWriter() io.Writer { return vm.tracer.Writer() }
