package vm

import (
	"io"
	"os"
)

// Machine executes a resolved Program: a single-threaded fetch-execute loop
// over an operand stack, a call stack of saved frames, and a frame-offset
// register.
type Machine struct {
	prog Program // instruction sequence, immutable during a run
	ip   int     // instruction pointer

	stack  *Stack  // operand stack
	frames []Frame // call stack (saved frames)
	offset int64   // base of the current call frame (stack length at Call)

	out io.Writer // output writer for the print instructions

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
}

type Option func(*Machine)

// WithWriter sets the output writer for the print instructions
func WithWriter(w io.Writer) Option {
	return func(m *Machine) { m.out = w }
}

// WithMaxSteps sets a maximum number of steps before Run returns ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(m *Machine) { m.maxSteps = n }
}

// NewMachine creates a new Machine for the given program
func NewMachine(prog Program, opts ...Option) *Machine {
	m := &Machine{
		prog:   append(Program(nil), prog...),
		ip:     0,
		stack:  NewStack(),
		frames: make([]Frame, 0, 8),
		offset: 0,
	}

	for _, o := range opts {
		o(m)
	}

	if m.out == nil {
		m.out = os.Stdout
	}

	return m
}

// Load replaces the current program with a new one, resetting run state
func (m *Machine) Load(prog Program) {
	m.prog = append(Program(nil), prog...)
	m.Reset()
}

// Reset clears runtime state (operand stack, call stack, registers, counters)
func (m *Machine) Reset() {
	m.ip = 0
	m.stack = NewStack()
	m.frames = m.frames[:0]
	m.offset = 0
	m.steps = 0
}

// Program returns the active program
func (m *Machine) Program() Program {
	return m.prog
}

// Output returns the output writer used by the print instructions
func (m *Machine) Output() io.Writer {
	return m.out
}

// Stack returns a copy of the operand stack contents, bottom first
func (m *Machine) Stack() []int64 {
	return m.stack.Values()
}

// PC returns the current instruction pointer
func (m *Machine) PC() int {
	return m.ip
}

// CallDepth returns the number of active call frames
func (m *Machine) CallDepth() int {
	return len(m.frames)
}

// Apply executes a single instruction against the current machine state,
// outside of any loaded program. Stack, call-stack, and frame-offset effects
// apply as usual; instruction-pointer moves are recorded but meaningless
// without a program. Used by the interactive stepper.
func (m *Machine) Apply(in Instruction) error {
	if err := m.exec(m.ip, in); err != nil {
		return &Fault{IP: m.ip, Op: in.Op, Err: err}
	}

	return nil
}

// Run executes until the instruction pointer runs past the end of the
// program (normal halt) or an instruction faults.
func (m *Machine) Run() error {
	for {
		halted, err := m.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}
