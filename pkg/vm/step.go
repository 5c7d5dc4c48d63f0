package vm

import "fmt"

// Exec runs a program on a fresh machine writing to stdout
func Exec(prog Program) error {
	return NewMachine(prog).Run()
}

// Step executes a single instruction, returning (halted, error). A returned
// error is always a *Fault carrying the instruction pointer and opcode.
func (m *Machine) Step() (bool, error) {
	if m.ip < 0 || m.ip >= len(m.prog) {
		// halt when the pointer runs past the program
		return true, nil
	}

	if m.maxSteps > 0 && m.steps >= m.maxSteps {
		return false, &Fault{IP: m.ip, Op: m.prog[m.ip].Op, Err: ErrMaxStepsExceeded}
	}

	pc := m.ip
	in := m.prog[pc]
	m.steps++

	if err := m.exec(pc, in); err != nil {
		return false, &Fault{IP: pc, Op: in.Op, Err: err}
	}

	return false, nil
}

// exec applies one instruction's stack effect and advances the instruction
// pointer, unless the instruction set a new pointer value itself.
func (m *Machine) exec(pc int, in Instruction) error {
	next := pc + 1

	switch in.Op {
	case OpNoop:
		// placeholder for blank/comment/label/End lines

	case OpPush:
		m.stack.Push(in.Arg)

	case OpPop:
		if _, err := m.stack.Pop(); err != nil {
			return err
		}

	case OpAdd, OpSub, OpMul, OpDiv:
		b, err := m.stack.Pop()
		if err != nil {
			return err
		}
		a, err := m.stack.Pop()
		if err != nil {
			return err
		}

		switch in.Op {
		case OpAdd:
			m.stack.Push(a + b)
		case OpSub:
			m.stack.Push(a - b)
		case OpMul:
			m.stack.Push(a * b)
		case OpDiv:
			if b == 0 {
				return ErrDivisionByZero
			}
			// Go integer division truncates toward zero
			m.stack.Push(a / b)
		}

	case OpIncr:
		a, err := m.stack.Pop()
		if err != nil {
			return err
		}
		m.stack.Push(a + 1)

	case OpDecr:
		a, err := m.stack.Pop()
		if err != nil {
			return err
		}
		m.stack.Push(a - 1)

	case OpJump:
		next = int(in.Arg)

	case OpJE, OpJNE, OpJGT, OpJLT, OpJGE, OpJLE:
		a, err := m.stack.Pop()
		if err != nil {
			return err
		}

		var taken bool
		switch in.Op {
		case OpJE:
			taken = a == 0
		case OpJNE:
			taken = a != 0
		case OpJGT:
			taken = a > 0
		case OpJLT:
			taken = a < 0
		case OpJGE:
			taken = a >= 0
		case OpJLE:
			taken = a <= 0
		}

		if taken {
			next = int(in.Arg)
		}

	case OpGet:
		// absolute index from the stack bottom
		v, err := m.stack.Get(in.Arg)
		if err != nil {
			return err
		}
		m.stack.Push(v)

	case OpSet:
		a, err := m.stack.Pop()
		if err != nil {
			return err
		}
		if err := m.stack.Set(in.Arg, a); err != nil {
			return err
		}

	case OpGetArg:
		// argument i sits below the frame offset
		v, err := m.stack.Get(m.offset - 1 - in.Arg)
		if err != nil {
			return err
		}
		m.stack.Push(v)

	case OpSetArg:
		a, err := m.stack.Pop()
		if err != nil {
			return err
		}
		if err := m.stack.Set(m.offset-1-in.Arg, a); err != nil {
			return err
		}

	case OpCall:
		m.frames = append(m.frames, Frame{ReturnIP: pc + 1, Offset: m.offset})
		m.offset = int64(m.stack.Len())
		next = int(in.Arg)

	case OpRet:
		if len(m.frames) == 0 {
			return ErrCallStackUnderflow
		}

		f := m.frames[len(m.frames)-1]
		m.frames = m.frames[:len(m.frames)-1]
		m.offset = f.Offset
		next = f.ReturnIP

	case OpPrint:
		v, err := m.stack.Peek()
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "%d\n", v)

	case OpPrintC:
		v, err := m.stack.Peek()
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "%c", rune(v))

	case OpPrintStack:
		fmt.Fprintf(m.out, "%v\n", m.stack.Values())

	default:
		return fmt.Errorf("unknown opcode %q", in.Op)
	}

	m.ip = next
	return nil
}
