package vm

import (
	"errors"
	"fmt"
)

var (
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrIndexOutOfRange    = errors.New("stack index out of range")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrCallStackUnderflow = errors.New("return with no active call")

	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
)

// Fault is a fatal runtime error, annotated with the instruction pointer and
// opcode that raised it. The run aborts immediately; faults are never caught
// or retried internally.
type Fault struct {
	IP  int
	Op  Opcode
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at instruction %d: %v", f.Op, f.IP, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
