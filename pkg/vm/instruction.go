package vm

import "fmt"

type Opcode string

// Instruction set of the machine. Jump and call targets are absolute
// instruction indices, already resolved by the assembler; the machine never
// performs name lookup.
const (
	OpPush Opcode = "Push"
	OpPop  Opcode = "Pop"

	OpAdd  Opcode = "Add"
	OpSub  Opcode = "Sub"
	OpMul  Opcode = "Mul"
	OpDiv  Opcode = "Div"
	OpIncr Opcode = "Incr"
	OpDecr Opcode = "Decr"

	OpJump Opcode = "Jump"
	OpJE   Opcode = "JE"
	OpJNE  Opcode = "JNE"
	OpJGT  Opcode = "JGT"
	OpJLT  Opcode = "JLT"
	OpJGE  Opcode = "JGE"
	OpJLE  Opcode = "JLE"

	OpGet    Opcode = "Get"
	OpSet    Opcode = "Set"
	OpGetArg Opcode = "GetArg"
	OpSetArg Opcode = "SetArg"

	OpCall Opcode = "Call"
	OpRet  Opcode = "Ret"

	OpNoop       Opcode = "Noop"
	OpPrint      Opcode = "Print"
	OpPrintC     Opcode = "PrintC"
	OpPrintStack Opcode = "PrintStack"
)

// Instruction is a single resolved instruction: an opcode plus at most one
// integer operand. The operand is a signed value for Push, an absolute
// instruction index for the jump family and Call, and a non-negative stack
// offset for Get/Set/GetArg/SetArg. Unused otherwise.
type Instruction struct {
	Op  Opcode
	Arg int64
}

// HasArg reports whether the opcode carries an operand.
func (i Instruction) HasArg() bool {
	switch i.Op {
	case OpPush, OpJump, OpJE, OpJNE, OpJGT, OpJLT, OpJGE, OpJLE,
		OpGet, OpSet, OpGetArg, OpSetArg, OpCall:
		return true
	default:
		return false
	}
}

// String returns a stable listing form of the instruction.
func (i Instruction) String() string {
	if i.HasArg() {
		return fmt.Sprintf("%s %d", i.Op, i.Arg)
	}

	return string(i.Op)
}

// Program is an ordered, fully resolved instruction sequence, indexed by
// instruction pointer. One instruction per source line: blank, comment,
// label, and End lines all assemble to Noop so that instruction indices stay
// aligned with line numbers.
type Program []Instruction
