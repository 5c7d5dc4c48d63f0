// Package asm assembles whitespace-separated mnemonic source into a resolved
// vm.Program. Assembly is a distinct pre-pass: label and procedure names are
// replaced by absolute instruction indices before the machine ever runs, and
// every source line (including blanks and comments) produces exactly one
// instruction so that line numbers and instruction indices stay aligned.
package asm

import (
	"strconv"
	"strings"

	"stackvm/pkg/vm"
)

// procedure records where a Proc body starts and the index just past its
// matching End line.
type procedure struct {
	start int
	end   int
}

type Assembler struct {
	lines  [][]string           // source lines split into fields
	labels map[string]int       // label name -> line index
	procs  map[string]procedure // procedure name -> body range
	errors []string             // list of errors
}

// New creates a new assembler for the given source text
func New(src string) *Assembler {
	raw := strings.Split(src, "\n")
	lines := make([][]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.Fields(l)
	}

	return &Assembler{
		lines:  lines,
		labels: make(map[string]int),
		procs:  make(map[string]procedure),
		errors: []string{},
	}
}

// Assemble resolves labels and procedures, then parses every line into one
// instruction. On failure it returns the error summary; individual errors
// are available via Errors.
func (a *Assembler) Assemble() (vm.Program, error) {
	a.findLabels()
	a.findProcedures()

	prog := make(vm.Program, 0, len(a.lines))
	for i, tok := range a.lines {
		prog = append(prog, a.parseLine(i, tok))
	}

	if len(a.errors) > 0 {
		return nil, a.summaryError()
	}

	return prog, nil
}

// isComment reports whether the line's fields form a comment line
func isComment(tok []string) bool {
	return len(tok) > 0 && strings.HasPrefix(tok[0], "--")
}

// findLabels records every `label <name>` line
func (a *Assembler) findLabels() {
	for i, tok := range a.lines {
		if len(tok) == 2 && tok[0] == "label" {
			if _, ok := a.labels[tok[1]]; ok {
				a.addDuplicateNameError("label", tok[1], i)
				continue
			}
			a.labels[tok[1]] = i
		}
	}
}

// findProcedures records every Proc..End range. A Proc declaration line
// becomes a jump over the body, so top-level execution falls through past it.
func (a *Assembler) findProcedures() {
	for i := 0; i < len(a.lines); i++ {
		tok := a.lines[i]
		if len(tok) != 2 || tok[0] != "Proc" {
			continue
		}

		name := tok[1]
		end := -1
		for j := i + 1; j < len(a.lines); j++ {
			if len(a.lines[j]) == 1 && a.lines[j][0] == "End" {
				end = j
				break
			}
		}

		if end == -1 {
			a.addUnterminatedProcError(name, i)
			return
		}

		if _, ok := a.procs[name]; ok {
			a.addDuplicateNameError("procedure", name, i)
		} else {
			a.procs[name] = procedure{start: i, end: end + 1}
		}

		i = end
	}
}

// parseLine turns one source line into one instruction. Errors are recorded
// and a Noop returned so that later lines keep their indices.
func (a *Assembler) parseLine(idx int, tok []string) vm.Instruction {
	noop := vm.Instruction{Op: vm.OpNoop}

	if len(tok) == 0 || isComment(tok) {
		return noop
	}

	switch tok[0] {
	case "label", "End":
		return noop

	case "Push":
		v, ok := a.signedOperand(idx, tok)
		if !ok {
			return noop
		}
		return vm.Instruction{Op: vm.OpPush, Arg: v}

	case "Pop", "Add", "Sub", "Mul", "Div", "Incr", "Decr",
		"Ret", "Noop", "Print", "PrintC", "PrintStack":
		if len(tok) != 1 {
			a.addUnexpectedOperandError(tok[0], idx)
			return noop
		}
		return vm.Instruction{Op: vm.Opcode(tok[0])}

	case "Jump", "JE", "JNE", "JGT", "JLT", "JGE", "JLE":
		target, ok := a.labelOperand(idx, tok)
		if !ok {
			return noop
		}
		return vm.Instruction{Op: vm.Opcode(tok[0]), Arg: int64(target)}

	case "Get", "Set", "GetArg", "SetArg":
		v, ok := a.offsetOperand(idx, tok)
		if !ok {
			return noop
		}
		return vm.Instruction{Op: vm.Opcode(tok[0]), Arg: v}

	case "Proc":
		if len(tok) != 2 {
			a.addMissingOperandError("Proc", idx)
			return noop
		}
		p, ok := a.procs[tok[1]]
		if !ok {
			// findProcedures already reported the cause
			return noop
		}
		return vm.Instruction{Op: vm.OpJump, Arg: int64(p.end)}

	case "Call":
		if len(tok) != 2 {
			a.addMissingOperandError("Call", idx)
			return noop
		}
		p, ok := a.procs[tok[1]]
		if !ok {
			a.addUndefinedProcedureError(tok[1], idx)
			return noop
		}
		return vm.Instruction{Op: vm.OpCall, Arg: int64(p.start + 1)}

	default:
		a.addUnknownInstructionError(tok[0], idx)
		return noop
	}
}

// signedOperand parses the single signed integer operand of Push
func (a *Assembler) signedOperand(idx int, tok []string) (int64, bool) {
	if len(tok) != 2 {
		a.addMissingOperandError(tok[0], idx)
		return 0, false
	}

	v, err := strconv.ParseInt(tok[1], 10, 64)
	if err != nil {
		a.addBadOperandError(tok[0], tok[1], idx)
		return 0, false
	}

	return v, true
}

// offsetOperand parses the non-negative stack offset of Get/Set/GetArg/SetArg
func (a *Assembler) offsetOperand(idx int, tok []string) (int64, bool) {
	v, ok := a.signedOperand(idx, tok)
	if !ok {
		return 0, false
	}

	if v < 0 {
		a.addBadOperandError(tok[0], tok[1], idx)
		return 0, false
	}

	return v, true
}

// labelOperand resolves a jump mnemonic's label name to a line index
func (a *Assembler) labelOperand(idx int, tok []string) (int, bool) {
	if len(tok) != 2 {
		a.addMissingOperandError(tok[0], idx)
		return 0, false
	}

	target, ok := a.labels[tok[1]]
	if !ok {
		a.addUndefinedLabelError(tok[1], idx)
		return 0, false
	}

	return target, true
}

// Assemble is a convenience wrapper assembling src in one call
func Assemble(src string) (vm.Program, error) {
	return New(src).Assemble()
}
