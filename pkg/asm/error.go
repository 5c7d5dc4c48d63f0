package asm

import (
	"fmt"

	"stackvm/pkg/color"
)

func (a *Assembler) addError(e string) {
	a.errors = append(a.errors, e)
}

// line renders a 1-based source line reference from a 0-based index
func line(idx int) string {
	return color.YellowText(fmt.Sprintf("Line: %d", idx+1))
}

func (a *Assembler) addUnknownInstructionError(mnemonic string, idx int) {
	msg := color.RedText("Unknown instruction") + " `" + color.BlueText(mnemonic) + "`"
	a.addError(msg + " at " + line(idx))
}

func (a *Assembler) addMissingOperandError(mnemonic string, idx int) {
	msg := color.RedText("Missing operand") + " for `" + color.BlueText(mnemonic) + "`"
	a.addError(msg + " at " + line(idx))
}

func (a *Assembler) addUnexpectedOperandError(mnemonic string, idx int) {
	msg := color.RedText("Unexpected operand") + " for `" + color.BlueText(mnemonic) + "`"
	a.addError(msg + " at " + line(idx))
}

func (a *Assembler) addBadOperandError(mnemonic, operand string, idx int) {
	msg := color.RedText("Invalid operand") + " `" + color.BlueText(operand) + "` for `" + color.BlueText(mnemonic) + "`"
	a.addError(msg + " at " + line(idx))
}

func (a *Assembler) addUndefinedLabelError(name string, idx int) {
	msg := color.RedText("Undefined label") + " `" + color.BlueText(name) + "`"
	a.addError(msg + " at " + line(idx))
}

func (a *Assembler) addUndefinedProcedureError(name string, idx int) {
	msg := color.RedText("Undefined procedure") + " `" + color.BlueText(name) + "`"
	a.addError(msg + " at " + line(idx))
}

func (a *Assembler) addDuplicateNameError(kind, name string, idx int) {
	msg := color.RedText("Duplicate "+kind) + " `" + color.BlueText(name) + "`"
	a.addError(msg + " at " + line(idx))
}

func (a *Assembler) addUnterminatedProcError(name string, idx int) {
	msg := color.RedText("Unterminated procedure") + " `" + color.BlueText(name) + "`" + " (missing End)"
	a.addError(msg + " at " + line(idx))
}

// Errors returns the list of assembly errors
func (a *Assembler) Errors() []string {
	return a.errors
}

func (a *Assembler) summaryError() error {
	return fmt.Errorf("assembly failed with %d errors", len(a.errors))
}
