// Package repl implements an interactive instruction stepper: each input
// line is assembled as a single instruction and applied to a persistent
// machine, printing the operand stack after every step.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"stackvm/pkg/asm"
	"stackvm/pkg/color"
	"stackvm/pkg/vm"

	"github.com/peterh/liner"
)

const (
	historyFile = ".stackvm_history"
	prompt      = ">> "
)

const banner = "stackvm interactive stepper\n" +
	"Enter one instruction per line. Ctrl+D or :quit exits, :help lists commands."

const helpText = `Commands:
  :quit     Exit
  :reset    Clear the stack, call stack, and registers
  :stack    Print the operand stack
  :help     Show this help`

// Start runs the interactive loop, writing program output to out.
// It returns a process exit code.
func Start(out io.Writer) int {
	fmt.Fprintln(out, banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	m := vm.NewMachine(nil, vm.WithWriter(out))

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return 1
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if quit := command(out, m, input); quit {
				return 0
			}
			continue
		}

		step(out, m, input)
	}
}

// command handles a :-prefixed REPL command, reporting whether to quit
func command(out io.Writer, m *vm.Machine, input string) bool {
	switch strings.ToLower(input) {
	case ":quit":
		return true
	case ":reset":
		m.Reset()
		fmt.Fprintln(out, "reset")
	case ":stack":
		fmt.Fprintf(out, "%v\n", m.Stack())
	case ":help":
		fmt.Fprintln(out, helpText)
	default:
		fmt.Fprintln(out, "unknown command. Type :help for help.")
	}

	return false
}

// step assembles one instruction and applies it to the machine.
// A fault is printed but leaves the machine state intact for inspection.
func step(out io.Writer, m *vm.Machine, input string) {
	a := asm.New(input)
	prog, err := a.Assemble()
	if err != nil {
		fmt.Fprintln(out, a.Errors()[0])
		return
	}

	if err := m.Apply(prog[0]); err != nil {
		fmt.Fprintln(out, color.BrightRedText(err.Error()))
		return
	}

	fmt.Fprintf(out, "%v\n", m.Stack())
}
