package runner

import (
	"fmt"
	"io"
	"os"

	"stackvm/pkg/asm"
	"stackvm/pkg/color"
	"stackvm/pkg/vm"

	"github.com/charmbracelet/log"
)

type Runner struct {
	Help        bool      // Show help message
	Verbose     bool      // Enable verbose output
	Dump        bool      // Dump the assembled program listing
	NoColor     bool      // Disable colored output
	Interactive bool      // Start the interactive stepper instead of running a file
	MaxSteps    int       // Abort execution after this many steps (0 = unlimited)
	SourceFile  string    // Path to the source file
	Out         io.Writer // Program output writer (defaults to stdout)
}

// Run reads the source file, assembles it, and executes the resulting
// program, optionally dumping the assembled listing first.
func (opts *Runner) Run() error {
	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		log.Fatal("Failed to read file", "file", opts.SourceFile, "error", err)
	}

	a := asm.New(string(input))
	prog, err := a.Assemble()
	if err != nil {
		fmt.Println(color.BrightRedText("=== Assembly Errors ==="))
		fmt.Println(a.Errors()[0])
		return err
	}

	if opts.Dump {
		opts.dumpListing(prog)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	m := vm.NewMachine(prog, vm.WithWriter(out), vm.WithMaxSteps(opts.MaxSteps))
	if err := m.Run(); err != nil {
		log.Error("Execution faulted", "error", err)
		return fmt.Errorf("execution failed: %w", err)
	}

	log.Info("Halted", "stack", m.Stack(), "calls", m.CallDepth())
	return nil
}

// dumpListing prints the assembled program, one instruction per line
func (opts *Runner) dumpListing(prog vm.Program) {
	fmt.Println(color.GreenText("=== Assembled Program ==="))
	if len(prog) == 0 {
		fmt.Println(color.GrayText("No instructions."))
		return
	}

	for i, in := range prog {
		arg := ""
		if in.HasArg() {
			arg = fmt.Sprintf("%d", in.Arg)
		}

		fmt.Printf("%s: %s %s\n",
			color.CyanText(fmt.Sprintf("%d", i)),
			color.YellowText(string(in.Op)),
			color.BlueText(arg))
	}
}
