package main

import (
	"flag"
	"fmt"
	"os"

	"stackvm/internal/logger"
	"stackvm/internal/repl"
	"stackvm/internal/runner"
	"stackvm/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the stackvm interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.Dump, "d", false, "Dump the assembled program before running")
	flag.BoolVar(&options.Interactive, "i", false, "Interactive instruction stepper")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.IntVar(&options.MaxSteps, "m", 0, "Maximum execution steps (0 = unlimited)")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if options.Interactive {
		os.Exit(repl.Start(os.Stdout))
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	err := options.Run()
	if err != nil {
		log.Fatal("Run failed", "error", err)
	}
}
