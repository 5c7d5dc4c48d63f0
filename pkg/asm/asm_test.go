package asm_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"stackvm/pkg/asm"
	"stackvm/pkg/vm"
)

func TestLineAlignment(t *testing.T) {
	src := "-- header comment\n" +
		"\n" +
		"Push 1\n" +
		"label top\n" +
		"Jump top\n"

	prog, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := vm.Program{
		{Op: vm.OpNoop},
		{Op: vm.OpNoop},
		{Op: vm.OpPush, Arg: 1},
		{Op: vm.OpNoop},
		{Op: vm.OpJump, Arg: 3},
		{Op: vm.OpNoop}, // trailing newline yields one final empty line
	}
	if !reflect.DeepEqual(prog, want) {
		t.Errorf("expected %v, got %v", want, prog)
	}
}

func TestProcedureEncoding(t *testing.T) {
	src := "Proc double\n" +
		"GetArg 0\n" +
		"GetArg 0\n" +
		"Add\n" +
		"SetArg 0\n" +
		"Ret\n" +
		"End\n" +
		"Push 21\n" +
		"Call double"

	prog, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// the declaration becomes a jump past End, Call targets the body start
	if prog[0].Op != vm.OpJump || prog[0].Arg != 7 {
		t.Errorf("Proc line: expected Jump 7, got %s", prog[0])
	}
	if prog[6].Op != vm.OpNoop {
		t.Errorf("End line: expected Noop, got %s", prog[6])
	}
	if prog[8].Op != vm.OpCall || prog[8].Arg != 1 {
		t.Errorf("Call line: expected Call 1, got %s", prog[8])
	}

	var out bytes.Buffer
	m := vm.NewMachine(prog, vm.WithWriter(&out))
	if err := m.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stack := m.Stack(); !reflect.DeepEqual(stack, []int64{42}) {
		t.Errorf("double(21): expected [42], got %v", stack)
	}
}

func TestAssemblyErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown instruction", "Frobnicate", "Unknown instruction"},
		{"missing operand", "Push", "Missing operand"},
		{"unexpected operand", "Add 3", "Unexpected operand"},
		{"bad operand", "Push abc", "Invalid operand"},
		{"negative offset", "Get -1", "Invalid operand"},
		{"undefined label", "Jump nowhere", "Undefined label"},
		{"undefined procedure", "Call nowhere", "Undefined procedure"},
		{"unterminated procedure", "Proc f\nRet", "Unterminated procedure"},
		{"duplicate label", "label a\nlabel a", "Duplicate label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := asm.New(tt.src)
			if _, err := a.Assemble(); err == nil {
				t.Fatal("expected an error")
			}
			errs := a.Errors()
			if len(errs) == 0 {
				t.Fatal("expected recorded errors")
			}
			if !strings.Contains(errs[0], tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, errs[0])
			}
		})
	}
}

func TestErrorReportsLineNumber(t *testing.T) {
	a := asm.New("Push 1\nPush 2\nBogus")
	if _, err := a.Assemble(); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(a.Errors()[0], "Line: 3") {
		t.Errorf("expected line 3 in %q", a.Errors()[0])
	}
}

func TestSumProgram(t *testing.T) {
	src := `Push 0
Push 100
label loop
Get 1
Push 1
Sub
Set 1
Get 0
Get 1
Add
Set 0
Get 1
JNE loop
Get 0
Print`

	prog, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var out bytes.Buffer
	if err := vm.NewMachine(prog, vm.WithWriter(&out)).Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "4950\n" {
		t.Errorf("expected %q, got %q", "4950\n", out.String())
	}
}

func TestFibonacciProgram(t *testing.T) {
	src := `Proc fib
GetArg 0
Push 2
Sub
JLT base
GetArg 0
Push 1
Sub
Call fib
GetArg 0
Push 2
Sub
Call fib
Add
SetArg 0
Ret
label base
GetArg 0
SetArg 0
Ret
End
Push 10
Call fib
Print`

	prog, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var out bytes.Buffer
	m := vm.NewMachine(prog, vm.WithWriter(&out))
	if err := m.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "55\n" {
		t.Errorf("fib(10): expected %q, got %q", "55\n", out.String())
	}
	if m.CallDepth() != 0 {
		t.Errorf("expected empty call stack at halt, got depth %d", m.CallDepth())
	}
}

func TestCommentsCompileToNoops(t *testing.T) {
	prog, err := asm.Assemble("-- one\n--two\nPush 3")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := vm.Program{
		{Op: vm.OpNoop},
		{Op: vm.OpNoop},
		{Op: vm.OpPush, Arg: 3},
	}
	if !reflect.DeepEqual(prog, want) {
		t.Errorf("expected %v, got %v", want, prog)
	}
}
